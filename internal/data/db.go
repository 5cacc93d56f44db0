// internal/data/db.go
package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // Register the SQLite driver with database/sql.
)

// OpenDB opens (or creates) the SQLite database file at path, verifies the
// connection with a short ping, and applies the schema idempotently.
// The returned handle is the process-wide store connection: open it once at
// startup and close it on every shutdown path.
func OpenDB(path string) (*sql.DB, error) {
	// Ensure the parent directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// PingContext performs a real round-trip to verify the file is usable.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applySchema creates the books table if it does not exist yet. The CHECK
// constraints are the storage-boundary enforcement of the status enumeration
// and the rating range: an out-of-range write fails here even if the
// validation layer were bypassed.
func applySchema(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	schema := `
        CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL CHECK (trim(title) <> ''),
            author TEXT NOT NULL CHECK (trim(author) <> ''),
            status TEXT NOT NULL DEFAULT 'to-read'
                CHECK (status IN ('to-read', 'reading', 'read')),
            rating INTEGER CHECK (rating BETWEEN 1 AND 5),
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
