// Package data provides the data models and database interaction logic
// for the book list application.
package data

import (
	"database/sql"
	"errors"
	"time"
)

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID        int64     // Unique identifier assigned by the database
	Title     string    // Title of the book, never blank in persisted state
	Author    string    // Author of the book, never blank in persisted state
	Status    Status    // Reading state, always a member of the closed set
	Rating    *int64    // Optional rating in [1,5]; nil when unset
	CreatedAt time.Time // Set once at creation, never modified
	UpdatedAt time.Time // Refreshed on every successful update
}

// Filter holds the optional list criteria read from the URL query string.
// A zero Filter matches every book.
type Filter struct {
	Status string // Exact status to match; empty means any
	Query  string // Case-insensitive substring over title or author; empty means any
}

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every
// handler has access to the database without importing sql directly.
type Models struct {
	Books BookModel // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given database connection.
// Call this once during application startup and store the result in
// applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *sql.DB // Shared database connection
}

// Insert adds a new book record to the database with fresh timestamps, then
// re-reads the stored row back into book so the caller sees exactly what was
// persisted, generated id included.
func (m BookModel) Insert(book *Book) error {
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	query := `
        INSERT INTO books (title, author, status, rating, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)`

	result, err := m.DB.Exec(
		query,
		book.Title,
		book.Author,
		book.Status,
		book.Rating,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	created, err := m.Get(id)
	if err != nil {
		return err
	}
	*book = *created
	return nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists; absence is
// a signal, not a server fault.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
        SELECT id, title, author, status, rating, created_at, updated_at
        FROM books
        WHERE id = ?`

	var book Book
	err := m.DB.QueryRow(query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Status,
		&book.Rating,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// List retrieves every book matching the filter, most recently created first.
// Status matches by equality when provided; the free-text query matches as a
// case-insensitive substring of either title or author; both conditions are
// AND-ed when both are present.
func (m BookModel) List(filter Filter) ([]*Book, error) {
	// instr keeps % and _ in the search text literal, unlike LIKE.
	// Ties on created_at break by id so "most recent first" stays deterministic.
	query := `
        SELECT id, title, author, status, rating, created_at, updated_at
        FROM books
        WHERE (status = ? OR ? = '')
          AND (instr(lower(title), lower(?)) > 0 OR instr(lower(author), lower(?)) > 0 OR ? = '')
        ORDER BY created_at DESC, id DESC`

	args := []any{filter.Status, filter.Status, filter.Query, filter.Query, filter.Query}

	rows, err := m.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Status,
			&book.Rating,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// Update replaces title, author, status, and rating on the row matching
// book.ID, refreshes updated_at, and re-reads the stored row back into book.
// Returns ErrRecordNotFound if the row no longer exists; created_at is never
// touched.
func (m BookModel) Update(book *Book) error {
	book.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE books
        SET title = ?, author = ?, status = ?, rating = ?, updated_at = ?
        WHERE id = ?`

	result, err := m.DB.Exec(
		query,
		book.Title,
		book.Author,
		book.Status,
		book.Rating,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	updated, err := m.Get(book.ID)
	if err != nil {
		return err
	}
	*book = *updated
	return nil
}

// Delete removes the book with the given id from the database.
// Deleting an id that does not exist is a no-op; existence checks are the
// caller's concern.
func (m BookModel) Delete(id int64) error {
	if id < 1 {
		return nil
	}

	_, err := m.DB.Exec(`DELETE FROM books WHERE id = ?`, id)
	return err
}
