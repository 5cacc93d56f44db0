// Package main is the entry point for the booklist web server.
// It wires together configuration, the database file, the template cache,
// and the HTTP router.
package main

import (
	"flag"
	"html/template"
	"log/slog"
	"os"
	"strconv"

	"github.com/aoideee/booklist/internal/data"
)

// appVersion is the current version of the application, shown in logs.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup.
// The port defaults from the PORT environment variable so the binary can be
// dropped onto a platform that assigns ports that way.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default $PORT or 3000)
	environment string // Runtime environment: development, staging, or production
	db          struct {
		path string // Path to the SQLite database file
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route
// methods.
type applicationDependencies struct {
	config        serverConfig                  // Server configuration loaded from flags
	logger        *slog.Logger                  // Structured logger that writes to stdout
	models        data.Models                   // Database model layer
	templateCache map[string]*template.Template // Parsed page templates, built once at startup
}

// main parses flags, opens the database, builds the template cache, wires up
// dependencies, and starts the HTTP server.
func main() {
	var settings serverConfig

	flag.IntVar(&settings.port, "port", defaultPort(), "Server port (defaults to $PORT, then 3000)")
	flag.StringVar(&settings.environment, "env", "development", "Environment(development|staging|production)")
	flag.StringVar(&settings.db.path, "db", "books.db", "SQLite database file (created if absent)")

	flag.Parse()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Open the database file, creating it and applying the schema on first run.
	db, err := data.OpenDB(settings.db.path)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	// Close the store cleanly when main() returns, on every shutdown path.
	defer db.Close()

	logger.Info("database opened", "path", settings.db.path, "version", appVersion)

	// Parse every page template up front so a broken template fails the
	// process at startup rather than mid-request.
	templateCache, err := newTemplateCache()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	appInstance := &applicationDependencies{
		config:        settings,
		logger:        logger,
		models:        data.NewModels(db),
		templateCache: templateCache,
	}

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// defaultPort reads the PORT environment variable, falling back to 3000 when
// it is unset or not a number.
func defaultPort() int {
	s := os.Getenv("PORT")
	if s == "" {
		return 3000
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 3000
	}
	return port
}
