package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and migrates it to the latest schema.
// A local sqlite file is used when primaryUrl is empty; otherwise the Turso
// database at primaryUrl is used. The returned teardown closes the connection.
func InitDB(dbPath string, primaryUrl string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	db, err := open(dbPath, primaryUrl, authToken)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := migrate(db, migrationsDir); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func open(dbPath, primaryUrl, authToken string) (*sql.DB, error) {
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// Each connection to ":memory:" is its own database.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	return db, nil
}

func migrate(db *sql.DB, migrationsDir string) error {
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations from %s: %w", migrationsDir, err)
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("Database schema is up to date", "version", version)
	return nil
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) { log.Fatalf(format, v...) }
func (gooseLogger) Printf(format string, v ...any) { log.Debugf(format, v...) }
