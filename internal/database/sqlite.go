package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect opens (or creates) the local SQLite database file and applies
// the connection pragmas. It never touches the schema; callers that need
// the migrations applied use Open.
func Connect(path string) (*sql.DB, error) {
	if path == "" {
		path = "students.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// journal_mode is unsupported for in-memory databases; ignore errors.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign_keys: %w", err)
	}
	return db, nil
}

// Open connects to the database and applies any pending embedded
// migrations. First boot creates the schema; reruns are no-ops and never
// touch existing rows.
func Open(path string, log zerolog.Logger) (*sql.DB, error) {
	if path == "" {
		path = "students.db"
	}

	db, err := Connect(path)
	if err != nil {
		return nil, err
	}

	m, err := NewMigrator(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().
		Str("path", path).
		Uint("schema_version", version).
		Msg("SQLite ready")

	return db, nil
}

// NewMigrator builds a migrate instance over the embedded SQL migrations
// for the given open database. Shared by Open and the migrate CLI.
func NewMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}
