package database

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
)

func TestConnect_DoesNotTouchSchema(t *testing.T) {
	db, err := Connect("file:db_connect_plain?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var n int
	err = db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'students'`,
	).Scan(&n)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if n != 0 {
		t.Fatal("plain connect applied migrations")
	}

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if _, _, err := m.Version(); !errors.Is(err, migrate.ErrNilVersion) {
		t.Fatalf("expected no migration version on a plain connect, got %v", err)
	}
}

func TestOpen_AppliesMigrationsIdempotently(t *testing.T) {
	db, err := Open("file:db_open_migrated?mode=memory&cache=shared", zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"students", "admins"} {
		var n int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&n)
		if err != nil || n != 1 {
			t.Fatalf("table %s missing after open: n=%d err=%v", table, n, err)
		}
	}

	// Rerun against the same database: no error, no schema change.
	db2, err := Open("file:db_open_migrated?mode=memory&cache=shared", zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = db2.Close()
}
