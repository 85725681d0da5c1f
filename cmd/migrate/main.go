package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/luoteng/stuinfo-backend/internal/config"
	"github.com/luoteng/stuinfo-backend/internal/database"
)

// Standalone schema management over the embedded migrations. The server
// applies pending migrations itself on boot; this CLI exists for manual
// rollback and inspection.
func main() {
	flag.Parse()

	cfg := config.Load()

	// Connect without touching the schema: "version" and "down" must see
	// the database exactly as it is, not auto-migrated up first.
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		stdlog.Fatalf("Open database: %v", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		stdlog.Fatalf("Migration failed to initialize: %v", err)
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	switch command := args[0]; command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			stdlog.Fatalf("Up failed: %v", err)
		}
		fmt.Println("Migrated up successfully")
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			stdlog.Fatalf("Down failed: %v", err)
		}
		fmt.Println("Migrated down successfully")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			stdlog.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			stdlog.Fatal("force requires version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			stdlog.Fatalf("Invalid version: %v", err)
		}
		if err := m.Force(v); err != nil {
			stdlog.Fatalf("Force failed: %v", err)
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println("Commands: up, down, version, force <version>")
}
