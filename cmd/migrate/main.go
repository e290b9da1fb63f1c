// Command migrate runs schema operations for the backend. Production
// deployments run this explicitly; development connects auto-migrate.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|auto|indexes>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "up":
		if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
			return fmt.Errorf("automigration failed: %w", err)
		}
		if err := database.ApplyManualMigrations(db); err != nil {
			return fmt.Errorf("manual migrations failed: %w", err)
		}
		log.Println("schema and manual indexes applied")
	case "auto":
		if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
			return fmt.Errorf("automigration failed: %w", err)
		}
		log.Println("automigrations applied")
	case "indexes":
		if err := database.ApplyManualMigrations(db); err != nil {
			return fmt.Errorf("manual migrations failed: %w", err)
		}
		log.Println("manual indexes applied")
	default:
		return usage()
	}

	return nil
}
