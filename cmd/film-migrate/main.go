// Package main is the entry point for the film API database migration tool.
// It applies the embedded schema migrations for either backend.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/config"
	"github.com/prn-tf/film-api/internal/repository/postgres"
	"github.com/prn-tf/film-api/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Film API Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		run(func(ctx context.Context, m migrator) error {
			if err := m.Migrate(ctx); err != nil {
				return err
			}
			version, err := m.MigrationVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("migrations applied, schema version %d\n", version)
			return nil
		})

	case "status":
		run(func(ctx context.Context, m migrator) error {
			version, err := m.MigrationVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("schema version: %d\n", version)
			return nil
		})

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// migrator is the slice of the database handle the tool needs.
type migrator interface {
	Migrate(ctx context.Context) error
	MigrationVersion(ctx context.Context) (int, error)
	Close() error
}

// run loads config, opens the configured backend, and hands the connection
// to the command.
func run(fn func(ctx context.Context, m migrator) error) {
	cfg, err := config.Load(os.Getenv("FILMAPI_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var m migrator
	switch cfg.Database.Driver {
	case "postgres":
		m, err = postgres.NewDB(ctx, cfg.Database, logger)
	case "sqlite":
		m, err = sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Database.Path,
			JournalMode: cfg.Database.JournalMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		}, logger)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := fn(ctx, m); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Film API Migration Tool

Usage:
  film-migrate <command>

Commands:
  up          Run all pending migrations
  status      Show the current schema version
  version     Print version information
  help        Show this help message

Environment Variables:
  FILMAPI_CONFIG             Path to the config file (optional)
  FILMAPI_DATABASE_DRIVER    "postgres" or "sqlite"
  FILMAPI_DATABASE_PATH      SQLite database file (sqlite driver)
  FILMAPI_AUTH_JWT_SECRET    Required by configuration validation

Examples:
  film-migrate up
  film-migrate status`)
}
