package system

import (
	"fmt"
	"io/fs"

	"github.com/kervan-app/kervan/internal/cli"
	"github.com/kervan-app/kervan/internal/migration"
	"github.com/kervan-app/kervan/internal/storage/postgres"
	"github.com/kervan-app/kervan/internal/storage/sqlite"
	"github.com/kervan-app/kervan/migrations"
)

type MigrateCmd struct {
	LegacyLogs bool `help:"Consolidate legacy flat habit logs into completion records."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	if c.LegacyLogs {
		fmt.Println("\nConsolidating legacy habit logs...")
		migrated, err := migration.ConsolidateHabitLogs(ctx.Store, func(msg string) {
			fmt.Println(msg)
		})
		if err != nil {
			return fmt.Errorf("legacy log consolidation failed: %w", err)
		}
		fmt.Printf("Consolidated %d legacy log(s).\n", migrated)
	}

	return nil
}

// runnerFor builds a migration runner for whichever backend the context
// carries, pointing it at that backend's embedded migration files.
func runnerFor(ctx *cli.Context) (*migration.Runner, error) {
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		subFS, err := fs.Sub(migrations.FS, "sqlite")
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
		}
		db := store.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		return migration.NewRunner(db, subFS), nil
	case *postgres.Store:
		subFS, err := fs.Sub(migrations.FS, "postgres")
		if err != nil {
			return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
		}
		db := store.GetDB()
		if db == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		return migration.NewRunner(db, subFS), nil
	default:
		return nil, fmt.Errorf("migrate command does not support this storage backend")
	}
}
