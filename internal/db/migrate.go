package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/Marga-Ghale/bpo-console/internal/config"
)

// ErrDirtySchema is returned when a previous migration failed halfway and
// repair is not enabled.
var ErrDirtySchema = errors.New("activity log schema is dirty")

// MigrationOptions controls how the activity log schema is applied.
type MigrationOptions struct {
	Path        string
	Table       string
	RepairDirty bool
}

func MigrationOptionsFrom(cfg *config.Config) MigrationOptions {
	return MigrationOptions{
		Path:        cfg.MigrationsPath,
		Table:       cfg.MigrationsTable,
		RepairDirty: cfg.MigrationsRepair,
	}
}

// RunMigrations brings the activity log schema up to date and returns the
// resulting version. The console shares its database with other services,
// so versions live in their own table. A dirty schema stops startup unless
// RepairDirty is set.
func RunMigrations(databaseURL string, opts MigrationOptions) (uint, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	driver, err := postgres.WithInstance(conn, &postgres.Config{MigrationsTable: opts.Table})
	if err != nil {
		return 0, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+opts.Path, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	from, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		if !opts.RepairDirty {
			return from, fmt.Errorf("%w at version %d (set MIGRATIONS_REPAIR_DIRTY=true to force)", ErrDirtySchema, from)
		}
		log.Printf("⚠️ [DB] Activity schema dirty at version %d, forcing clean state", from)
		if err := m.Force(int(from)); err != nil {
			return from, fmt.Errorf("failed to force migration: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, fmt.Errorf("migration failed: %w", err)
	}

	to, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return from, fmt.Errorf("failed to read migrated version: %w", err)
	}
	if to != from {
		log.Printf("[DB] ✅ Activity schema migrated %d → %d", from, to)
	} else {
		log.Printf("[DB] Activity schema up to date at version %d", to)
	}
	return to, nil
}
