package db

import (
	"database/sql"
	"embed"
	"log/slog"

	"salon-scheduler/internal/pkg/errs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewMigrator opens a dedicated database/sql handle; the caller must Close the migrator.
func NewMigrator(dsn string) (*migrate.Migrate, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errs.Wrap(err, "open migration connection")
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "ping migration connection")
	}

	dbDriver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "migration db driver")
	}

	srcDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "migration source driver")
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "create migrator")
	}
	return m, nil
}

// MigrateUp applies every pending migration. An up-to-date schema is not an error.
func MigrateUp(dsn string) error {
	m, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errs.Is(err, migrate.ErrNoChange) {
		return errs.Wrap(err, "migrate up")
	}

	version, dirty, err := m.Version()
	if err != nil && !errs.Is(err, migrate.ErrNilVersion) {
		return errs.Wrap(err, "read migration version")
	}
	slog.Info("database migrated", "version", version, "dirty", dirty)
	return nil
}
