package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

const schemaMigrationsTable = "schema_migrations"

// Config points the migrator at an embedded set of *.up.sql / *.down.sql files.
type Config struct {
	MigrationsFS   fs.FS
	MigrationsPath string
	LockTimeout    time.Duration
}

// Migrator applies schema migrations through an existing pgx pool.
type Migrator struct {
	config Config
	pool   *pgxpool.Pool
	log    zerolog.Logger
}

func NewMigrator(config Config, pool *pgxpool.Pool, log zerolog.Logger) *Migrator {
	if config.LockTimeout <= 0 {
		config.LockTimeout = 30 * time.Second
	}
	return &Migrator{
		config: config,
		pool:   pool,
		log:    log.With().Str("component", "migrator").Logger(),
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, "up", func(mg *migrate.Migrate) error { return mg.Up() })
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, "down", func(mg *migrate.Migrate) error { return mg.Down() })
}

// Steps applies n migrations forward, or -n backward.
func (m *Migrator) Steps(ctx context.Context, n int) error {
	return m.run(ctx, fmt.Sprintf("steps(%d)", n), func(mg *migrate.Migrate) error { return mg.Steps(n) })
}

// ForceVersion marks version as applied and clears the dirty flag without running SQL.
func (m *Migrator) ForceVersion(ctx context.Context, version uint) error {
	mg, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer closeMigrate(mg)

	if err := mg.Force(int(version)); err != nil {
		return fmt.Errorf("failed to force migration version %d: %w", version, err)
	}
	m.log.Warn().Uint("version", version).Msg("migration version forced")
	return nil
}

// Version reports the applied version. An empty schema yields 0 and no error.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	mg, err := m.open(ctx)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(mg)

	version, dirty, err := mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) run(ctx context.Context, op string, fn func(*migrate.Migrate) error) error {
	mg, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer closeMigrate(mg)

	start := time.Now()
	if err := fn(mg); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Str("op", op).Msg("schema already up to date")
			return nil
		}
		return fmt.Errorf("migration %s failed: %w", op, err)
	}
	m.log.Info().Str("op", op).Dur("took", time.Since(start)).Msg("migrations applied")
	return nil
}

func (m *Migrator) open(ctx context.Context) (*migrate.Migrate, error) {
	if err := m.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	driver, err := postgres.WithInstance(stdlib.OpenDBFromPool(m.pool), &postgres.Config{
		MigrationsTable: schemaMigrationsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(m.config.MigrationsFS, m.config.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations source: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	mg.LockTimeout = m.config.LockTimeout
	return mg, nil
}

// closeMigrate closes the source and the sql.DB wrapper. The pgx pool stays open.
func closeMigrate(mg *migrate.Migrate) {
	_, _ = mg.Close()
}
