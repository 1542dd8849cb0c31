package main

import (
	"context"
	"flag"
	"os"
	"time"

	"adventure-server/internal/config"
	"adventure-server/internal/database"
	"adventure-server/pkg/migration"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "migrate.yaml", "optional YAML config file")
	up := flag.Bool("up", false, "apply all pending migrations")
	down := flag.Bool("down", false, "roll back all migrations")
	steps := flag.Int("steps", 0, "apply n migrations (negative rolls back)")
	force := flag.Int("force", -1, "force the schema version and clear the dirty flag")
	version := flag.Bool("version", false, "print the current schema version")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", "adventure-migrate").Logger()

	cfg, err := config.LoadMigrateConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsPath,
	}, pool, log)

	switch {
	case *force >= 0:
		err = migrator.ForceVersion(ctx, uint(*force))
	case *down:
		err = migrator.Down(ctx)
	case *steps != 0:
		err = migrator.Steps(ctx, *steps)
	case *version:
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = migrator.Version(ctx)
		if err == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("current schema version")
		}
	case *up:
		err = migrator.Up(ctx)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("migration command failed")
	}
}
