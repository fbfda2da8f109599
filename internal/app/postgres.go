package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-team-tasks/internal/config"
	"github.com/adanyl0v/go-team-tasks/internal/migrations"
)

func (a *App) MustConnectPostgres() {
	cfg := a.cfg.Postgres

	pool, err := ConnectPostgres(context.Background(), cfg)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}
	a.postgresPool = pool

	a.logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
}

func (a *App) MustMigratePostgres() {
	cfg := a.cfg.Postgres
	if !cfg.MigrateOnStart {
		a.logger.Info().Msg("skipped postgres migrations")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MigrationTimeout)
	defer cancel()

	err := MigratePostgres(ctx, a.logger, a.postgresPool)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to migrate postgres")
		panic(err)
	}
	a.logger.Info().Msg("migrated postgres")
}

func (a *App) DisconnectPostgres() {
	if a.postgresPool == nil {
		return
	}
	a.postgresPool.Close()
	a.logger.Info().Msg("disconnected from postgres")
}

// ConnectPostgres opens a pool and pings it within cfg.PingTimeout.
func ConnectPostgres(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	err = pool.Ping(pingCtx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// MigratePostgres applies the embedded migrations through the pool.
func MigratePostgres(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{logger: logger})
	err := goose.SetDialect("postgres")
	if err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	err = goose.UpContext(ctx, db, ".")
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
