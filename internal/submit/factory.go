package submit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/basefigures/internal/config"
	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/jackc/pgx/v5/pgxpool"
)

// New builds the sink selected by cfg.Sink.Kind. The returned close function
// releases any connections and is never nil.
func New(ctx context.Context, cfg *config.Config) (core.Sink, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.Sink.Kind) {
	case config.SinkSharePoint:
		slog.Info("using sharepoint sink",
			"site", cfg.Sink.SiteURL,
			"list", cfg.Sink.ListTitle,
		)
		return NewSharePoint(SharePointConfig{
			SiteURL:       cfg.Sink.SiteURL,
			ListTitle:     cfg.Sink.ListTitle,
			RequestDigest: cfg.Sink.RequestDigest,
			AccessToken:   cfg.Sink.AccessToken,
			Timeout:       cfg.Sink.Timeout,
		}, nil), noop, nil

	case config.SinkPostgres:
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		sink := NewPostgres(pool)
		if err := sink.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		slog.Info("using postgres sink")
		return sink, pool.Close, nil

	case config.SinkLog, "":
		slog.Info("using log sink")
		return NewLog(), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown sink kind %q", cfg.Sink.Kind)
}

// connect opens and pings a pgx pool.
func connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
