package infra

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DEFAULT_MAX_CONNECTIONS = 20

func NewPostgresConnectionPool(ctx context.Context, connectionString string, maxConnections int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()
	if maxConnections <= 0 {
		maxConnections = DEFAULT_MAX_CONNECTIONS
	}
	cfg.MaxConns = int32(maxConnections)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create connection pool")
	}
	return pool, nil
}
