package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// PoolAdapter adapts *pgxpool.Pool to implement the sheetload.DBConnection interface.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool

	// target, for error messages
	host     string
	port     int
	database string

	// err is returned by every Begin when no pool could be configured
	err error
}

// NewPoolAdapter wraps an existing pool.
func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	cfg := pool.Config().ConnConfig
	return &PoolAdapter{
		pool:     pool,
		host:     cfg.Host,
		port:     int(cfg.Port),
		database: cfg.Database,
	}
}

// Begin starts a transaction on a pooled connection.
// Connection failures are rewritten by wrapConnectionError.
func (p *PoolAdapter) Begin(ctx context.Context) (sheetload.Tx, error) {
	if p.err != nil {
		return nil, p.err
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, wrapConnectionError(err, p.host, p.port, p.database)
	}
	return tx, nil
}

// Close closes the pool. Safe to call on an adapter without a pool.
func (p *PoolAdapter) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Verify PoolAdapter implements DBConnection at compile time
var _ sheetload.DBConnection = (*PoolAdapter)(nil)
