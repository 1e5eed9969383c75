package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Connection pool configuration constants
const (
	// DefaultMinConns keeps the pool lazy: nothing connects until the first
	// worksheet write, so a bad URL is reported per worksheet.
	DefaultMinConns = 0

	// DefaultMaxConnIdleTime keeps connections alive between files.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, maxConns int, runID string) {
	if maxConns < 1 {
		maxConns = 1
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	if runID != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = sheetload.ApplicationNamePrefix + runID
	}
}

// Connect creates the shared connection pool for cfg.DatabaseURL.
// maxConns should match the worksheet worker pool size.
//
// The pool connects lazily. An empty DatabaseURL is not rejected here:
// the returned PoolAdapter fails every Begin with sheetload.ErrMissingDatabaseURL.
// Only a URL that cannot be parsed is a startup error (sheetload.ErrInvalidConfig).
func Connect(ctx context.Context, cfg sheetload.Config, maxConns int, runID string) (*PoolAdapter, error) {
	if cfg.DatabaseURL == "" {
		return &PoolAdapter{err: fmt.Errorf("%w: %w (required in %s mode)",
			sheetload.ErrConnectionFailed, sheetload.ErrMissingDatabaseURL, cfg.Mode)}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse DATABASE_URL: %w", sheetload.ErrInvalidConfig, err)
	}

	configurePool(poolConfig, maxConns, runID)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sheetload.ErrInvalidConfig, err)
	}

	return &PoolAdapter{
		pool:     pool,
		host:     poolConfig.ConnConfig.Host,
		port:     int(poolConfig.ConnConfig.Port),
		database: poolConfig.ConnConfig.Database,
	}, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The result always wraps sheetload.ErrConnectionFailed.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in DATABASE_URL
  - Firewall blocking the connection

Original error: %w`, sheetload.ErrConnectionFailed, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`%w: cannot resolve host "%s"

Possible causes:
  - Hostname in DATABASE_URL is misspelled
  - DNS is not configured or reachable

Original error: %w`, sheetload.ErrConnectionFailed, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`%w: password authentication failed for database "%s"

Possible causes:
  - Wrong password or username in DATABASE_URL
  - User does not have access to the database

Original error: %w`, sheetload.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "database") && strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`%w: database "%s" does not exist

To create it:
  createdb -h %s -p %d %s

Original error: %w`, sheetload.ErrConnectionFailed, database, host, port, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, sheetload.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`%w: too many connections to database "%s"

Possible causes:
  - max_connections limit reached in postgresql.conf
  - Other clients holding connections

Original error: %w`, sheetload.ErrConnectionFailed, database, err)

	default:
		return fmt.Errorf("%w: failed to connect to database: %w", sheetload.ErrConnectionFailed, err)
	}
}
