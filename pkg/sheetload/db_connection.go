package sheetload

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBConnection abstracts the shared database handle used by the table writer.
// Implementations must be safe for concurrent use: every worksheet task of a
// file begins its own transaction on the same DBConnection.
type DBConnection interface {
	// Begin starts a transaction on a connection from the pool.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a database transaction.
// This interface decouples the writer from pgx.Tx.
type Tx interface {
	// Exec executes a statement without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Safe to call after Commit.
	Rollback(ctx context.Context) error
}

// TableWriter replaces a destination table with a worksheet's data.
type TableWriter interface {
	// Write drops and recreates table and inserts every row of data.
	// Returns the number of rows written.
	Write(ctx context.Context, table string, data *Table) (int, error)
}
