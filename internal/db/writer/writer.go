// Package writer replaces Postgres tables with worksheet data.
package writer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Writer implements sheetload.TableWriter on top of a shared DBConnection.
//
// Thread-Safety: Safe for concurrent use when the DBConnection is.
type Writer struct {
	conn      sheetload.DBConnection
	chunkSize int
}

// Option configures a Writer.
type Option func(*Writer)

// WithChunkSize overrides sheetload.DefaultChunkSize. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(w *Writer) {
		if n >= 1 {
			w.chunkSize = n
		}
	}
}

// New creates a Writer. Panics if conn is nil.
func New(conn sheetload.DBConnection, opts ...Option) *Writer {
	if conn == nil {
		panic("conn cannot be nil")
	}
	w := &Writer{conn: conn, chunkSize: sheetload.DefaultChunkSize}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write drops table, recreates it from data.Columns and inserts data.Rows,
// all in one transaction. Nothing is committed unless every statement succeeds.
func (w *Writer) Write(ctx context.Context, table string, data *sheetload.Table) (written int, err error) {
	if data == nil {
		return 0, fmt.Errorf("%w %q: no data", sheetload.ErrWriteFailed, table)
	}

	tx, err := w.conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", sheetload.ErrWriteFailed, table, err)
	}
	defer func() {
		// no-op after a successful Commit
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, dropTableSQL(table)); err != nil {
		return 0, fmt.Errorf("%w %q: drop: %w", sheetload.ErrWriteFailed, table, err)
	}
	if _, err := tx.Exec(ctx, createTableSQL(table, data.Columns)); err != nil {
		return 0, fmt.Errorf("%w %q: create: %w", sheetload.ErrWriteFailed, table, err)
	}

	if len(data.Columns) > 0 {
		size := chunkSize(w.chunkSize, len(data.Columns))
		for start := 0; start < len(data.Rows); start += size {
			end := min(start+size, len(data.Rows))
			chunk := data.Rows[start:end]

			sql, args := insertSQL(table, data.Columns, chunk)
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return 0, fmt.Errorf("%w %q: insert rows %d-%d: %w",
					sheetload.ErrWriteFailed, table, start+1, end, err)
			}
			written += len(chunk)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w %q: commit: %w", sheetload.ErrWriteFailed, table, err)
	}
	return written, nil
}

// chunkSize caps rows per INSERT so rows*cols stays within the bind-parameter limit.
func chunkSize(preferred, cols int) int {
	if cols < 1 {
		return preferred
	}
	return max(1, min(preferred, sheetload.MaxBindParameters/cols))
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func dropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + quote(table)
}

func createTableSQL(table string, cols []sheetload.Column) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(quote(table))
	b.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(c.Name))
		b.WriteByte(' ')
		b.WriteString(string(c.Type))
	}
	b.WriteByte(')')
	return b.String()
}

func insertSQL(table string, cols []sheetload.Column, rows [][]sheetload.Value) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quote(table))
	b.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(c.Name))
	}
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(cols))
	n := 1
	for r, row := range rows {
		if r > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for i, c := range cols {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++

			v := sheetload.Null()
			if i < len(row) {
				v = row[i]
			}
			args = append(args, v.Arg(c.Type))
		}
		b.WriteByte(')')
	}
	return b.String(), args
}

// Verify Writer implements TableWriter at compile time
var _ sheetload.TableWriter = (*Writer)(nil)
