package writer

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

type execCall struct {
	sql  string
	args []any
}

type mockTx struct {
	mu         sync.Mutex
	calls      []execCall
	failOn     string // Exec fails when the statement starts with this prefix
	failAfter  int    // ...and at least this many matching statements already ran
	matched    int
	execErr    error
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, execCall{sql: sql, args: args})
	if m.failOn != "" && strings.HasPrefix(sql, m.failOn) {
		m.matched++
		if m.matched > m.failAfter {
			return pgconn.CommandTag{}, m.execErr
		}
	}
	return pgconn.CommandTag{}, nil
}

func (m *mockTx) Commit(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

func (m *mockTx) Rollback(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

func (m *mockTx) inserts() []execCall {
	var out []execCall
	for _, c := range m.calls {
		if strings.HasPrefix(c.sql, "INSERT") {
			out = append(out, c)
		}
	}
	return out
}

type mockConn struct {
	tx       *mockTx
	beginErr error
}

func (m *mockConn) Begin(_ context.Context) (sheetload.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}
