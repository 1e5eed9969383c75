package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

type mockDiscoverer struct {
	paths       []string
	discoverErr error
	missing     map[string]bool
}

func (m *mockDiscoverer) Discover(_ string) ([]string, error) {
	return m.paths, m.discoverErr
}

func (m *mockDiscoverer) Verify(path string) error {
	if m.missing[path] {
		return fmt.Errorf("%w: %s", sheetload.ErrFileNotFound, path)
	}
	return nil
}

// mockWorkbook serves sheets from a map, failing those listed in parseErr.
type mockWorkbook struct {
	names    []string
	tables   map[string]*sheetload.Table
	parseErr map[string]error
	closed   bool
}

func (m *mockWorkbook) SheetNames() []string { return m.names }

func (m *mockWorkbook) Sheet(name string) (*sheetload.Table, error) {
	if err := m.parseErr[name]; err != nil {
		return nil, err
	}
	if t, ok := m.tables[name]; ok {
		return t, nil
	}
	return &sheetload.Table{Name: name}, nil
}

func (m *mockWorkbook) Close() error {
	m.closed = true
	return nil
}

type mockOpener struct {
	books   map[string]*mockWorkbook
	openErr map[string]error
	opened  []string
}

func (m *mockOpener) Open(path string) (sheetload.Workbook, error) {
	m.opened = append(m.opened, path)
	if err := m.openErr[path]; err != nil {
		return nil, err
	}
	if wb, ok := m.books[path]; ok {
		return wb, nil
	}
	return &mockWorkbook{}, nil
}

type writeCall struct {
	table string
	rows  int
}

// mockWriter records writes. Tables listed in fail return that error,
// tables listed in panics panic.
type mockWriter struct {
	mu     sync.Mutex
	calls  []writeCall
	fail   map[string]error
	panics map[string]bool
	delay  time.Duration

	active    int
	maxActive int
}

func (m *mockWriter) Write(_ context.Context, table string, data *sheetload.Table) (int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, writeCall{table: table, rows: len(data.Rows)})
	m.active++
	if m.active > m.maxActive {
		m.maxActive = m.active
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.active--
		m.mu.Unlock()
	}()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.panics[table] {
		panic("writer exploded")
	}
	if err := m.fail[table]; err != nil {
		return 0, err
	}
	return len(data.Rows), nil
}

func (m *mockWriter) tables() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.table
	}
	return out
}

// recordingLogger keeps every line for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	info  []string
	errs  []string
	debug []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) errorsContaining(s string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.errs {
		if strings.Contains(e, s) {
			n++
		}
	}
	return n
}

func rowsTable(n int) *sheetload.Table {
	t := &sheetload.Table{Columns: []sheetload.Column{{Name: "a", Type: sheetload.ColumnBigint}}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []sheetload.Value{sheetload.Number(float64(i))})
	}
	return t
}
