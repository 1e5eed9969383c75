package services

import (
	"context"
	"fmt"
	"runtime"

	"github.com/vvka-141/sheetload/pkg/sheetload"
	"golang.org/x/sync/errgroup"
)

// Dispatcher writes the worksheets of one workbook concurrently.
//
// Thread-Safety: Safe for concurrent Dispatch calls if the writer and logger are.
type Dispatcher struct {
	writer  sheetload.TableWriter
	logger  sheetload.Logger
	workers int
}

// DefaultWorkers is the worker pool size used when none is given.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// NewDispatcher creates a Dispatcher running at most workers writes at once.
// workers < 1 selects DefaultWorkers. Panics on nil dependencies.
func NewDispatcher(writer sheetload.TableWriter, logger sheetload.Logger, workers int) *Dispatcher {
	if writer == nil {
		panic("writer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if workers < 1 {
		workers = DefaultWorkers()
	}
	return &Dispatcher{writer: writer, logger: logger, workers: workers}
}

// Workers returns the worker pool size.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Dispatch materializes every worksheet of wb in workbook order and writes
// each one on the worker pool. It returns once all writes have finished,
// with one Outcome per worksheet in workbook order.
//
// A failing worksheet never stops its siblings. Worksheets whose names
// differ only by case share a table and race: when the table already exists
// the last commit wins, on a first run the later CREATE TABLE fails.
func (d *Dispatcher) Dispatch(ctx context.Context, path string, wb sheetload.Workbook) []sheetload.Outcome {
	names := wb.SheetNames()
	outcomes := make([]sheetload.Outcome, len(names))

	// Tasks never return an error so the group context is never cancelled.
	var g errgroup.Group
	g.SetLimit(d.workers)

	for i, name := range names {
		outcomes[i] = sheetload.Outcome{Sheet: name, Table: sheetload.TableName(name)}

		// workbook reads stay on this goroutine
		data, err := wb.Sheet(name)
		if err != nil {
			outcomes[i].Err = err
			d.logger.Error("Error processing sheet '%s' of %s: %v", name, path, err)
			continue
		}
		d.logger.Verbose("Sheet '%s': %d columns, %d rows", name, len(data.Columns), len(data.Rows))

		g.Go(func() error {
			d.write(ctx, &outcomes[i], data)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

func (d *Dispatcher) write(ctx context.Context, out *sheetload.Outcome, data *sheetload.Table) {
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("%w %q: panic: %v", sheetload.ErrWriteFailed, out.Table, r)
			d.logger.Error("Error processing sheet '%s': %v", out.Sheet, out.Err)
		}
	}()

	n, err := d.writer.Write(ctx, out.Table, data)
	if err != nil {
		out.Err = err
		d.logger.Error("Error processing sheet '%s': %v", out.Sheet, err)
		return
	}
	out.Rows = n
	d.logger.Info("Table '%s' created and data inserted.", out.Table)
}
