package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sheetload/internal/db"
	"github.com/vvka-141/sheetload/internal/db/writer"
	"github.com/vvka-141/sheetload/internal/files/filesystem"
	"github.com/vvka-141/sheetload/internal/files/scanner"
	"github.com/vvka-141/sheetload/internal/logging"
	"github.com/vvka-141/sheetload/internal/services"
	testhelpers "github.com/vvka-141/sheetload/internal/testing"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
	"github.com/xuri/excelize/v2"
)

const importDir = "/srv/sheetload/import"

func xlsx(t *testing.T, sheets map[string][][]any, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImport_Integration_EndToEnd(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	pool := testhelpers.CreateTestDB(t, connString, testhelpers.TestDBName(t))
	ctx := context.Background()

	fs := filesystem.NewMemoryFileSystem(importDir)
	fs.AddFile("orders.xlsx", xlsx(t, map[string][][]any{
		"Orders": {
			{"id", "customer", "total", "paid"},
			{1, "acme", 10.5, true},
			{2, "globex", 3, false},
			{3, nil, 7.25, true},
		},
		"Regions": {
			{"code", "name"},
			{"N", "North"},
			{"S", "South"},
		},
	}, "Orders", "Regions"))
	fs.AddFile("broken.xlsx", []byte("not a zip"))
	fs.AddFile("notes.txt", []byte("ignored"))

	svc := services.NewImportService(
		scanner.NewScannerWithFS(fs),
		workbook.NewLoaderWithFS(fs),
		services.NewDispatcher(writer.New(db.NewPoolAdapter(pool)), logging.NewNullLogger(), 2),
		logging.NewNullLogger(),
	)

	results := svc.Run(ctx, importDir)

	require.Len(t, results, 2)
	var broken, orders sheetload.FileResult
	for _, r := range results {
		switch r.Path {
		case importDir + "/broken.xlsx":
			broken = r
		case importDir + "/orders.xlsx":
			orders = r
		}
	}
	assert.ErrorIs(t, broken.Err, sheetload.ErrOpenFailed)
	require.NoError(t, orders.Err)
	require.Len(t, orders.Outcomes, 2)
	for _, o := range orders.Outcomes {
		assert.NoError(t, o.Err, o.Sheet)
	}

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&count))
	assert.Equal(t, 3, count)

	var total float64
	var paid bool
	require.NoError(t, pool.QueryRow(ctx, `SELECT total, paid FROM orders WHERE id = 2`).Scan(&total, &paid))
	assert.InDelta(t, 3.0, total, 1e-9)
	assert.False(t, paid)

	var dataType string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT data_type FROM information_schema.columns WHERE table_name = 'orders' AND column_name = 'id'`).Scan(&dataType))
	assert.Equal(t, "bigint", dataType)

	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM regions`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestImport_Integration_RerunReplaces(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	pool := testhelpers.CreateTestDB(t, connString, testhelpers.TestDBName(t))
	ctx := context.Background()

	fs := filesystem.NewMemoryFileSystem(importDir)
	fs.AddFile("stock.xlsx", xlsx(t, map[string][][]any{
		"Stock": {{"sku", "qty"}, {"a", 1}, {"b", 2}, {"c", 3}},
	}, "Stock"))

	newService := func() *services.ImportService {
		return services.NewImportService(
			scanner.NewScannerWithFS(fs),
			workbook.NewLoaderWithFS(fs),
			services.NewDispatcher(writer.New(db.NewPoolAdapter(pool)), logging.NewNullLogger(), 0),
			logging.NewNullLogger(),
		)
	}

	newService().Run(ctx, importDir)

	fs.AddFile("stock.xlsx", xlsx(t, map[string][][]any{
		"Stock": {{"sku", "qty"}, {"z", 9}},
	}, "Stock"))
	newService().Run(ctx, importDir)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM stock`).Scan(&count))
	assert.Equal(t, 1, count)
}
