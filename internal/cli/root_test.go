package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sheetload/internal/logging"
	"github.com/vvka-141/sheetload/pkg/sheetload"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir, name string, sheets ...string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s))
		} else {
			_, err := f.NewSheet(s)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(s, "A1", &[]any{"id", "name"}))
		require.NoError(t, f.SetSheetRow(s, "A2", &[]any{1, "first"}))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

func TestRunImport_PrintsEnvironmentLabel(t *testing.T) {
	tests := []struct {
		mode sheetload.Mode
		want string
	}{
		{sheetload.ModeProduction, "Connecting to PRD."},
		{sheetload.ModeDevelopment, "Connecting to DSV."},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var buf bytes.Buffer
			cfg := sheetload.Config{Mode: tt.mode}

			err := runImport(context.Background(), cfg, logging.NewConsoleLoggerTo(&buf, false), t.TempDir())

			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestRunImport_MissingDirectoryIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	cfg := sheetload.Config{Mode: sheetload.ModeDevelopment, DatabaseURL: sheetload.DefaultDevelopmentDatabaseURL}

	err := runImport(context.Background(), cfg, logging.NewConsoleLoggerTo(&buf, false),
		filepath.Join(t.TempDir(), "absent"))

	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "[ERROR]")
}

func TestRunImport_UnparsableURL(t *testing.T) {
	cfg := sheetload.Config{Mode: sheetload.ModeProduction, DatabaseURL: "postgres://u@h:badport/db"}

	err := runImport(context.Background(), cfg, logging.NewNullLogger(), t.TempDir())

	assert.ErrorIs(t, err, sheetload.ErrInvalidConfig)
	assert.Equal(t, sheetload.ExitConfigError, sheetload.ExitCodeForError(err))
}

func TestRunImport_MissingProductionURLFailsEachSheet(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "book.xlsx", "Customers", "Orders")
	var buf bytes.Buffer
	cfg := sheetload.Config{Mode: sheetload.ModeProduction}

	err := runImport(context.Background(), cfg, logging.NewConsoleLoggerTo(&buf, false), dir)

	require.NoError(t, err, "worksheet failures do not fail the run")
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "[ERROR]"))
	assert.Equal(t, 2, strings.Count(out, sheetload.ErrMissingDatabaseURL.Error()))
	assert.Contains(t, out, "'Customers'")
	assert.Contains(t, out, "'Orders'")
	assert.NotContains(t, out, "created and data inserted")
}

func TestRunImport_CorruptFileIsLoggedAndSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xlsx"), []byte("garbage"), 0644))
	var buf bytes.Buffer

	err := runImport(context.Background(), sheetload.Config{Mode: sheetload.ModeProduction},
		logging.NewConsoleLoggerTo(&buf, false), dir)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[ERROR] Error reading the Excel file")
}

func TestRunImport_VerboseLogsRunWithoutPassword(t *testing.T) {
	var buf bytes.Buffer
	cfg := sheetload.Config{Mode: sheetload.ModeDevelopment, DatabaseURL: sheetload.DefaultDevelopmentDatabaseURL, Debug: true}

	require.NoError(t, runImport(context.Background(), cfg, logging.NewConsoleLoggerTo(&buf, true), t.TempDir()))

	assert.Contains(t, buf.String(), "[VERBOSE] Run ")
	assert.NotContains(t, buf.String(), "passuserimportexcel")
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	rootCmd.SetArgs([]string{"extra"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Equal(t, sheetload.ExitUsageError, sheetload.ExitCodeForError(err))
}

func TestRootCommand_RejectsFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"--dir", "/tmp"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Equal(t, sheetload.ExitUsageError, sheetload.ExitCodeForError(err))
}
