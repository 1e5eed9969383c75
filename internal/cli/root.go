package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vvka-141/sheetload/internal/config"
	"github.com/vvka-141/sheetload/internal/db"
	"github.com/vvka-141/sheetload/internal/db/writer"
	"github.com/vvka-141/sheetload/internal/files/scanner"
	"github.com/vvka-141/sheetload/internal/logging"
	"github.com/vvka-141/sheetload/internal/services"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

var rootCmd = &cobra.Command{
	Use:   "sheetload",
	Short: "Load Excel worksheets into PostgreSQL tables",
	Long: `sheetload imports every *.xlsx file in ` + sheetload.ImportDirectory + `.

Each worksheet replaces the table named after it (lower-cased): the table is
dropped, recreated from the worksheet header and refilled. Worksheets of one
file are written concurrently; files are processed one after another.

Environment:
  APP_ENV       "production" selects the production database
                (FLASK_ENV is read when APP_ENV is unset)
  DATABASE_URL  connection URI (required in production)
                (SQLALCHEMY_DATABASE_URI is read when DATABASE_URL is unset)
  SECRET_KEY    application secret

Variables may also be placed in a .env file in the working directory.

Exit Codes:
  0  - Run completed (individual file or worksheet failures are logged)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := logging.NewConsoleLogger(cfg.Debug)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle interrupt signals (Ctrl+C, SIGTERM): in-flight writes roll back
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling import...")
				cancel()
			case <-ctx.Done():
			}
		}()

		return runImport(ctx, cfg, logger, sheetload.ImportDirectory)
	},
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

// runImport connects to the configured database and imports every
// spreadsheet in dir. Only startup failures are returned.
func runImport(ctx context.Context, cfg sheetload.Config, logger sheetload.Logger, dir string) error {
	logger.Info("Connecting to %s.", cfg.Mode.Label())

	runID := uuid.NewString()
	logger.Verbose("Run %s with %s", runID, cfg)

	workers := services.DefaultWorkers()
	conn, err := db.Connect(ctx, cfg, workers, runID)
	if err != nil {
		return err
	}
	defer conn.Close()

	svc := services.NewImportService(
		scanner.NewScanner(),
		workbook.NewLoader(),
		services.NewDispatcher(writer.New(conn), logger, workers),
		logger,
	)
	svc.Run(ctx, dir)
	return nil
}
