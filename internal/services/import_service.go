package services

import (
	"context"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// ImportService walks the import directory and loads every spreadsheet,
// one file at a time.
//
// Thread-Safety: NOT safe for concurrent Run calls on the same instance.
type ImportService struct {
	discoverer sheetload.FileDiscoverer
	opener     sheetload.WorkbookOpener
	dispatcher *Dispatcher
	logger     sheetload.Logger
}

// NewImportService creates an ImportService. Panics on nil dependencies.
func NewImportService(
	discoverer sheetload.FileDiscoverer,
	opener sheetload.WorkbookOpener,
	dispatcher *Dispatcher,
	logger sheetload.Logger,
) *ImportService {
	if discoverer == nil {
		panic("discoverer cannot be nil")
	}
	if opener == nil {
		panic("opener cannot be nil")
	}
	if dispatcher == nil {
		panic("dispatcher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ImportService{
		discoverer: discoverer,
		opener:     opener,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run imports every spreadsheet found in dir and returns one FileResult
// per discovered file. Failures are logged and recorded, never returned:
// a file that vanished or cannot be opened is skipped, and worksheet
// failures stay inside that file's outcomes.
func (s *ImportService) Run(ctx context.Context, dir string) []sheetload.FileResult {
	paths, err := s.discoverer.Discover(dir)
	if err != nil {
		s.logger.Error("Failed to list %s: %v", dir, err)
		return nil
	}
	s.logger.Verbose("Found %d spreadsheet(s) in %s", len(paths), dir)

	results := make([]sheetload.FileResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, s.importFile(ctx, path))
	}
	return results
}

func (s *ImportService) importFile(ctx context.Context, path string) sheetload.FileResult {
	result := sheetload.FileResult{Path: path}

	if err := s.discoverer.Verify(path); err != nil {
		result.Err = err
		s.logger.Error("The file '%s' was not found.", path)
		return result
	}

	s.logger.Verbose("Opening %s", path)
	wb, err := s.opener.Open(path)
	if err != nil {
		result.Err = err
		s.logger.Error("Error reading the Excel file: %v", err)
		return result
	}
	defer func() {
		if err := wb.Close(); err != nil {
			s.logger.Verbose("Closing %s: %v", path, err)
		}
	}()

	result.Outcomes = s.dispatcher.Dispatch(ctx, path, wb)
	return result
}
