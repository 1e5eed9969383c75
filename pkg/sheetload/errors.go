package sheetload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	for _, o := range result.Outcomes {
//	    if errors.Is(o.Err, sheetload.ErrConnectionFailed) {
//	        // every other worksheet will fail the same way
//	    }
//	}
var (
	// ErrInvalidConfig indicates the resolved configuration cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileNotFound indicates a discovered path vanished or is not a regular file.
	ErrFileNotFound = errors.New("file not found")

	// ErrOpenFailed indicates a spreadsheet file could not be opened or parsed.
	ErrOpenFailed = errors.New("failed to open spreadsheet")

	// ErrSheetParseFailed indicates a single worksheet could not be materialized.
	ErrSheetParseFailed = errors.New("failed to parse worksheet")

	// ErrWriteFailed indicates a worksheet could not be written to its table.
	ErrWriteFailed = errors.New("failed to write table")

	// ErrConnectionFailed indicates the database could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrMissingDatabaseURL indicates production mode without DATABASE_URL.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
)

// ExitCodeForError returns the appropriate exit code for a startup error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrInvalidConfig) {
		return ExitConfigError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "accepts ") && strings.Contains(errStr, "arg(s)") {
		return ExitUsageError
	}

	return ExitGeneralError
}
