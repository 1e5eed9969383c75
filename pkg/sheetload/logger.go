package sheetload

// Logger provides a pluggable logging interface for sheetload operations.
// Implementations must be safe for concurrent use by multiple goroutines,
// since worksheet tasks log from their own goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when debug mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	// Always logged regardless of debug mode.
	Info(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of debug mode.
	Error(format string, args ...interface{})
}
