// Package logging provides concrete implementations of the sheetload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes human-readable lines to stderr (or any io.Writer)
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
// Worksheet tasks log from their own goroutines, so a line is always written
// with a single Write call.
package logging
