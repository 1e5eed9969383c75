// Package filesystem abstracts the read-only filesystem operations used to
// discover and open spreadsheet files.
//
// Two providers are available:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: an in-memory tree for tests, which can also simulate
//     a file disappearing between discovery and use
//
// Errors for missing paths wrap fs.ErrNotExist in both providers, so callers
// can test them with errors.Is.
package filesystem
