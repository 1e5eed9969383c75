// Package scanner discovers spreadsheet files in the import directory.
//
// Discovery is a flat, non-recursive listing filtered by a glob pattern
// (*.xlsx). Because files may disappear between discovery and use, callers
// re-check each path with Verify right before opening it.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests can run against an in-memory tree.
package scanner
