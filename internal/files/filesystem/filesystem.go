package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the set of filesystem operations sheetload needs.
type FileSystemProvider interface {
	// ReadDir returns the entries directly inside dir, in the order the
	// provider enumerates them.
	ReadDir(dir string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// Open opens a file for reading. The caller closes it.
	Open(path string) (io.ReadCloser, error)
}
