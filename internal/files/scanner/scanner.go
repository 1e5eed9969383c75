package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/sheetload/internal/files/filesystem"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Scanner lists files matching a glob pattern in a single directory.
// Safe for concurrent use as long as the provided fsProvider is.
type Scanner struct {
	pattern    string
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner for sheetload.SpreadsheetPattern on the OS filesystem.
func NewScanner() *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a scanner on a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		pattern:    sheetload.SpreadsheetPattern,
		fsProvider: fsProvider,
	}
}

// Discover returns the paths in dir whose base name matches the pattern,
// in the order the filesystem enumerates them.
//
// Like shell globbing, names starting with a dot are skipped and a missing
// directory yields no paths rather than an error.
func (s *Scanner) Discover(dir string) ([]string, error) {
	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		matched, err := filepath.Match(s.pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", s.pattern, err)
		}
		if matched {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	return paths, nil
}

// Verify checks that path exists and is a regular file.
func (s *Scanner) Verify(path string) error {
	info, err := s.fsProvider.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", sheetload.ErrFileNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", sheetload.ErrFileNotFound, path)
	}
	return nil
}

// Verify Scanner implements the interface at compile time
var _ sheetload.FileDiscoverer = (*Scanner)(nil)
