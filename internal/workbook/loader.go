package workbook

import (
	"fmt"

	"github.com/vvka-141/sheetload/internal/files/filesystem"
	"github.com/vvka-141/sheetload/pkg/sheetload"
	"github.com/xuri/excelize/v2"
)

// Loader opens spreadsheet files through a filesystem provider.
type Loader struct {
	fsProvider filesystem.FileSystemProvider
}

// NewLoader creates a Loader reading from the OS filesystem.
func NewLoader() *Loader {
	return NewLoaderWithFS(filesystem.NewOSFileSystem())
}

// NewLoaderWithFS creates a Loader reading from a custom filesystem provider.
// Panics if fsProvider is nil.
func NewLoaderWithFS(fsProvider filesystem.FileSystemProvider) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Loader{fsProvider: fsProvider}
}

// Open opens the workbook at path. Any failure (missing file, not a zip,
// not an OOXML workbook, I/O error) wraps sheetload.ErrOpenFailed.
func (l *Loader) Open(path string) (sheetload.Workbook, error) {
	rc, err := l.fsProvider.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", sheetload.ErrOpenFailed, path, err)
	}
	defer rc.Close()

	f, err := excelize.OpenReader(rc)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", sheetload.ErrOpenFailed, path, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	return &Workbook{
		path:       path,
		file:       f,
		date1904:   date1904,
		dateStyles: make(map[int]bool),
	}, nil
}

var _ sheetload.WorkbookOpener = (*Loader)(nil)
