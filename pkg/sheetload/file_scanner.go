package sheetload

// FileDiscoverer finds spreadsheet files to import.
type FileDiscoverer interface {
	// Discover returns the paths in dir whose name matches the spreadsheet
	// pattern, in filesystem enumeration order.
	Discover(dir string) ([]string, error)

	// Verify checks that path still exists and is a regular file.
	Verify(path string) error
}
