package sheetload

// WorkbookOpener opens spreadsheet files.
type WorkbookOpener interface {
	Open(path string) (Workbook, error)
}

// Workbook is an open spreadsheet file.
// Sheet may be called from one goroutine at a time.
type Workbook interface {
	// SheetNames returns the worksheet names in workbook order.
	SheetNames() []string

	// Sheet materializes one worksheet.
	Sheet(name string) (*Table, error)

	// Close releases the underlying file.
	Close() error
}
