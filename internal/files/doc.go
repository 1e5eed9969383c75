// Package files groups the file-handling sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: discovery of spreadsheet files in the import directory
//
// # Usage
//
//	s := scanner.NewScanner()
//	paths, err := s.Discover(sheetload.ImportDirectory)
//	for _, p := range paths {
//	    if err := s.Verify(p); err != nil {
//	        continue // removed since discovery
//	    }
//	}
package files
