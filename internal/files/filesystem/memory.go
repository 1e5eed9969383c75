package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	seq     int
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// ReadDir enumerates entries in insertion order.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	root    string
	entries map[string]*memoryEntry
	nextSeq int
}

// NewMemoryFileSystem creates an in-memory filesystem whose relative paths
// are resolved against root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		root:    path.Clean(filepath.ToSlash(root)),
		entries: make(map[string]*memoryEntry),
	}
	mfs.addDir(mfs.root)
	return mfs
}

// AddFile adds a regular file, creating parent directories as needed.
func (mfs *MemoryFileSystem) AddFile(filePath string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(filePath)
	mfs.ensureParents(abs)
	mfs.entries[abs] = &memoryEntry{
		seq:     mfs.sequence(),
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(dirPath)
	mfs.ensureParents(abs)
	mfs.addDir(abs)
}

// Remove deletes a file or an empty directory.
func (mfs *MemoryFileSystem) Remove(p string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.entries, mfs.resolve(p))
}

func (mfs *MemoryFileSystem) ReadDir(dir string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(dir)
	entry, ok := mfs.entries[abs]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}
	if !entry.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var children []*memoryEntry
	for p, e := range mfs.entries {
		if p != abs && path.Dir(p) == abs {
			children = append(children, e)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].seq < children[j].seq })

	result := make([]FileInfo, 0, len(children))
	for _, c := range children {
		result = append(result, c.info)
	}
	return result, nil
}

func (mfs *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[mfs.resolve(p)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}

func (mfs *MemoryFileSystem) Open(p string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[mfs.resolve(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	if entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", p)
	}
	return io.NopCloser(bytes.NewReader(entry.content)), nil
}

// resolve normalizes p to an absolute, slash-separated path.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ensureParents creates directory entries for all parents of p.
// Callers hold mu.
func (mfs *MemoryFileSystem) ensureParents(p string) {
	dir := path.Dir(p)
	if dir == p {
		return
	}
	if _, exists := mfs.entries[dir]; exists {
		return
	}
	mfs.ensureParents(dir)
	mfs.addDir(dir)
}

func (mfs *MemoryFileSystem) addDir(p string) {
	if _, exists := mfs.entries[p]; exists {
		return
	}
	mfs.entries[p] = &memoryEntry{
		seq: mfs.sequence(),
		info: &memoryFileInfo{
			name:    path.Base(p),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) sequence() int {
	mfs.nextSeq++
	return mfs.nextSeq
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
