// Package testutil holds shared test doubles for the check packages.
package testutil

import (
	"io/fs"
	"strings"
	"time"
)

// MapFS is an in-memory FileSystem for tests. Keys are paths; a value is
// the file content. Paths registered via Dirs stat as directories.
type MapFS struct {
	Files map[string]string
	Dirs  []string
}

// Stat returns fake file info for a registered path.
func (m *MapFS) Stat(name string) (fs.FileInfo, error) {
	for _, d := range m.Dirs {
		if d == name {
			return fakeInfo{name: name, dir: true}, nil
		}
	}
	if content, ok := m.Files[name]; ok {
		return fakeInfo{name: name, size: int64(len(content))}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile returns the registered content for a path.
func (m *MapFS) ReadFile(name string) ([]byte, error) {
	if content, ok := m.Files[name]; ok {
		return []byte(content), nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

type fakeInfo struct {
	name string
	size int64
	dir  bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() any           { return nil }

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}
