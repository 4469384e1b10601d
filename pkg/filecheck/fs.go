package filecheck

import (
	"io/fs"
	"os"
)

// FileSystem abstracts file access for testability. Other check packages
// that only need to stat or read project files share this seam.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// RealFileSystem implements FileSystem using the OS filesystem.
type RealFileSystem struct{}

// Stat returns file info for the named file.
func (RealFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the named file.
func (RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // intentional: reading project files under check
}

// MockFileSystem is a test double for FileSystem.
type MockFileSystem struct {
	StatFunc     func(name string) (fs.FileInfo, error)
	ReadFileFunc func(name string) ([]byte, error)
}

// Stat calls the mock function.
func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	return m.StatFunc(name)
}

// ReadFile calls the mock function.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	return m.ReadFileFunc(name)
}
