// Package resourcecheck detects host resources the build steps depend on.
package resourcecheck

// Checker abstracts free-disk-space detection for testability.
type Checker interface {
	// FreeDiskSpace returns free disk space in bytes at the given path.
	FreeDiskSpace(path string) (uint64, error)
}

// RealChecker implements Checker using actual system calls.
type RealChecker struct{}

// MockChecker is a test double for Checker.
type MockChecker struct {
	FreeDiskSpaceFunc func(path string) (uint64, error)
}

// FreeDiskSpace calls the mock function.
func (m *MockChecker) FreeDiskSpace(path string) (uint64, error) {
	return m.FreeDiskSpaceFunc(path)
}
