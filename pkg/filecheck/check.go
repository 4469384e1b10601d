package filecheck

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vertti/shipcheck/pkg/check"
)

// RequiredCheck verifies that each required deployment file exists in the
// project directory. It reports one result per file.
type RequiredCheck struct {
	Dir   string     // project directory
	Files []string   // file names relative to Dir
	FS    FileSystem // injected for testing
}

// Run executes the required-file check.
func (c *RequiredCheck) Run() []check.Result {
	results := make([]check.Result, 0, len(c.Files))
	for _, name := range c.Files {
		id := "files." + name
		path := filepath.Join(c.Dir, name)
		_, err := c.FS.Stat(path)
		switch {
		case err == nil:
			results = append(results, check.Pass(id, name, "found"))
		case os.IsNotExist(err):
			results = append(results, check.Fail(id, name, "not found", err))
		default:
			results = append(results, check.Failf(id, name, "stat failed: %v", err))
		}
	}
	return results
}

// Contains reports whether the file at path contains the literal substring.
func Contains(fsys FileSystem, path, literal string) (bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), literal), nil
}

// Matches reports whether the file at path matches the regexp pattern.
func Matches(fsys FileSystem, path, pattern string) (bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return false, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(data), nil
}
