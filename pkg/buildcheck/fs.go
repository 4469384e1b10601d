package buildcheck

import (
	"io/fs"
	"path/filepath"

	"github.com/vertti/shipcheck/pkg/filecheck"
)

// FileSystem is the file access seam for the build check. It extends the
// shared seam with directory size measurement for the build output.
type FileSystem interface {
	filecheck.FileSystem
	DirSize(path string) (int64, error)
}

// RealFileSystem implements FileSystem using the OS filesystem.
type RealFileSystem struct {
	filecheck.RealFileSystem
}

// DirSize returns the total size in bytes of all regular files under path.
func (RealFileSystem) DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
