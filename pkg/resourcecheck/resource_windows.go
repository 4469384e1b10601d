//go:build windows

package resourcecheck

import "golang.org/x/sys/windows"

// FreeDiskSpace returns free disk space in bytes.
func (r *RealChecker) FreeDiskSpace(path string) (uint64, error) {
	var free uint64
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(p, &free, nil, nil); err != nil {
		return 0, err
	}
	return free, nil
}
