//go:build windows

package files

import "golang.org/x/sys/windows"

// osReplace moves tmpPath over dest with MoveFileEx, replacing the existing file
func osReplace(tmpPath, dest string) error {
	from, err := windows.UTF16PtrFromString(tmpPath)
	if err != nil {
		return err
	}
	to, err := windows.UTF16PtrFromString(dest)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}

// syncDir is a no-op, directory handles cannot be flushed on windows
func syncDir(string) error { return nil }
