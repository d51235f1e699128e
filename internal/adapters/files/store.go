package files

import (
	"io/fs"
	"os"
	"path/filepath"

	perr "fixred/internal/platform/errors"
)

// Store implements domain.FileStore
type Store struct{}

// NewStore constructs a Store
func NewStore() *Store { return &Store{} }

// Read returns the content and permission bits of path
func (s *Store) Read(path string) ([]byte, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, perr.IOf(err, "read", "%s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, perr.IOf(err, "read", "%s", path)
	}
	return b, info.Mode().Perm(), nil
}

// WriteAtomic replaces path with data through a temp file in the same directory.
// Readers see either the old or the new content, never a partial write
func (s *Store) WriteAtomic(path string, data []byte, mode fs.FileMode) error {
	if err := writeAtomic(path, data, mode); err != nil {
		return perr.IOf(err, "write", "%s", path)
	}
	return nil
}

func writeAtomic(dest string, data []byte, mode fs.FileMode) error {
	// a symlink is written through so the link itself survives
	if real, err := filepath.EvalSymlinks(dest); err == nil {
		dest = real
	}
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".fixred-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if mode == 0 {
		mode = 0o644
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := osReplace(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// best effort, persists the rename on crash
	_ = syncDir(dir)
	return nil
}
