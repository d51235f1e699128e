package files

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	perr "fixred/internal/platform/errors"
)

// Walker implements domain.Lister over the local file system.
// Directories are walked in lexical order. Symlinked files and symlinked roots are followed,
// symlinked directories below a root are not
type Walker struct{}

// NewWalker constructs a Walker
func NewWalker() *Walker { return &Walker{} }

// Walk calls fn for every regular file under roots
func (w *Walker) Walk(ctx context.Context, roots []string, fn func(path string) error) error {
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.walkOne(ctx, root, fn); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkOne(ctx context.Context, root string, fn func(string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return perr.IOf(err, "walk", "%s", root)
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return fn(root)
		}
		return nil
	}

	// WalkDir does not follow a symlinked root, walk its target and report paths under root
	base, err := filepath.EvalSymlinks(root)
	if err != nil {
		return perr.IOf(err, "walk", "%s", root)
	}
	return filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if base != root {
			if rel, rerr := filepath.Rel(base, path); rerr == nil {
				path = filepath.Join(root, rel)
			}
		}
		if err != nil {
			return perr.IOf(err, "walk", "%s", path)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		regular := d.Type().IsRegular()
		if d.Type()&fs.ModeSymlink != 0 {
			t, err := os.Stat(path)
			if err != nil {
				return perr.IOf(err, "walk", "%s", path)
			}
			regular = t.Mode().IsRegular()
		}
		if !regular {
			return nil
		}
		return fn(path)
	})
}
