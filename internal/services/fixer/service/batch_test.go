package service

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"fixred/internal/adapters/files"
	"fixred/internal/core/filter"
	perr "fixred/internal/platform/errors"
	"fixred/internal/platform/testkit"
	"fixred/internal/services/fixer/cache"
)

func newFileFixer(ft *fooTransport) *Fixer {
	return New(NewResolver(ft, cache.NewSharded()), files.NewWalker(), files.NewStore(), Config{Workers: 4, Filter: filter.Config{}})
}

func TestFixFiles_RewritesTree(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{
		"README.md":        "Docs: https://foo.example/docs.\n",
		"docs/guide.txt":   "see https://foo.example/guide#install and https://example.com\n",
		"docs/nolinks.txt": "nothing to see here\n",
	})
	ft := newFooTransport()
	f := newFileFixer(ft)

	res, err := f.FixFiles(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("fix files: %v", err)
	}
	if res.Files != 3 || res.Fixed != 2 || res.Written != 2 || res.Skipped != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := testkit.ReadFile(t, root, "README.md"); got != "Docs: https://piyo.example/docs.\n" {
		t.Fatalf("README = %q", got)
	}
	if got := testkit.ReadFile(t, root, "docs/guide.txt"); got != "see https://piyo.example/guide#install and https://example.com\n" {
		t.Fatalf("guide = %q", got)
	}
}

func TestFixFiles_NoChangeLeavesFileUntouched(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{"a.txt": "https://example.com stays\n"})
	path := filepath.Join(root, "a.txt")
	if err := os.Chmod(path, 0o444); err != nil {
		t.Fatal(err)
	}
	before := testkit.ModTime(t, root, "a.txt")

	res, err := newFileFixer(newFooTransport()).FixFiles(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("read-only file without changes must not be written: %v", err)
	}
	if res.Written != 0 || testkit.ModTime(t, root, "a.txt") != before {
		t.Fatalf("file was rewritten: %+v", res)
	}
}

func TestFixFiles_SkipsUndecodable(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{"b.txt": "https://foo.example\n"})
	bin := filepath.Join(root, "a.bin")
	if err := os.WriteFile(bin, []byte{0xff, 0xfe, 'h', 't', 't', 'p'}, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newFileFixer(newFooTransport()).FixFiles(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("decode failure must not abort the batch: %v", err)
	}
	if res.Skipped != 1 || res.Fixed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := testkit.ReadFile(t, root, "b.txt"); got != "https://piyo.example\n" {
		t.Fatalf("b.txt = %q", got)
	}
	raw, _ := os.ReadFile(bin)
	if len(raw) != 6 {
		t.Fatalf("binary file modified")
	}
}

func TestFixFiles_MissingPathIsFatal(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{"a.txt": "https://foo.example"})
	missing := filepath.Join(root, "missing")
	_, err := newFileFixer(newFooTransport()).FixFiles(context.Background(), []string{missing, root})
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("want IO error, got %v", err)
	}
	testkit.MustContain(t, err.Error(), missing)
	if got := testkit.ReadFile(t, root, "a.txt"); got != "https://foo.example" {
		t.Fatalf("batch should stop at the first fatal error, a.txt = %q", got)
	}
}

func TestFixFiles_UnwritableDirIsFatal(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{"ro/a.txt": "https://foo.example"})
	dir := filepath.Join(root, "ro")
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := newFileFixer(newFooTransport()).FixFiles(context.Background(), []string{root})
	e, ok := perr.As(err)
	if !ok || e.Op() != "write" {
		t.Fatalf("want write IO error, got %v", err)
	}
}

func TestFixFiles_Cancelled(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{"a.txt": "https://foo.example"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newFileFixer(newFooTransport()).FixFiles(ctx, []string{root}); err == nil {
		t.Fatalf("cancelled batch should fail")
	}
}

func TestFixFiles_PortsRequired(t *testing.T) {
	f := New(NewResolver(newFooTransport(), cache.NewSharded()), nil, nil, Config{})
	if _, err := f.FixFiles(context.Background(), []string{"."}); err == nil {
		t.Fatalf("missing ports should error")
	}
}

func TestFixFiles_SharedCacheAcrossFiles(t *testing.T) {
	root := testkit.WriteTree(t, t.TempDir(), map[string]string{
		"a.md": "https://foo.example/shared",
		"b.md": "https://foo.example/shared",
	})
	ft := newFooTransport()
	if _, err := newFileFixer(ft).FixFiles(context.Background(), []string{root}); err != nil {
		t.Fatal(err)
	}
	if c := ft.count("https://foo.example/shared"); c != 1 {
		t.Fatalf("transport calls = %d, want 1", c)
	}
}

func TestFixFiles_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	tmp := t.TempDir()
	testkit.WriteTree(t, tmp, map[string]string{
		"docs/real.md": "see https://foo.example/x\n",
		"other/a.md":   "and https://foo.example/y\n",
	})
	if err := os.Symlink("real.md", filepath.Join(tmp, "docs", "link.md")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(tmp, "other"), filepath.Join(tmp, "other-link")); err != nil {
		t.Fatal(err)
	}
	f := newFileFixer(newFooTransport())

	// the symlink is written through, the real file is then already fixed
	res, err := f.FixFiles(context.Background(), []string{filepath.Join(tmp, "docs", "link.md"), filepath.Join(tmp, "other-link")})
	if err != nil {
		t.Fatalf("fix files: %v", err)
	}
	if res.Files != 2 || res.Fixed != 2 || res.Written != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if st, err := os.Lstat(filepath.Join(tmp, "docs", "link.md")); err != nil || st.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("link.md is no longer a symlink: %v", err)
	}
	if got := testkit.ReadFile(t, tmp, "docs/real.md"); got != "see https://piyo.example/x\n" {
		t.Fatalf("real.md = %q", got)
	}
	if got := testkit.ReadFile(t, tmp, "other/a.md"); got != "and https://piyo.example/y\n" {
		t.Fatalf("other/a.md = %q", got)
	}
}
