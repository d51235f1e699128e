package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files under root from a path to content map and returns root.
// Parent directories are created as needed
func WriteTree(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return root
}

// ReadFile returns the content of root/rel as a string, failing the test on error
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(b)
}

// ModTime returns the modification time of root/rel, failing the test on error
func ModTime(t *testing.T, root, rel string) int64 {
	t.Helper()
	st, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stat %s: %v", rel, err)
	}
	return st.ModTime().UnixNano()
}
