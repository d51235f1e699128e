package domain

import (
	"context"
	"io"
	"io/fs"

	"fixred/internal/core/filter"
)

// FixerPort is the external port of the fixer module
type FixerPort interface {
	// Fix rewrites text into w and returns the number of replaced links
	Fix(ctx context.Context, w io.Writer, text string) (int, error)

	// FixString is Fix into a string
	FixString(ctx context.Context, text string) (string, int, error)

	// FixStream reads all of r, requires UTF-8 and writes the result to w
	FixStream(ctx context.Context, r io.Reader, w io.Writer) (int, error)

	// FixFiles rewrites every file under roots in place
	FixFiles(ctx context.Context, roots []string) (BatchResult, error)
}

// Resolver maps a scanned URL to its redirect target
// ok=false means leave the URL untouched
type Resolver interface {
	Resolve(ctx context.Context, url string, cfg filter.Config) (string, bool)
}

// Transport performs the network side of resolution.
// Deep follows every hop, shallow returns the first Location.
// An empty result with a nil error means no redirect
type Transport interface {
	Follow(ctx context.Context, url string, shallow bool) (string, error)
}

// Cache memoizes resolution outcomes by URL
// Implementations must be safe for concurrent use
type Cache interface {
	Get(key string) (Entry, bool)
	Put(key string, e Entry)
	Len() int
}

// Lister yields regular files under roots in a stable order.
// A non-nil error from fn stops the walk and is returned
type Lister interface {
	Walk(ctx context.Context, roots []string, fn func(path string) error) error
}

// FileStore reads and atomically replaces files
type FileStore interface {
	Read(path string) ([]byte, fs.FileMode, error)
	WriteAtomic(path string, data []byte, mode fs.FileMode) error
}
