package service

import (
	"context"
	"strings"
	"sync"
	"time"

	perr "fixred/internal/platform/errors"
)

// fooTransport redirects any URL containing "foo": one hop to "bar", the full chain ends at "piyo".
// URLs containing "error" fail, everything else does not redirect
type fooTransport struct {
	mu    sync.Mutex
	calls map[string]int
	delay time.Duration
}

func newFooTransport() *fooTransport { return &fooTransport{calls: map[string]int{}} }

func (f *fooTransport) Follow(_ context.Context, url string, shallow bool) (string, error) {
	f.mu.Lock()
	f.calls[url]++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if strings.Contains(url, "error") {
		return "", perr.Unavailablef("connection refused")
	}
	base, _, _ := strings.Cut(url, "#")
	if !strings.Contains(base, "foo") {
		return "", nil
	}
	if shallow {
		return strings.ReplaceAll(base, "foo", "bar"), nil
	}
	return strings.ReplaceAll(base, "foo", "piyo"), nil
}

func (f *fooTransport) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fooTransport) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}
