package redirect

import (
	"context"
	"strings"

	"fixred/internal/services/fixer/domain"
)

// Memo wraps a Transport and remembers successful lookups per mode.
// Errors are not remembered, a later request may succeed
type Memo struct {
	next  domain.Transport
	cache domain.Cache
}

// NewMemo constructs a Memo over next backed by cache
func NewMemo(next domain.Transport, cache domain.Cache) *Memo {
	return &Memo{next: next, cache: cache}
}

// Follow implements domain.Transport
func (m *Memo) Follow(ctx context.Context, url string, shallow bool) (string, error) {
	key := memoKey(url, shallow)
	if e, ok := m.cache.Get(key); ok {
		return e.URL, nil
	}
	got, err := m.next.Follow(ctx, url, shallow)
	if err != nil {
		return "", err
	}
	m.cache.Put(key, domain.Entry{URL: got, OK: true})
	return got, nil
}

func memoKey(url string, shallow bool) string {
	base, _, _ := strings.Cut(url, "#")
	if shallow {
		return "shallow|" + base
	}
	return "deep|" + base
}
