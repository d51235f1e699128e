package cache

import (
	"time"

	"fixred/internal/services/fixer/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is a bounded cache whose entries expire after a TTL
type LRU struct {
	c *expirable.LRU[string, domain.Entry]
}

// NewLRU returns an LRU holding at most size entries for ttl each
// size <= 0 falls back to 1024, ttl <= 0 disables expiry
func NewLRU(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = 1024
	}
	if ttl < 0 {
		ttl = 0
	}
	return &LRU{c: expirable.NewLRU[string, domain.Entry](size, nil, ttl)}
}

// Get implements domain.Cache
func (l *LRU) Get(key string) (domain.Entry, bool) { return l.c.Get(key) }

// Put implements domain.Cache
func (l *LRU) Put(key string, e domain.Entry) { l.c.Add(key, e) }

// Len implements domain.Cache
func (l *LRU) Len() int { return l.c.Len() }

// Purge drops every entry
func (l *LRU) Purge() { l.c.Purge() }
