// Package cache implements the resolution caches used by the fixer
package cache

import (
	"hash/fnv"
	"sync"

	"fixred/internal/services/fixer/domain"
)

const shardCount = 32

type shard struct {
	mu sync.RWMutex
	m  map[string]domain.Entry
}

// Sharded is an unbounded lock-striped map that lives for one run
type Sharded struct {
	shards [shardCount]shard
}

// NewSharded returns an empty Sharded cache
func NewSharded() *Sharded {
	c := &Sharded{}
	for i := range c.shards {
		c.shards[i].m = make(map[string]domain.Entry)
	}
	return c
}

func (c *Sharded) shard(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &c.shards[h.Sum32()%shardCount]
}

// Get implements domain.Cache
func (c *Sharded) Get(key string) (domain.Entry, bool) {
	s := c.shard(key)
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	return e, ok
}

// Put implements domain.Cache
func (c *Sharded) Put(key string, e domain.Entry) {
	s := c.shard(key)
	s.mu.Lock()
	s.m[key] = e
	s.mu.Unlock()
}

// Len implements domain.Cache
func (c *Sharded) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.m)
		s.mu.RUnlock()
	}
	return n
}
