// Package cache provides bounded LRU caches for analyzer results, keyed by
// content hash so repeated evaluations of the same text are served without
// re-running the analysis.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultSize is the entry bound for analyzer result caches.
	DefaultSize = 128

	// MaxPayloadBytes is the largest text eligible for caching. Oversized
	// payloads bypass the cache so a handful of huge documents cannot
	// dominate the working set.
	MaxPayloadBytes = 64 * 1024
)

// Cache is a concurrency-safe LRU holding analyzer results of type V.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

// New returns a cache bounded to size entries. Size must be positive.
func New[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: l}, nil
}

// MustNew is New for sizes known to be valid at compile time.
func MustNew[V any](size int) *Cache[V] {
	c, err := New[V](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Add stores value under key, evicting the least recently used entry
// when the cache is full.
func (c *Cache[V]) Add(key string, value V) {
	c.lru.Add(key, value)
}

// Len reports the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Key derives a cache key from the text's content hash plus optional
// qualifiers such as the audience tag or topic. The second return is false
// when the text exceeds MaxPayloadBytes and must not be cached.
func Key(text string, qualifiers ...string) (string, bool) {
	if len(text) > MaxPayloadBytes {
		return "", false
	}
	sum := sha256.Sum256([]byte(text))
	key := hex.EncodeToString(sum[:])
	if len(qualifiers) > 0 {
		key += ":" + strings.Join(qualifiers, ":")
	}
	return key, true
}
