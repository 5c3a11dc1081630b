// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/goccy/go-json"
)

type ttlItem[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a keyed memo whose entries expire a fixed time after they are set.
//
// Expired entries are dropped on read and swept on every write, so no
// background goroutine is started and a TTL needs no shutdown.
//
//	memo := cache.NewTTL[models.Stats](5*time.Minute, nil)
//	key := cache.MemoKey("stats", capturedAt.UnixNano())
//	if s, ok := memo.Get(key); ok {
//	    return s
//	}
type TTL[V any] struct {
	mu    sync.Mutex
	items map[string]ttlItem[V]
	ttl   time.Duration
	clock quartz.Clock

	hits    atomic.Int64
	misses  atomic.Int64
	expired atomic.Int64
}

// NewTTL creates a memo with the given default lifetime. A nil clock uses
// the real clock.
func NewTTL[V any](ttl time.Duration, clock quartz.Clock) *TTL[V] {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &TTL[V]{items: make(map[string]ttlItem[V]), ttl: ttl, clock: clock}
}

// Get returns the live value for key. An entry is expired once its lifetime
// has fully elapsed.
func (c *TTL[V]) Get(key string) (V, bool) {
	now := c.clock.Now()

	c.mu.Lock()
	item, ok := c.items[key]
	if ok && !now.Before(item.expiresAt) {
		delete(c.items, key)
		c.expired.Add(1)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return item.value, true
}

// Set stores value under key with the default lifetime.
func (c *TTL[V]) Set(key string, value V) {
	c.SetFor(key, value, c.ttl)
}

// SetFor stores value under key with a custom lifetime.
func (c *TTL[V]) SetFor(key string, value V, ttl time.Duration) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, k)
			c.expired.Add(1)
		}
	}
	c.items[key] = ttlItem[V]{value: value, expiresAt: now.Add(ttl)}
}

// Delete removes key and reports whether it was present.
func (c *TTL[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	delete(c.items, key)
	return ok
}

// Len returns the number of stored entries, including any not yet swept.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Counters returns lifetime hit, miss, and expiry counts.
func (c *TTL[V]) Counters() (hits, misses, expired int64) {
	return c.hits.Load(), c.misses.Load(), c.expired.Load()
}

// MemoKey derives a stable key from a prefix and JSON-encodable params.
// Params that cannot be encoded fall back to their %v form.
func MemoKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, sum[:16])
}
