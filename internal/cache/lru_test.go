// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestLRU_BasicOperations(t *testing.T) {
	cache := NewLRU[int](3)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, found := cache.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
		}
		if got != want {
			t.Errorf("Get(%q) = %d, want %d", key, got, want)
		}
	}

	if cache.Len() != 3 {
		t.Errorf("Expected len 3, got %d", cache.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	cache := NewLRU[int](3)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	// Access 'a' to make it most recently used
	cache.Get("a")

	if evicted := cache.Add("d", 4); !evicted {
		t.Error("Expected Add over capacity to report an eviction")
	}

	if _, found := cache.Peek("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := cache.Peek(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
}

func TestLRU_PeekDoesNotPromote(t *testing.T) {
	cache := NewLRU[int](2)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Peek("a")
	cache.Add("c", 3)

	if _, found := cache.Peek("a"); found {
		t.Error("Peek should not protect 'a' from eviction")
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	cache := NewLRU[string](2)

	cache.Add("a", "old")
	if evicted := cache.Add("a", "new"); evicted {
		t.Error("Updating an existing key must not evict")
	}
	if got, _ := cache.Get("a"); got != "new" {
		t.Errorf("Get(a) = %q, want new", got)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestLRU_KeysOrder(t *testing.T) {
	cache := NewLRU[int](5)
	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)
	cache.Get("a")

	want := []string{"a", "c", "b"}
	if got := cache.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	cache := NewLRU[int](10)

	cache.Add("a", 1)
	cache.Add("b", 2)

	if !cache.Remove("a") {
		t.Error("Expected Remove to return true for existing key")
	}
	if cache.Remove("a") {
		t.Error("Expected Remove to return false for missing key")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got len %d", cache.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	cache := NewLRU[int](1)

	cache.Add("a", 1)
	cache.Get("a")        // hit
	cache.Get("a")        // hit
	cache.Get("nonexist") // miss
	cache.Add("b", 2)     // evicts a

	hits, misses, evictions, size := cache.Stats()
	if hits != 2 || misses != 1 || evictions != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d, %d), want (2, 1, 1, 1)", hits, misses, evictions, size)
	}
}

func TestLRU_DefaultCapacity(t *testing.T) {
	if got := NewLRU[int](0).Capacity(); got != 100 {
		t.Errorf("Capacity() = %d, want 100", got)
	}
}

func TestLRU_ConcurrentNeverExceedsCapacity(t *testing.T) {
	const capacity = 50
	cache := NewLRU[int](capacity)

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				cache.Add(fmt.Sprintf("k-%d-%d", id, i), i)
				if n := cache.Len(); n > capacity {
					t.Errorf("Len() = %d exceeds capacity %d", n, capacity)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if cache.Len() != capacity {
		t.Errorf("Len() = %d, want %d", cache.Len(), capacity)
	}
}
