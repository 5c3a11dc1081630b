// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
)

func TestTTL_GetSet(t *testing.T) {
	c := NewTTL[string](time.Minute, quartz.NewMock(t))

	c.Set("key1", "value1")
	if v, ok := c.Get("key1"); !ok || v != "value1" {
		t.Errorf("Get(key1) = %q, %v", v, ok)
	}
	if v, ok := c.Get("key2"); ok || v != "" {
		t.Errorf("Get(key2) = %q, %v, want zero value and false", v, ok)
	}

	hits, misses, _ := c.Counters()
	if hits != 1 || misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", hits, misses)
	}
}

func TestTTL_ExpiresAtLifetime(t *testing.T) {
	clock := quartz.NewMock(t)
	c := NewTTL[int](5*time.Minute, clock)
	c.Set("k", 1)

	clock.Advance(4 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry should be live before its lifetime elapses")
	}

	clock.Advance(time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should expire exactly at its lifetime")
	}
	if _, _, expired := c.Counters(); expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}
}

func TestTTL_SetSweepsExpired(t *testing.T) {
	clock := quartz.NewMock(t)
	c := NewTTL[int](time.Minute, clock)

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.Advance(2 * time.Minute)
	c.Set("new", 3)

	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1 after sweep", got)
	}
}

func TestTTL_SetForOverridesDefault(t *testing.T) {
	clock := quartz.NewMock(t)
	c := NewTTL[string](time.Hour, clock)

	c.SetFor("short", "v", time.Second)
	clock.Advance(2 * time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("custom lifetime should apply")
	}
}

func TestTTL_Delete(t *testing.T) {
	c := NewTTL[int](time.Minute, quartz.NewMock(t))
	c.Set("a", 1)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestMemoKey(t *testing.T) {
	captured := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	k1 := MemoKey("stats", captured.UnixNano())
	k2 := MemoKey("stats", captured.UnixNano())
	k3 := MemoKey("stats", captured.Add(time.Second).UnixNano())

	if k1 != k2 {
		t.Error("same params should produce the same key")
	}
	if k1 == k3 {
		t.Error("different params should produce different keys")
	}
	if !strings.HasPrefix(k1, "stats:") {
		t.Errorf("key %q lacks prefix", k1)
	}
	if k := MemoKey("m", make(chan int)); !strings.HasPrefix(k, "m:") {
		t.Errorf("fallback key = %q", k)
	}
}

func TestTTL_Concurrency(t *testing.T) {
	c := NewTTL[int](time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if got := c.Len(); got != 1000 {
		t.Errorf("Len() = %d, want 1000", got)
	}
}
