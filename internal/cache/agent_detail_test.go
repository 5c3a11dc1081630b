// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
)

const aliceDetail = `{"agent":{
	"username":"alice",
	"score":30,
	"bio":"  builds things  ",
	"wallet_address":"0xabc",
	"wallet_balance":"12.5",
	"likes":7,
	"recent_posts":[{"content":"hello","created_at":"2026-01-02T03:04:05Z","likes":1}]
}}`

func newTestDetailCache(t *testing.T, up *fakeUpstream, roster RosterLookup, capacity int) (*AgentDetailCache, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	c := NewAgentDetailCache(up, strictParser(t), roster, DetailConfig{
		TTL:          15 * time.Minute,
		Capacity:     capacity,
		FetchTimeout: time.Second,
		Clock:        clock,
	})
	return c, clock
}

// loadedRoster returns a LeaderboardCache holding rosterV1.
func loadedRoster(t *testing.T, up *fakeUpstream) *LeaderboardCache {
	t.Helper()
	lb, _ := newTestLeaderboard(t, up)
	if _, err := lb.GetRoster(context.Background()); err != nil {
		t.Fatal(err)
	}
	return lb
}

func TestGetDetail_FetchesMergesAndCaches(t *testing.T) {
	up := newFakeUpstream(rosterV1)
	up.setAgent("alice", aliceDetail)
	roster := loadedRoster(t, up)
	c, _ := newTestDetailCache(t, up, roster, 10)

	agent, err := c.GetDetail(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if agent == nil || !agent.Enriched {
		t.Fatalf("GetDetail() = %+v, want enriched record", agent)
	}
	if agent.Bio() != "builds things" {
		t.Errorf("Bio() = %q", agent.Bio())
	}
	if agent.Rank != 1 || agent.City != "Lisbon" {
		t.Errorf("roster fields not merged: rank=%d city=%q", agent.Rank, agent.City)
	}
	if agent.Likes == nil || *agent.Likes != 7 {
		t.Errorf("detail likes should win, got %v", agent.Likes)
	}

	if _, err := c.GetDetail(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	if got := up.agentCalls.Load(); got != 1 {
		t.Errorf("agent calls = %d, want 1 (second read cached)", got)
	}
}

func TestGetDetail_ReturnsCopies(t *testing.T) {
	up := newFakeUpstream(rosterV1)
	up.setAgent("alice", aliceDetail)
	c, _ := newTestDetailCache(t, up, nil, 10)

	first, err := c.GetDetail(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	first.Detail.RecentPosts[0].Content = "mutated"

	second, _ := c.GetDetail(context.Background(), "alice")
	if second.Detail.RecentPosts[0].Content != "hello" {
		t.Error("cached record was mutated through a returned copy")
	}
}

func TestGetDetail_ExpiredRefetches(t *testing.T) {
	up := newFakeUpstream(rosterV1)
	up.setAgent("alice", aliceDetail)
	c, clock := newTestDetailCache(t, up, nil, 10)

	if _, err := c.GetDetail(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	clock.Advance(16 * time.Minute)
	if _, err := c.GetDetail(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	if got := up.agentCalls.Load(); got != 2 {
		t.Errorf("agent calls = %d, want 2 after TTL", got)
	}
}

func TestGetDetail_FallbackOrder(t *testing.T) {
	t.Run("stale cached detail", func(t *testing.T) {
		up := newFakeUpstream(rosterV1)
		up.setAgent("alice", aliceDetail)
		c, clock := newTestDetailCache(t, up, nil, 10)

		if _, err := c.GetDetail(context.Background(), "alice"); err != nil {
			t.Fatal(err)
		}
		clock.Advance(time.Hour)
		up.setAgentErr(errUpstreamDown)

		agent, err := c.GetDetail(context.Background(), "alice")
		if err != nil || agent == nil || !agent.Enriched {
			t.Errorf("GetDetail() = (%+v, %v), want stale enriched record", agent, err)
		}
	})

	t.Run("minimal roster record", func(t *testing.T) {
		up := newFakeUpstream(rosterV1)
		roster := loadedRoster(t, up)
		up.setAgentErr(errUpstreamDown)
		c, _ := newTestDetailCache(t, up, roster, 10)

		agent, err := c.GetDetail(context.Background(), "bob")
		if err != nil {
			t.Fatalf("GetDetail() error = %v", err)
		}
		if agent == nil || agent.Enriched || agent.Username != "bob" || agent.Rank != 2 {
			t.Errorf("GetDetail() = %+v, want minimal roster record", agent)
		}
	})

	t.Run("not found", func(t *testing.T) {
		up := newFakeUpstream(rosterV1)
		roster := loadedRoster(t, up)
		c, _ := newTestDetailCache(t, up, roster, 10)

		agent, err := c.GetDetail(context.Background(), "ghost")
		if err != nil || agent != nil {
			t.Errorf("GetDetail() = (%+v, %v), want (nil, nil)", agent, err)
		}
	})

	t.Run("propagated error", func(t *testing.T) {
		up := newFakeUpstream(rosterV1)
		up.setAgentErr(errUpstreamDown)
		c, _ := newTestDetailCache(t, up, nil, 10)

		_, err := c.GetDetail(context.Background(), "ghost")
		if !errors.Is(err, errUpstreamDown) {
			t.Errorf("error = %v, want upstream cause", err)
		}
	})
}

func TestGetDetail_EmptyUsername(t *testing.T) {
	up := newFakeUpstream(rosterV1)
	c, _ := newTestDetailCache(t, up, nil, 10)

	agent, err := c.GetDetail(context.Background(), "   ")
	if agent != nil || err != nil {
		t.Errorf("GetDetail(blank) = (%v, %v), want (nil, nil)", agent, err)
	}
	if up.agentCalls.Load() != 0 {
		t.Error("blank username must not reach upstream")
	}
}

func TestGetDetail_NeverExceedsCapacity(t *testing.T) {
	const capacity = 5
	up := newFakeUpstream(rosterV1)
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("agent%02d", i)
		up.setAgent(name, fmt.Sprintf(`{"username":%q,"score":%d}`, name, i))
	}
	c, _ := newTestDetailCache(t, up, nil, capacity)

	for i := 0; i < 20; i++ {
		if _, err := c.GetDetail(context.Background(), fmt.Sprintf("agent%02d", i)); err != nil {
			t.Fatal(err)
		}
		if n := c.Len(); n > capacity {
			t.Fatalf("Len() = %d exceeds capacity %d", n, capacity)
		}
	}
	if c.Len() != capacity {
		t.Errorf("Len() = %d, want %d", c.Len(), capacity)
	}

	// The most recent five survive; the oldest was evicted.
	if _, ok := c.entries.Peek("agent19"); !ok {
		t.Error("most recent entry evicted")
	}
	if _, ok := c.entries.Peek("agent00"); ok {
		t.Error("least recently used entry survived")
	}
}

func TestGetDetail_ConcurrentCallsDeduplicated(t *testing.T) {
	up := newFakeUpstream(rosterV1)
	up.setAgent("alice", aliceDetail)
	c, _ := newTestDetailCache(t, up, nil, 10)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetDetail(context.Background(), "alice"); err != nil {
				t.Errorf("GetDetail() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := up.agentCalls.Load(); got < 1 || got > 20 {
		t.Errorf("agent calls = %d", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestDetailInvalidate(t *testing.T) {
	up := newFakeUpstream(rosterV1)
	up.setAgent("alice", aliceDetail)
	c, _ := newTestDetailCache(t, up, nil, 10)

	if _, err := c.GetDetail(context.Background(), "alice"); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("ALICE")
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Invalidate", c.Len())
	}
}
