// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/tomtom215/agentboard/internal/upstream"
	"github.com/tomtom215/agentboard/internal/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeUpstream is a scriptable leaderboard service.
type fakeUpstream struct {
	mu        sync.Mutex
	roster    []byte
	rosterErr error
	agents    map[string][]byte
	agentErr  error

	rosterCalls atomic.Int32
	agentCalls  atomic.Int32

	// gate, when non-nil, blocks FetchLeaderboard until closed.
	gate chan struct{}
	// entered receives one value per FetchLeaderboard call when non-nil.
	entered chan struct{}
}

func newFakeUpstream(roster string) *fakeUpstream {
	return &fakeUpstream{roster: []byte(roster), agents: make(map[string][]byte)}
}

func (f *fakeUpstream) setRoster(body string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roster = []byte(body)
	f.rosterErr = err
}

func (f *fakeUpstream) setAgent(username, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agents[username] = []byte(body)
}

func (f *fakeUpstream) setAgentErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agentErr = err
}

func (f *fakeUpstream) FetchLeaderboard(ctx context.Context) ([]byte, error) {
	f.rosterCalls.Add(1)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	return f.roster, nil
}

func (f *fakeUpstream) FetchAgent(_ context.Context, username string) ([]byte, error) {
	f.agentCalls.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.agentErr != nil {
		return nil, f.agentErr
	}
	body, ok := f.agents[username]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	return body, nil
}

func strictParser(t *testing.T) validation.RosterParser {
	t.Helper()
	p, err := validation.NewParser(validation.ParserConfig{Mode: validation.ModeStrict})
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	return p
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
