// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/agentboard/internal/metrics"
)

type fakeRefresher struct {
	failures int32
	calls    atomic.Int32
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.calls.Add(1) <= f.failures {
		return errors.New("upstream unavailable")
	}
	return nil
}

func TestRosterWarmupService_Defaults(t *testing.T) {
	svc := NewRosterWarmupService(&fakeRefresher{}, WarmupConfig{})
	if svc.clock == nil || svc.backoff == nil {
		t.Fatal("expected defaults to be applied")
	}
	if svc.String() != "roster-warmup" {
		t.Errorf("String() = %q", svc.String())
	}
	var _ suture.Service = svc
}

func TestRosterWarmupService_SucceedsFirstTry(t *testing.T) {
	r := &fakeRefresher{}
	svc := NewRosterWarmupService(r, WarmupConfig{InitialBackoff: time.Millisecond})

	err := svc.Serve(context.Background())
	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
	}
	if svc.Attempts() != 1 {
		t.Errorf("Attempts() = %d, want 1", svc.Attempts())
	}
}

func TestRosterWarmupService_RetriesUntilSuccess(t *testing.T) {
	r := &fakeRefresher{failures: 3}
	svc := NewRosterWarmupService(r, WarmupConfig{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
	}
	if got := r.calls.Load(); got != 4 {
		t.Errorf("refresh calls = %d, want 4", got)
	}
}

func TestRosterWarmupService_StopsOnCancel(t *testing.T) {
	r := &fakeRefresher{failures: 1 << 30}
	svc := NewRosterWarmupService(r, WarmupConfig{InitialBackoff: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if got := r.calls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1 while backing off", got)
	}
}

func TestRosterWarmupService_UnderSupervisor(t *testing.T) {
	r := &fakeRefresher{failures: 1}
	svc := NewRosterWarmupService(r, WarmupConfig{InitialBackoff: time.Millisecond})

	sup := suture.New("test-sup", suture.Spec{FailureBackoff: 10 * time.Millisecond, Timeout: time.Second})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	// One more wait window proves the supervisor does not restart it.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-errCh

	if got := r.calls.Load(); got != 2 {
		t.Errorf("refresh calls = %d, want 2", got)
	}
}

func TestUptimeService_Record(t *testing.T) {
	clock := quartz.NewMock(t)
	svc := NewUptimeService(clock, time.Second)

	clock.Advance(90 * time.Second)
	svc.record()

	if got := testutil.ToFloat64(metrics.AppUptime); got != 90 {
		t.Errorf("app_uptime_seconds = %v, want 90", got)
	}
}

func TestUptimeService_Serve(t *testing.T) {
	svc := NewUptimeService(nil, 0)
	if svc.interval != 15*time.Second {
		t.Errorf("interval = %v, want 15s", svc.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want nil or context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
