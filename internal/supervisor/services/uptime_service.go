// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package services

import (
	"context"
	"time"

	"github.com/coder/quartz"

	"github.com/tomtom215/agentboard/internal/metrics"
)

// UptimeService keeps the app_uptime_seconds gauge current.
type UptimeService struct {
	clock    quartz.Clock
	started  time.Time
	interval time.Duration
}

// NewUptimeService starts counting uptime from now. A nil clock uses the real
// clock; a non-positive interval falls back to 15s.
func NewUptimeService(clock quartz.Clock, interval time.Duration) *UptimeService {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{clock: clock, started: clock.Now(), interval: interval}
}

// Serve implements suture.Service.
func (u *UptimeService) Serve(ctx context.Context) error {
	u.record()
	return u.clock.TickerFunc(ctx, u.interval, func() error {
		u.record()
		return nil
	}, "uptime").Wait()
}

func (u *UptimeService) record() {
	metrics.AppUptime.Set(u.clock.Since(u.started).Seconds())
}

// String implements fmt.Stringer for suture log events.
func (u *UptimeService) String() string {
	return "uptime"
}
