// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/gojek/heimdall/v7"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/agentboard/internal/logging"
)

// RosterRefresher forces a roster fetch.
type RosterRefresher interface {
	Refresh(ctx context.Context) error
}

// WarmupConfig controls retry pacing for RosterWarmupService.
type WarmupConfig struct {
	// InitialBackoff is the wait after the first failure. Default: 2s
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential wait. Default: 1m
	MaxBackoff time.Duration

	// Clock defaults to the real clock.
	Clock quartz.Clock
}

// RosterWarmupService fetches the roster once at startup so the first client
// request is served from cache. Failed attempts are retried with exponential
// backoff until one succeeds, after which the service asks its supervisor not
// to restart it.
type RosterWarmupService struct {
	refresher RosterRefresher
	backoff   heimdall.Backoff
	clock     quartz.Clock
	logger    zerolog.Logger
	attempts  atomic.Int32
}

// NewRosterWarmupService creates the warmup service.
func NewRosterWarmupService(refresher RosterRefresher, cfg WarmupConfig) *RosterWarmupService {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 2 * time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = time.Minute
		if cfg.MaxBackoff < cfg.InitialBackoff {
			cfg.MaxBackoff = cfg.InitialBackoff
		}
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	return &RosterWarmupService{
		refresher: refresher,
		backoff:   heimdall.NewExponentialBackoff(cfg.InitialBackoff, cfg.MaxBackoff, 2, cfg.InitialBackoff/4+1),
		clock:     cfg.Clock,
		logger:    logging.WithComponent("roster_warmup"),
	}
}

// Serve implements suture.Service.
func (w *RosterWarmupService) Serve(ctx context.Context) error {
	for retry := 0; ; retry++ {
		n := w.attempts.Add(1)
		err := w.refresher.Refresh(ctx)
		if err == nil {
			w.logger.Info().Int32("attempts", n).Msg("Roster cache warmed")
			return suture.ErrDoNotRestart
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := w.backoff.Next(retry)
		w.logger.Warn().Err(err).Int32("attempt", n).Dur("retry_in", wait).Msg("Roster warmup failed")

		timer := w.clock.NewTimer(wait, "warmup", "backoff")
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Attempts returns how many refreshes have been tried.
func (w *RosterWarmupService) Attempts() int {
	return int(w.attempts.Load())
}

// String implements fmt.Stringer for suture log events.
func (w *RosterWarmupService) String() string {
	return "roster-warmup"
}
