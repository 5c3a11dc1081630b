// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package board

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/agentboard/internal/cache"
	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/logging"
	"github.com/tomtom215/agentboard/internal/metrics"
	"github.com/tomtom215/agentboard/internal/models"
	"github.com/tomtom215/agentboard/internal/query"
	"github.com/tomtom215/agentboard/internal/stats"
	"github.com/tomtom215/agentboard/internal/upstream"
	"github.com/tomtom215/agentboard/internal/validation"
)

// Service is the in-process entry point to the mirrored leaderboard.
// All methods are safe for concurrent use.
type Service struct {
	roster  *cache.LeaderboardCache
	details *cache.AgentDetailCache
	engine  *stats.Engine
	memo    *cache.TTL[models.Stats]
	group   singleflight.Group
	logger  zerolog.Logger
}

// Options overrides the collaborators New would otherwise build from config.
type Options struct {
	Fetcher upstream.Fetcher // nil builds an HTTP client from cfg.Upstream
	Clock   quartz.Clock     // nil uses the real clock
}

// New wires the upstream client, parser, caches and stats engine.
func New(cfg *config.Config, opts Options) (*Service, error) {
	parser, err := validation.NewParser(validation.ParserConfig{
		Mode:           cfg.Validation.Mode,
		ListField:      cfg.Upstream.ListField,
		MaxRecentPosts: cfg.Validation.MaxRecentPosts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = upstream.New(&cfg.Upstream)
	}

	rosterCfg := cache.LeaderboardConfigFrom(cfg)
	rosterCfg.Clock = opts.Clock
	roster := cache.NewLeaderboardCache(fetcher, parser, rosterCfg)

	detailCfg := cache.DetailConfigFrom(cfg)
	detailCfg.Clock = opts.Clock
	details := cache.NewAgentDetailCache(fetcher, parser, roster, detailCfg)

	return &Service{
		roster:  roster,
		details: details,
		engine:  stats.NewEngine(details, stats.ConfigFrom(cfg)),
		memo:    cache.NewTTL[models.Stats](cfg.Cache.StatsTTL, opts.Clock),
		logger:  logging.WithComponent("board"),
	}, nil
}

// GetRoster returns the validated roster in upstream order. The slice is
// shared with the cache and must not be modified.
func (s *Service) GetRoster(ctx context.Context) ([]models.Agent, error) {
	return s.roster.GetRoster(ctx)
}

// GetDetail returns the enriched record for username, or (nil, nil) when the
// agent does not exist upstream.
func (s *Service) GetDetail(ctx context.Context, username string) (*models.Agent, error) {
	return s.details.GetDetail(ctx, username)
}

// Query filters, sorts and paginates the current roster.
func (s *Service) Query(ctx context.Context, f models.Filter) (models.Page, error) {
	roster, err := s.roster.GetRoster(ctx)
	if err != nil {
		return models.Page{}, err
	}
	return query.Run(roster, f), nil
}

// GetStats returns statistics for the current roster. Results are memoized
// per roster snapshot, so a refreshed roster is never paired with stale stats.
func (s *Service) GetStats(ctx context.Context) (models.Stats, error) {
	roster, capturedAt, err := s.roster.GetSnapshot(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	key := cache.MemoKey("stats", capturedAt.UnixNano())
	if cached, ok := s.memo.Get(key); ok {
		metrics.RecordCacheLookup(metrics.CacheStats, true)
		return cached, nil
	}
	metrics.RecordCacheLookup(metrics.CacheStats, false)

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		computed := s.engine.Compute(ctx, roster)
		computed.RosterCapturedAt = capturedAt.UTC()
		s.memo.Set(key, computed)
		metrics.CacheSize.WithLabelValues(metrics.CacheStats).Set(float64(s.memo.Len()))
		s.logger.Debug().
			Int("agents", computed.TotalAgents).
			Bool("estimated", computed.Estimated).
			Int("sample_size", computed.SampleSize).
			Msg("Computed roster stats")
		return computed, nil
	})
	return v.(models.Stats), nil
}

// GetCities returns the sorted location tags of the current roster.
func (s *Service) GetCities(ctx context.Context) ([]string, error) {
	if _, err := s.roster.GetRoster(ctx); err != nil {
		return nil, err
	}
	return s.roster.Cities(), nil
}

// Refresh forces a synchronous roster fetch.
func (s *Service) Refresh(ctx context.Context) error {
	return s.roster.Refresh(ctx)
}

// CapturedAt returns when the served roster was fetched, or the zero time.
func (s *Service) CapturedAt() time.Time {
	return s.roster.CapturedAt()
}

// Status reports cache health for readiness probes.
func (s *Service) Status() models.CacheStatus {
	status := s.roster.Snapshot()
	status.DetailEntries = s.details.Len()
	return status
}

// Close stops background roster refreshes.
func (s *Service) Close() {
	s.roster.Close()
}
