// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/logging"
	"github.com/tomtom215/agentboard/internal/metrics"
	"github.com/tomtom215/agentboard/internal/models"
	"github.com/tomtom215/agentboard/internal/upstream"
	"github.com/tomtom215/agentboard/internal/validation"
)

// AgentFetcher retrieves the raw detail payload for one agent.
type AgentFetcher interface {
	FetchAgent(ctx context.Context, username string) ([]byte, error)
}

// RosterLookup resolves an agent's roster entry. LeaderboardCache implements it.
type RosterLookup interface {
	Lookup(username string) (*models.Agent, bool)
}

// DetailConfig holds the detail cache bounds.
type DetailConfig struct {
	TTL          time.Duration
	Capacity     int
	FetchTimeout time.Duration
	Clock        quartz.Clock // nil uses the real clock
}

// DetailConfigFrom maps application configuration onto DetailConfig.
func DetailConfigFrom(cfg *config.Config) DetailConfig {
	return DetailConfig{
		TTL:          cfg.Cache.DetailTTL,
		Capacity:     cfg.Cache.DetailCapacity,
		FetchTimeout: cfg.Upstream.Timeout,
	}
}

// AgentDetailCache holds enriched agent records keyed by normalized username.
//
// Entries are bounded by an access-ordered LRU: each insert beyond capacity
// evicts exactly the least recently used entry. Fetches are deduplicated per
// username.
type AgentDetailCache struct {
	fetcher AgentFetcher
	parser  validation.RosterParser
	roster  RosterLookup
	entries *LRU[*Entry[*models.Agent]]
	ttl     time.Duration
	timeout time.Duration
	clock   quartz.Clock
	group   singleflight.Group
	logger  zerolog.Logger
}

// NewAgentDetailCache creates a detail cache. roster may be nil, in which case
// failed fetches have no minimal-record fallback.
func NewAgentDetailCache(fetcher AgentFetcher, parser validation.RosterParser, roster RosterLookup, cfg DetailConfig) *AgentDetailCache {
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}

	return &AgentDetailCache{
		fetcher: fetcher,
		parser:  parser,
		roster:  roster,
		entries: NewLRU[*Entry[*models.Agent]](cfg.Capacity),
		ttl:     cfg.TTL,
		timeout: cfg.FetchTimeout,
		clock:   clock,
		logger:  logging.WithComponent("agent_detail_cache"),
	}
}

// GetDetail returns the enriched record for username.
//
// A fresh cached record is returned as is. Otherwise the record is fetched,
// merged with the roster entry and cached. When the fetch fails the result
// degrades in order: stale cached record, minimal roster record, then
// (nil, nil) if upstream reported the agent does not exist. Any other failure
// is returned.
//
// The returned record is a copy owned by the caller.
func (c *AgentDetailCache) GetDetail(ctx context.Context, username string) (*models.Agent, error) {
	key := models.NormalizeUsername(username)
	if key == "" {
		return nil, nil
	}

	if entry, ok := c.entries.Get(key); ok && entry.Fresh(c.clock.Now(), c.ttl) {
		metrics.RecordCacheLookup(metrics.CacheDetail, true)
		return entry.Value.Clone(), nil
	}
	metrics.RecordCacheLookup(metrics.CacheDetail, false)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, key)
	})
	if err == nil {
		return v.(*models.Agent).Clone(), nil
	}

	if entry, ok := c.entries.Peek(key); ok {
		c.logger.Warn().Err(err).Str("username", key).
			Dur("age", entry.Age(c.clock.Now())).
			Msg("Serving stale agent detail after failed fetch")
		return entry.Value.Clone(), nil
	}

	if c.roster != nil {
		if minimal, ok := c.roster.Lookup(key); ok {
			c.logger.Warn().Err(err).Str("username", key).
				Msg("Serving roster record after failed detail fetch")
			return minimal, nil
		}
	}

	if errors.Is(err, upstream.ErrNotFound) {
		return nil, nil
	}

	logging.CtxWarn(ctx).Err(err).Str("username", key).Msg("Agent detail unavailable")
	return nil, err
}

// Len returns the number of cached records.
func (c *AgentDetailCache) Len() int {
	return c.entries.Len()
}

// Invalidate drops the cached record for username.
func (c *AgentDetailCache) Invalidate(username string) {
	if c.entries.Remove(models.NormalizeUsername(username)) {
		metrics.CacheSize.WithLabelValues(metrics.CacheDetail).Set(float64(c.entries.Len()))
	}
}

// fetch performs one upstream call and caches the merged result.
func (c *AgentDetailCache) fetch(ctx context.Context, key string) (*models.Agent, error) {
	raw, err := c.fetcher.FetchAgent(ctx, key)
	if err != nil {
		return nil, err
	}

	agent, err := c.parser.ParseAgent(raw)
	if err != nil {
		return nil, err
	}

	if c.roster != nil {
		if entry, ok := c.roster.Lookup(key); ok {
			agent = agent.MergeRoster(entry)
		}
	}
	if agent.Username == "" {
		agent.Username = key
	}

	if evicted := c.entries.Add(key, &Entry[*models.Agent]{Value: agent, CapturedAt: c.clock.Now()}); evicted {
		metrics.CacheEvictions.WithLabelValues(metrics.CacheDetail).Inc()
	}
	metrics.CacheSize.WithLabelValues(metrics.CacheDetail).Set(float64(c.entries.Len()))

	return agent, nil
}
