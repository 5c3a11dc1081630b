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
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/logging"
	"github.com/tomtom215/agentboard/internal/metrics"
	"github.com/tomtom215/agentboard/internal/models"
	"github.com/tomtom215/agentboard/internal/validation"
)

// ErrRosterUnavailable is returned by GetRoster when the upstream fetch failed
// and no roster has ever been cached. It wraps the underlying cause.
var ErrRosterUnavailable = errors.New("leaderboard roster unavailable")

// rosterFlightKey is the singleflight key for the single roster resource.
const rosterFlightKey = "roster"

// Roster serving paths, used as the roster_served_total label.
const (
	pathThrottled = "throttled"
	pathFresh     = "fresh"
	pathInFlight  = "in_flight"
	pathStale     = "stale"
	pathFetched   = "fetched"
	pathFallback  = "fallback"
)

// RosterFetcher retrieves the raw roster payload.
type RosterFetcher interface {
	FetchLeaderboard(ctx context.Context) ([]byte, error)
}

// LeaderboardConfig holds the roster staleness rules.
type LeaderboardConfig struct {
	ThrottleWindow    time.Duration // minimum spacing between upstream attempts
	TTL               time.Duration // age below which the roster is fresh
	ForceRefreshAfter time.Duration // age from which reads block on a synchronous fetch
	FailureThreshold  int           // consecutive failures before logging escalates to Error
	CityIndexMaxAge   time.Duration
	FetchTimeout      time.Duration
	Clock             quartz.Clock // nil uses the real clock
}

// LeaderboardConfigFrom maps application configuration onto LeaderboardConfig.
func LeaderboardConfigFrom(cfg *config.Config) LeaderboardConfig {
	return LeaderboardConfig{
		ThrottleWindow:    cfg.Cache.ThrottleWindow,
		TTL:               cfg.Cache.RosterTTL,
		ForceRefreshAfter: cfg.Cache.ForceRefreshAfter,
		FailureThreshold:  cfg.Cache.FailureThreshold,
		CityIndexMaxAge:   cfg.Cache.CityIndexMaxAge,
		FetchTimeout:      cfg.Upstream.Timeout,
	}
}

// rosterSnapshot is one validated roster. Snapshots are immutable once
// published and replaced wholesale by the next successful fetch.
type rosterSnapshot struct {
	Entry[[]models.Agent]
	byName map[string]int
}

func newRosterSnapshot(agents []models.Agent, capturedAt time.Time) *rosterSnapshot {
	byName := make(map[string]int, len(agents))
	for i := range agents {
		byName[models.NormalizeUsername(agents[i].Username)] = i
	}
	return &rosterSnapshot{
		Entry:  Entry[[]models.Agent]{Value: agents, CapturedAt: capturedAt},
		byName: byName,
	}
}

// LeaderboardCache mirrors the upstream roster.
//
// Reads are answered from the cached snapshot whenever the staleness rules
// allow it. At most one upstream roster request is outstanding at any time:
// synchronous and background refreshes share a singleflight group, and an
// atomic in-flight flag lets readers with a cached roster skip the wait.
// A failed refresh never clears the cache.
//
// Returned rosters are shared between callers and must be treated as read-only.
type LeaderboardCache struct {
	fetcher RosterFetcher
	parser  validation.RosterParser
	cfg     LeaderboardConfig
	clock   quartz.Clock
	logger  zerolog.Logger

	snap        atomic.Pointer[rosterSnapshot]
	cities      atomic.Pointer[CityIndex]
	lastAttempt atomic.Int64 // unix nanos of the last upstream attempt; 0 = never
	inFlight    atomic.Bool
	invalidated atomic.Bool
	failures    atomic.Int64

	group singleflight.Group

	// background refresh lifecycle
	bgMu     sync.Mutex
	bgWG     sync.WaitGroup
	closed   bool
	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewLeaderboardCache creates an empty roster cache. The first GetRoster
// call performs a synchronous fetch.
func NewLeaderboardCache(fetcher RosterFetcher, parser validation.RosterParser, cfg LeaderboardConfig) *LeaderboardCache {
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &LeaderboardCache{
		fetcher:  fetcher,
		parser:   parser,
		cfg:      cfg,
		clock:    clock,
		logger:   logging.WithComponent("leaderboard_cache"),
		ctx:      ctx,
		cancelFn: cancel,
	}
}

// GetRoster returns the roster, fetching from upstream only when the
// staleness rules require it. Priority order:
//
//  1. Cached and the last upstream attempt is inside the throttle window
//  2. Cached and fresh
//  3. Cached and a fetch is already in flight
//  4. Cached and younger than the force-refresh ceiling: served stale while a
//     background refresh runs
//  5. Otherwise a synchronous fetch; on failure the previous roster is served
//     however old it is
//
// Without any cached roster, overlapping callers join the same fetch and all
// receive its outcome. ErrRosterUnavailable is returned only when that fetch
// fails and nothing has ever been cached.
func (c *LeaderboardCache) GetRoster(ctx context.Context) ([]models.Agent, error) {
	snap, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Value, nil
}

// GetSnapshot follows the same rules as GetRoster and also returns the
// capture time of the roster it served. Both come from one snapshot, so they
// always belong together even while a refresh is publishing.
func (c *LeaderboardCache) GetSnapshot(ctx context.Context) ([]models.Agent, time.Time, error) {
	snap, err := c.read(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return snap.Value, snap.CapturedAt, nil
}

func (c *LeaderboardCache) read(ctx context.Context) (*rosterSnapshot, error) {
	now := c.clock.Now()

	if snap := c.snap.Load(); snap != nil {
		switch {
		case c.throttled(now):
			return c.serve(snap, pathThrottled), nil
		case c.fresh(snap, now):
			return c.serve(snap, pathFresh), nil
		case c.inFlight.Load():
			return c.serve(snap, pathInFlight), nil
		case snap.Age(now) < c.cfg.ForceRefreshAfter:
			c.refreshAsync()
			return c.serve(snap, pathStale), nil
		}
	}

	metrics.RecordCacheLookup(metrics.CacheRoster, false)
	snap, err := c.fetch(ctx, false)
	if err == nil {
		metrics.RecordRosterServed(pathFetched)
		return snap, nil
	}

	if prev := c.snap.Load(); prev != nil {
		logging.CtxWarn(ctx).Err(err).
			Dur("age", prev.Age(c.clock.Now())).
			Msg("Serving stale roster after failed refresh")
		metrics.RecordRosterServed(pathFallback)
		return prev, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrRosterUnavailable, err)
}

// Refresh forces a synchronous fetch, honoring deduplication but not the
// staleness rules. On failure the cache is left untouched.
func (c *LeaderboardCache) Refresh(ctx context.Context) error {
	_, err := c.fetch(ctx, false)
	return err
}

// Lookup returns a copy of the cached roster entry for username.
func (c *LeaderboardCache) Lookup(username string) (*models.Agent, bool) {
	snap := c.snap.Load()
	if snap == nil {
		return nil, false
	}
	idx, ok := snap.byName[models.NormalizeUsername(username)]
	if !ok {
		return nil, false
	}
	return snap.Value[idx].Clone(), true
}

// Cities returns the sorted location tags of the cached roster.
func (c *LeaderboardCache) Cities() []string {
	return c.cities.Load().Cities()
}

// Snapshot reports the cache state for health checks.
func (c *LeaderboardCache) Snapshot() models.CacheStatus {
	now := c.clock.Now()
	status := models.CacheStatus{
		InFlight:            c.inFlight.Load(),
		ConsecutiveFailures: c.failures.Load(),
		Cities:              c.cities.Load().Len(),
	}

	if last := c.lastAttempt.Load(); last != 0 {
		t := time.Unix(0, last).UTC()
		status.LastAttempt = &t
	}
	if snap := c.snap.Load(); snap != nil {
		captured := snap.CapturedAt.UTC()
		status.HasData = true
		status.Fresh = c.fresh(snap, now)
		status.Agents = len(snap.Value)
		status.CapturedAt = &captured
	}
	return status
}

// CapturedAt returns when the cached roster was fetched, or the zero time.
func (c *LeaderboardCache) CapturedAt() time.Time {
	if snap := c.snap.Load(); snap != nil {
		return snap.CapturedAt
	}
	return time.Time{}
}

// Invalidate marks the cached roster stale without discarding it and lifts
// the throttle, so the next read triggers a refresh.
func (c *LeaderboardCache) Invalidate() {
	c.invalidated.Store(true)
	c.lastAttempt.Store(0)
}

// Close cancels pending background refreshes and waits for them to return.
// Reads keep working after Close but no longer start background refreshes.
func (c *LeaderboardCache) Close() {
	c.bgMu.Lock()
	c.closed = true
	c.bgMu.Unlock()

	c.cancelFn()
	c.bgWG.Wait()
}

func (c *LeaderboardCache) throttled(now time.Time) bool {
	last := c.lastAttempt.Load()
	return last != 0 && now.Sub(time.Unix(0, last)) < c.cfg.ThrottleWindow
}

func (c *LeaderboardCache) fresh(snap *rosterSnapshot, now time.Time) bool {
	return !c.invalidated.Load() && snap.Fresh(now, c.cfg.TTL)
}

func (c *LeaderboardCache) serve(snap *rosterSnapshot, path string) *rosterSnapshot {
	metrics.RecordCacheLookup(metrics.CacheRoster, true)
	metrics.RecordRosterServed(path)
	return snap
}

// refreshAsync starts a fire-and-forget refresh. Failures are logged by
// fetch and never reach the reader that triggered it.
func (c *LeaderboardCache) refreshAsync() {
	c.bgMu.Lock()
	defer c.bgMu.Unlock()
	if c.closed || c.inFlight.Load() {
		return
	}

	c.bgWG.Add(1)
	go func() {
		defer c.bgWG.Done()
		_, _ = c.fetch(c.ctx, true)
	}()
}

// fetch joins or starts the single outstanding roster request. The request
// runs detached from the caller's cancellation, bounded by FetchTimeout, so
// one caller giving up does not fail the others sharing it.
func (c *LeaderboardCache) fetch(ctx context.Context, background bool) (*rosterSnapshot, error) {
	v, err, _ := c.group.Do(rosterFlightKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.FetchTimeout)
		defer cancel()
		if background {
			// Close must be able to abort background work.
			stop := context.AfterFunc(c.ctx, cancel)
			defer stop()
		}
		return c.doFetch(fetchCtx, background)
	})
	if err != nil {
		return nil, err
	}
	return v.(*rosterSnapshot), nil
}

// doFetch performs one physical upstream call. Only ever runs inside the
// singleflight group.
func (c *LeaderboardCache) doFetch(ctx context.Context, background bool) (*rosterSnapshot, error) {
	c.inFlight.Store(true)
	defer c.inFlight.Store(false)
	c.lastAttempt.Store(c.clock.Now().UnixNano())

	raw, err := c.fetcher.FetchLeaderboard(ctx)
	if err != nil {
		return nil, c.recordFailure(ctx, background, metrics.OutcomeFailure, err)
	}

	agents, err := c.parser.ParseRoster(raw)
	if err != nil {
		return nil, c.recordFailure(ctx, background, metrics.OutcomeFailure, err)
	}
	if len(agents) == 0 {
		return nil, c.recordFailure(ctx, background, metrics.OutcomeEmpty, validation.ErrEmptyRoster)
	}

	now := c.clock.Now()
	snap := newRosterSnapshot(agents, now)
	c.snap.Store(snap)
	c.invalidated.Store(false)
	c.failures.Store(0)

	metrics.RecordRosterFetch(background, metrics.OutcomeSuccess, len(agents))
	metrics.RosterConsecutiveFailures.Set(0)
	metrics.CacheSize.WithLabelValues(metrics.CacheRoster).Set(float64(len(agents)))

	if idx := c.cities.Load(); idx.due(now, c.cfg.CityIndexMaxAge) {
		c.cities.Store(BuildCityIndex(agents, now))
		metrics.CityIndexRebuilds.Inc()
	}

	logging.Ctx(ctx).Debug().
		Int("agents", len(agents)).
		Bool("background", background).
		Msg("Roster refreshed")

	return snap, nil
}

// recordFailure counts a failed attempt and logs it, escalating from Warn to
// Error once the streak exceeds the configured threshold.
func (c *LeaderboardCache) recordFailure(ctx context.Context, background bool, outcome string, err error) error {
	n := c.failures.Add(1)
	metrics.RecordRosterFetch(background, outcome, 0)
	metrics.RosterConsecutiveFailures.Set(float64(n))

	event := c.logger.Warn()
	if n > int64(c.cfg.FailureThreshold) {
		event = c.logger.Error()
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	event.Err(err).
		Int64("consecutive_failures", n).
		Bool("background", background).
		Bool("has_cache", c.snap.Load() != nil).
		Msg("Roster refresh failed")

	return err
}
