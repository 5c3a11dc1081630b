// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package cache mirrors the upstream leaderboard and orchestrates fetches against it.

# Overview

The package provides:
  - LeaderboardCache: the roster snapshot with throttle, freshness and
    force-refresh rules, request deduplication and stale fallback
  - AgentDetailCache: enriched per-agent records in a bounded LRU
  - CityIndex: sorted distinct location tags derived from the roster
  - TTL: a small generic memo for derived results such as statistics
  - LRU and Entry: the generic building blocks of the above

# Roster Read Rules

GetRoster answers, in order:

	1. cached, last attempt inside throttle window (5s)  -> cache
	2. cached, age < TTL (15m)                           -> cache
	3. cached, fetch in flight                           -> cache
	4. cached, age < force-refresh ceiling (3h)          -> cache + background refresh
	5. otherwise                                         -> synchronous fetch

A failed synchronous fetch returns the previous roster however stale it is.
Only a failure with nothing cached returns ErrRosterUnavailable.

# Concurrency

At most one upstream roster request is outstanding: every fetch runs inside
a singleflight group, and callers without a cached roster join it rather than
returning empty. Snapshots are published through an atomic pointer and never
mutated in place. Background refreshes are tracked and Close waits for them.

Time is read through a quartz.Clock so tests drive staleness with a mock clock.

# Usage

	roster := cache.NewLeaderboardCache(client, parser, cache.LeaderboardConfigFrom(cfg))
	defer roster.Close()

	details := cache.NewAgentDetailCache(client, parser, roster, cache.DetailConfigFrom(cfg))

	agents, err := roster.GetRoster(ctx)
	if errors.Is(err, cache.ErrRosterUnavailable) {
	    // nothing cached and upstream is down
	}
*/
package cache
