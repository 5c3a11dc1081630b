// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import "time"

// Entry pairs a cached value with the moment it was captured from upstream.
// Staleness never invalidates the value: a stale entry is still served as a
// degraded fallback when a refresh fails.
type Entry[T any] struct {
	Value      T
	CapturedAt time.Time
}

// Age returns how long ago the value was captured.
func (e *Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.CapturedAt)
}

// Fresh reports whether the entry is younger than ttl.
func (e *Entry[T]) Fresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) < ttl
}
