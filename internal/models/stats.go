// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package models

import (
	"time"
)

// Stats holds aggregate metrics over a roster snapshot.
//
// EstimatedTotalLikes and EstimatedTotalFollowers are extrapolated from a
// sample of enriched profiles when the roster projection does not carry the
// counts (average of the sample multiplied by TotalAgents). They are an
// approximation, not an exact population sum; Estimated reports which one it is.
type Stats struct {
	TotalAgents             int       `json:"total_agents"`
	AverageScore            int64     `json:"average_score"`
	TopPerformers           []Agent   `json:"top_performers"`
	BottomPerformers        []Agent   `json:"bottom_performers"`
	EstimatedTotalLikes     int64     `json:"estimated_total_likes"`
	EstimatedTotalFollowers int64     `json:"estimated_total_followers"`
	Estimated               bool      `json:"estimated"`
	SampleSize              int       `json:"sample_size"`
	RosterCapturedAt        time.Time `json:"roster_captured_at"`
}

// CacheStatus describes the state of the roster cache for readiness probes.
type CacheStatus struct {
	HasData             bool       `json:"has_data"`
	Fresh               bool       `json:"fresh"`
	InFlight            bool       `json:"in_flight"`
	Agents              int        `json:"agents"`
	CapturedAt          *time.Time `json:"captured_at,omitempty"`
	LastAttempt         *time.Time `json:"last_attempt,omitempty"`
	ConsecutiveFailures int64      `json:"consecutive_failures"`
	Cities              int        `json:"cities"`
	DetailEntries       int        `json:"detail_entries"`
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status  string       `json:"status"`
	Version string       `json:"version"`
	Uptime  float64      `json:"uptime_seconds"`
	Cache   *CacheStatus `json:"cache,omitempty"`
}
