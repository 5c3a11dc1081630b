// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package models

import (
	"strings"
	"time"
)

// Agent is a single leaderboard participant.
//
// The same record carries both shapes the upstream service returns:
//
//   - Roster projection: Username, Score, Avatar, City, counts and Rank.
//     This is what the leaderboard endpoint returns for every participant.
//   - Enriched profile: Bio, wallet fields, timestamps and RecentPosts.
//     Populated only when Enriched is true (fetched from the per-agent endpoint).
//
// Counts are pointers so that "absent upstream" can be told apart from zero;
// merge logic relies on that distinction to fall back to roster values.
// HasScore plays the same role for Score and is set by the parsers.
//
// Rank is assigned once by the roster parser as the 1-based position in the
// validated, upstream-ordered list. Consumers must not recompute it.
type Agent struct {
	Username  string   `json:"username"`
	Score     float64  `json:"score"`
	HasScore  bool     `json:"-"`
	Avatar    string   `json:"avatar,omitempty"`
	City      string   `json:"city,omitempty"`
	Followers *int64   `json:"followers,omitempty"`
	Likes     *int64   `json:"likes,omitempty"`
	Reposts   *int64   `json:"reposts,omitempty"`
	Replies   *int64   `json:"replies,omitempty"`
	Rank      int      `json:"rank"`
	Enriched  bool     `json:"enriched"`
	Detail    *Profile `json:"detail,omitempty"`
}

// Profile holds the fields only the per-agent endpoint returns.
type Profile struct {
	Bio             string     `json:"bio,omitempty"`
	WalletAddress   string     `json:"wallet_address,omitempty"`
	WalletBalance   string     `json:"wallet_balance,omitempty"`
	BioUpdatedAt    *time.Time `json:"bio_updated_at,omitempty"`
	RewardClaimedAt *time.Time `json:"reward_claimed_at,omitempty"`
	RecentPosts     []Post     `json:"recent_posts,omitempty"`
}

// Post is one recent activity item of an enriched agent.
type Post struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int64     `json:"likes"`
	Reposts   int64     `json:"reposts"`
	Replies   int64     `json:"replies"`
}

// Bio returns the biography text, or "" for roster-only records.
func (a *Agent) Bio() string {
	if a.Detail == nil {
		return ""
	}
	return a.Detail.Bio
}

// Count returns the value of an optional counter, treating absent as zero.
func Count(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// Int64 returns a pointer to v. Convenience for building records in parsers and tests.
func Int64(v int64) *int64 {
	return &v
}

// NormalizeUsername returns the lookup key for a username.
// Usernames are compared case-insensitively across the roster and detail caches.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Clone returns a deep copy of the agent so cached values can be handed out
// without callers being able to mutate cache state.
func (a *Agent) Clone() *Agent {
	if a == nil {
		return nil
	}
	c := *a
	c.Followers = cloneCount(a.Followers)
	c.Likes = cloneCount(a.Likes)
	c.Reposts = cloneCount(a.Reposts)
	c.Replies = cloneCount(a.Replies)
	if a.Detail != nil {
		d := *a.Detail
		if len(a.Detail.RecentPosts) > 0 {
			d.RecentPosts = make([]Post, len(a.Detail.RecentPosts))
			copy(d.RecentPosts, a.Detail.RecentPosts)
		}
		c.Detail = &d
	}
	return &c
}

// MergeRoster fills fields missing from an enriched record with values from the
// roster entry of the same agent. Detail values always win where present.
// The receiver is modified in place and returned for chaining.
func (a *Agent) MergeRoster(roster *Agent) *Agent {
	if roster == nil {
		return a
	}
	if a.Username == "" {
		a.Username = roster.Username
	}
	if a.Rank == 0 {
		a.Rank = roster.Rank
	}
	if !a.HasScore {
		a.Score = roster.Score
		a.HasScore = roster.HasScore
	}
	if a.Avatar == "" {
		a.Avatar = roster.Avatar
	}
	if a.City == "" {
		a.City = roster.City
	}
	if a.Followers == nil {
		a.Followers = cloneCount(roster.Followers)
	}
	if a.Likes == nil {
		a.Likes = cloneCount(roster.Likes)
	}
	if a.Reposts == nil {
		a.Reposts = cloneCount(roster.Reposts)
	}
	if a.Replies == nil {
		a.Replies = cloneCount(roster.Replies)
	}
	return a
}

func cloneCount(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
