// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package models

// SortKey selects the ordering of a roster query.
type SortKey string

const (
	// SortScore orders by score, highest first. This is the default.
	SortScore SortKey = "score"

	// SortScoreAsc orders by score, lowest first.
	SortScoreAsc SortKey = "score_asc"

	// SortFollowers orders by follower count, highest first.
	SortFollowers SortKey = "followers"

	// SortLikes orders by like count, highest first.
	SortLikes SortKey = "likes"

	// SortReposts orders by repost count, highest first.
	SortReposts SortKey = "reposts"
)

// Valid reports whether k is a known sort key. The empty key is valid and means SortScore.
func (k SortKey) Valid() bool {
	switch k {
	case "", SortScore, SortScoreAsc, SortFollowers, SortLikes, SortReposts:
		return true
	default:
		return false
	}
}

// Filter describes a roster query. All filters are optional and combined with AND.
//
// Limit == 0 is a sentinel meaning "return the full roster unfiltered and
// unpaginated" and is used by bulk-export callers. HTTP handlers substitute the
// configured default page size when the parameter is absent.
type Filter struct {
	Search   string   `json:"search,omitempty" validate:"max=128"`
	MinScore *float64 `json:"min_score,omitempty"`
	MaxScore *float64 `json:"max_score,omitempty"`
	City     string   `json:"city,omitempty" validate:"max=128"`
	Sort     SortKey  `json:"sort,omitempty" validate:"omitempty,oneof=score score_asc followers likes reposts"`
	Page     int      `json:"page,omitempty" validate:"gte=0"`
	Limit    int      `json:"limit" validate:"gte=0,lte=1000"`
}

// Page is the result of a roster query.
type Page struct {
	Items      []Agent `json:"items"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}
