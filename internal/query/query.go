// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package query

import (
	"sort"
	"strings"

	"github.com/tomtom215/agentboard/internal/models"
)

// Run filters, sorts and paginates a roster. The input is never modified and
// the returned items are deep copies.
//
// Limit == 0 returns the whole roster in upstream order with filters, sorting
// and pagination skipped.
func Run(roster []models.Agent, f models.Filter) models.Page {
	if f.Limit == 0 {
		return fullSet(roster)
	}

	matched := filter(roster, f)
	sortAgents(matched, f.Sort)

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 1
	}
	total := len(matched)

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	result := models.Page{
		Items:      []models.Agent{},
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}

	// Compared before multiplying so huge page numbers cannot overflow.
	if page-1 >= totalPages {
		return result
	}
	start := (page - 1) * limit
	end := total
	if limit < total-start {
		end = start + limit
	}

	result.Items = make([]models.Agent, 0, end-start)
	for _, a := range matched[start:end] {
		result.Items = append(result.Items, *a.Clone())
	}
	return result
}

func fullSet(roster []models.Agent) models.Page {
	items := make([]models.Agent, len(roster))
	for i := range roster {
		items[i] = *roster[i].Clone()
	}

	totalPages := 0
	if len(items) > 0 {
		totalPages = 1
	}
	return models.Page{
		Items:      items,
		TotalCount: len(items),
		Page:       1,
		Limit:      0,
		TotalPages: totalPages,
	}
}

// filter returns pointers to the roster entries matching every set filter.
func filter(roster []models.Agent, f models.Filter) []*models.Agent {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	city := strings.TrimSpace(f.City)

	out := make([]*models.Agent, 0, len(roster))
	for i := range roster {
		a := &roster[i]
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if f.MinScore != nil && a.Score < *f.MinScore {
			continue
		}
		if f.MaxScore != nil && a.Score > *f.MaxScore {
			continue
		}
		if city != "" && !strings.EqualFold(strings.TrimSpace(a.City), city) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesSearch does a case-insensitive substring match on username, city
// and, for enriched records, bio. needle must already be lowercased.
func matchesSearch(a *models.Agent, needle string) bool {
	if strings.Contains(strings.ToLower(a.Username), needle) ||
		strings.Contains(strings.ToLower(a.City), needle) {
		return true
	}
	return a.Enriched && strings.Contains(strings.ToLower(a.Bio()), needle)
}

// sortAgents orders agents in place. The sort is stable so ties keep
// upstream order. Absent counts sort as zero.
func sortAgents(agents []*models.Agent, key models.SortKey) {
	var less func(a, b *models.Agent) bool

	switch key {
	case models.SortScoreAsc:
		less = func(a, b *models.Agent) bool { return a.Score < b.Score }
	case models.SortFollowers:
		less = func(a, b *models.Agent) bool { return models.Count(a.Followers) > models.Count(b.Followers) }
	case models.SortLikes:
		less = func(a, b *models.Agent) bool { return models.Count(a.Likes) > models.Count(b.Likes) }
	case models.SortReposts:
		less = func(a, b *models.Agent) bool { return models.Count(a.Reposts) > models.Count(b.Reposts) }
	default:
		less = func(a, b *models.Agent) bool { return a.Score > b.Score }
	}

	sort.SliceStable(agents, func(i, j int) bool {
		return less(agents[i], agents[j])
	})
}
