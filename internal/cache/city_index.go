// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package cache

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/agentboard/internal/models"
)

// CityIndex is an immutable sorted set of the location tags present in a
// roster. Tags are deduplicated case-insensitively; the first spelling seen
// in rank order wins.
type CityIndex struct {
	cities  []string
	builtAt time.Time
}

// BuildCityIndex derives a CityIndex from a roster.
func BuildCityIndex(agents []models.Agent, now time.Time) *CityIndex {
	seen := make(map[string]struct{})
	cities := make([]string, 0)

	for i := range agents {
		city := strings.TrimSpace(agents[i].City)
		if city == "" {
			continue
		}
		key := strings.ToLower(city)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cities = append(cities, city)
	}

	sort.Slice(cities, func(i, j int) bool {
		return strings.ToLower(cities[i]) < strings.ToLower(cities[j])
	})

	return &CityIndex{cities: cities, builtAt: now}
}

// Cities returns a copy of the sorted tags.
func (ci *CityIndex) Cities() []string {
	if ci == nil {
		return []string{}
	}
	out := make([]string, len(ci.cities))
	copy(out, ci.cities)
	return out
}

// Len returns the number of distinct tags.
func (ci *CityIndex) Len() int {
	if ci == nil {
		return 0
	}
	return len(ci.cities)
}

// BuiltAt returns when the index was derived.
func (ci *CityIndex) BuiltAt() time.Time {
	if ci == nil {
		return time.Time{}
	}
	return ci.builtAt
}

// due reports whether the index should be rebuilt: it is missing, empty,
// or at least maxAge old.
func (ci *CityIndex) due(now time.Time, maxAge time.Duration) bool {
	return ci == nil || len(ci.cities) == 0 || now.Sub(ci.builtAt) >= maxAge
}
