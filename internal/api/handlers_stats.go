// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"net/http"
	"time"
)

// Stats handles GET /api/v1/stats.
//
// estimated_total_likes and estimated_total_followers are extrapolated from a
// sample when the roster lacks counts; the estimated flag says so.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, stats, start, stats.RosterCapturedAt)
}

// Cities handles GET /api/v1/cities.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cities, err := h.service.GetCities(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if cities == nil {
		cities = []string{}
	}

	respondSuccess(w, cities, start, h.service.CapturedAt())
}
