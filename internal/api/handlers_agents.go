// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// ListAgents handles GET /api/v1/agents.
//
// Query parameters: q (search username, city and bio), min_score, max_score,
// city (exact, case-insensitive), sort (score, score_asc, followers, likes,
// reposts), page (1-based) and limit (0 returns the full roster).
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filter, apiErr := parseFilter(r, h.config.API)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	page, err := h.service.Query(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, page, start, h.service.CapturedAt())
}

// GetAgent handles GET /api/v1/agents/{username}.
//
// Returns the enriched record when the detail endpoint answers, otherwise the
// best degraded record available. 404 only when the agent is unknown both to
// the cached roster and upstream.
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params := AgentPathParams{Username: strings.TrimSpace(chi.URLParam(r, "username"))}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	agent, err := h.service.GetDetail(r.Context(), params.Username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if agent == nil {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Agent not found", nil)
		return
	}

	respondSuccess(w, agent, start, h.service.CapturedAt())
}
