// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/agentboard/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of upstream state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
//
// The service is ready once a roster has been cached. A stale roster is still
// ready: it is served as a degraded fallback while refreshes are retried.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	cacheStatus := h.service.Status()

	health := models.HealthStatus{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Cache:   &cacheStatus,
	}
	statusCode := http.StatusOK
	switch {
	case !cacheStatus.HasData:
		health.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	case !cacheStatus.Fresh:
		health.Status = "degraded"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp:  time.Now().UTC(),
			CapturedAt: cacheStatus.CapturedAt,
		},
	})
}
