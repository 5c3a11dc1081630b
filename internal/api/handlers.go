// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"context"
	"time"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/models"
)

// BoardService is the library surface the handlers consume.
// board.Service implements it.
type BoardService interface {
	Query(ctx context.Context, f models.Filter) (models.Page, error)
	GetDetail(ctx context.Context, username string) (*models.Agent, error)
	GetStats(ctx context.Context) (models.Stats, error)
	GetCities(ctx context.Context) ([]string, error)
	CapturedAt() time.Time
	Status() models.CacheStatus
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Response and parameter helpers
//   - handlers_agents.go: Roster listing and agent detail
//   - handlers_stats.go: Statistics and city index
//   - handlers_health.go: Liveness and readiness probes
type Handler struct {
	service   BoardService
	config    *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	svc, _ := board.New(cfg, board.Options{})
//	handler := api.NewHandler(svc, cfg, version)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(service BoardService, cfg *config.Config, version string) *Handler {
	return &Handler{
		service:   service,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
}
