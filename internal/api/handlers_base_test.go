// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/models"
	"github.com/tomtom215/agentboard/internal/query"
)

var testCapturedAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// fakeBoard is a scriptable BoardService over a fixed roster.
type fakeBoard struct {
	mu         sync.Mutex
	roster     []models.Agent
	details    map[string]*models.Agent
	err        error
	detailErr  error
	stats      models.Stats
	cities     []string
	status     models.CacheStatus
	lastFilter models.Filter
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		roster: []models.Agent{
			{Username: "alice", Score: 30, City: "Lisbon", Rank: 1},
			{Username: "bob", Score: 10, City: "Berlin", Rank: 2},
			{Username: "carol", Score: 20, City: "Lisbon", Rank: 3},
		},
		details: map[string]*models.Agent{
			"alice": {Username: "alice", Score: 30, Rank: 1, Enriched: true, Detail: &models.Profile{Bio: "hi"}},
		},
		stats:  models.Stats{TotalAgents: 3, AverageScore: 20, RosterCapturedAt: testCapturedAt},
		cities: []string{"Berlin", "Lisbon"},
		status: models.CacheStatus{HasData: true, Fresh: true, Agents: 3},
	}
}

func (f *fakeBoard) Query(_ context.Context, filter models.Filter) (models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.err != nil {
		return models.Page{}, f.err
	}
	return query.Run(f.roster, filter), nil
}

func (f *fakeBoard) GetDetail(_ context.Context, username string) (*models.Agent, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.details[username].Clone(), nil
}

func (f *fakeBoard) GetStats(context.Context) (models.Stats, error) {
	if f.err != nil {
		return models.Stats{}, f.err
	}
	return f.stats, nil
}

func (f *fakeBoard) GetCities(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cities, nil
}

func (f *fakeBoard) CapturedAt() time.Time {
	return testCapturedAt
}

func (f *fakeBoard) Status() models.CacheStatus {
	return f.status
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{DefaultPageSize: 2, MaxPageSize: 100},
		Security: config.SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"https://board.example"},
		},
	}
}

func newTestRouter(t *testing.T, board *fakeBoard, cfg *config.Config) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewRouter(NewHandler(board, cfg, "test"), cfg).SetupChi()
}

// envelope mirrors models.APIResponse with a raw data payload.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s response: %v\nbody: %s", target, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}
