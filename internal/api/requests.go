// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/models"
)

// AgentPathParams is the validated path of GET /api/v1/agents/{username}.
type AgentPathParams struct {
	Username string `validate:"required,notblank,max=64"`
}

// parseFilter builds a roster query from the request's query string:
//
//	q, min_score, max_score, city, sort, page, limit
//
// An absent limit means the configured default page size. limit=0 is passed
// through and requests the full, unpaginated roster.
func parseFilter(r *http.Request, apiCfg config.APIConfig) (models.Filter, *models.APIError) {
	q := r.URL.Query()
	f := models.Filter{
		Search: strings.TrimSpace(q.Get("q")),
		City:   strings.TrimSpace(q.Get("city")),
		Sort:   models.SortKey(strings.ToLower(strings.TrimSpace(q.Get("sort")))),
		Page:   1,
		Limit:  apiCfg.DefaultPageSize,
	}

	var apiErr *models.APIError
	if f.MinScore, apiErr = floatParam(r, "min_score"); apiErr != nil {
		return f, apiErr
	}
	if f.MaxScore, apiErr = floatParam(r, "max_score"); apiErr != nil {
		return f, apiErr
	}

	page, ok, apiErr := intParam(r, "page")
	if apiErr != nil {
		return f, apiErr
	}
	if ok {
		f.Page = page
	}

	limit, ok, apiErr := intParam(r, "limit")
	if apiErr != nil {
		return f, apiErr
	}
	if ok {
		f.Limit = limit
	}

	if apiErr := validateRequest(&f); apiErr != nil {
		return f, apiErr
	}

	if f.MinScore != nil && f.MaxScore != nil && *f.MinScore > *f.MaxScore {
		return f, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "min_score must not exceed max_score",
			Details: map[string]interface{}{
				"min_score": *f.MinScore,
				"max_score": *f.MaxScore,
			},
		}
	}
	if apiCfg.MaxPageSize > 0 && f.Limit > apiCfg.MaxPageSize {
		return f, &models.APIError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("limit must be between 0 and %d", apiCfg.MaxPageSize),
			Details: map[string]interface{}{
				"field": "limit",
				"value": f.Limit,
			},
		}
	}

	return f, nil
}
