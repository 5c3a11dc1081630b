// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agentboard/internal/cache"
	"github.com/tomtom215/agentboard/internal/logging"
	"github.com/tomtom215/agentboard/internal/models"
	"github.com/tomtom215/agentboard/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if status < http.StatusBadRequest {
		w.Header().Set("Cache-Control", "public, max-age=60")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.Quote(strconv.FormatUint(uint64(hash), 16))
}

// respondSuccess sends a success envelope. capturedAt, when non-zero, tells
// clients how old the roster behind the response is.
func respondSuccess(w http.ResponseWriter, data interface{}, start, capturedAt time.Time) {
	meta := models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
	}
	if !capturedAt.IsZero() {
		t := capturedAt.UTC()
		meta.CapturedAt = &t
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.CtxWarn(r.Context())
		if status >= http.StatusInternalServerError {
			event = logging.CtxError(r.Context())
		}
		event.Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondAPIError(w, status, &models.APIError{Code: code, Message: message})
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: apiErr,
	})
}

// respondServiceError maps errors from the board service onto HTTP statuses.
// A missing roster is the only condition that makes list endpoints fail.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cache.ErrRosterUnavailable):
		w.Header().Set("Retry-After", "30")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUpstreamUnavailable,
			"Leaderboard is temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeUpstreamTimeout,
			"Leaderboard service did not respond in time", err)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		logging.CtxDebug(r.Context()).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Request canceled")
	default:
		respondError(w, r, http.StatusBadGateway, ErrCodeUpstreamError,
			"Leaderboard service request failed", err)
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	return validationErr.ToAPIError()
}

// paramError builds a VALIDATION_ERROR for a malformed query parameter.
func paramError(name, value, expected string) *models.APIError {
	return &models.APIError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s must be %s", name, expected),
		Details: map[string]interface{}{
			"field": name,
			"value": value,
		},
	}
}

// intParam parses an optional integer query parameter. ok is false when the
// parameter is absent.
func intParam(r *http.Request, name string) (value int, ok bool, apiErr *models.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, paramError(name, raw, "an integer")
	}
	return n, true, nil
}

// floatParam parses an optional number query parameter into a pointer.
func floatParam(r *http.Request, name string) (*float64, *models.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, paramError(name, raw, "a number")
	}
	return &f, nil
}
