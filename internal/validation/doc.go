// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

// Package validation turns raw upstream payloads into validated agents and
// validates API input using go-playground/validator v10.
//
// # Roster Parsing
//
// RosterParser has two interchangeable implementations selected by
// configuration (validation.mode):
//
//   - StrictParser: typed decode plus struct tags. Any element that does not
//     match the schema exactly is dropped.
//   - PermissiveParser: coerces numeric strings, accepts "name"/"handle" for
//     the username, clamps negative counts and defaults a missing score to 0.
//
// Both accept a bare JSON array or an object wrapping the array under the
// configured list field (default "agents"), then "data", "leaderboard",
// "results" and "items". Invalid and duplicate elements are logged and dropped;
// they never fail the batch. Only a payload that cannot contain a list at all
// returns ErrMalformedPayload.
//
//	parser, err := validation.NewParser(validation.ParserConfig{Mode: "strict"})
//	agents, err := parser.ParseRoster(body)
//	// agents[i].Rank == i+1
//
// # Struct Validation
//
// ValidateStruct uses a thread-safe singleton validator with a "notblank"
// validator registered. Failures are returned as *RequestValidationError,
// which converts to the API error format:
//
//	if verr := validation.ValidateStruct(&filter); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
