// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package upstream

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the leaderboard service answers 404 for an agent.
var ErrNotFound = errors.New("upstream: agent not found")

// StatusError is returned for any non-200 response other than 404.
// Body holds at most maxErrorBodySize bytes of the response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream %s returned HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s returned HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsStatus reports whether err is a StatusError carrying the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
