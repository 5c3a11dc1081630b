// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package api

import (
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"alice", "alice"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
	}

	for _, tt := range tests {
		if got := sanitizeLogValue(tt.input); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateETag_Stable(t *testing.T) {
	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))

	if a != b {
		t.Errorf("same input produced %q and %q", a, b)
	}
	if a == c {
		t.Error("different input produced the same ETag")
	}
	if a[0] != '"' || a[len(a)-1] != '"' {
		t.Errorf("ETag %s is not quoted", a)
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		present bool
		wantErr bool
	}{
		{"", 0, false, false},
		{"page=3", 3, true, false},
		{"page=%20%207%20", 7, true, false},
		{"page=3.5", 0, false, true},
		{"page=x", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			got, ok, apiErr := intParam(r, "page")
			if (apiErr != nil) != tt.wantErr {
				t.Fatalf("intParam() error = %v, wantErr %v", apiErr, tt.wantErr)
			}
			if got != tt.want || ok != tt.present {
				t.Errorf("intParam() = %d, %v; want %d, %v", got, ok, tt.want, tt.present)
			}
		})
	}
}

func TestFloatParam(t *testing.T) {
	tests := []struct {
		query   string
		want    *float64
		wantErr bool
	}{
		{"", nil, false},
		{"min_score=12.5", ptr(12.5), false},
		{"min_score=-3", ptr(-3), false},
		{"min_score=Inf", nil, true},
		{"min_score=abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			got, apiErr := floatParam(r, "min_score")
			if (apiErr != nil) != tt.wantErr {
				t.Fatalf("floatParam() error = %v, wantErr %v", apiErr, tt.wantErr)
			}
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("floatParam() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
