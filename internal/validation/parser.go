// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/agentboard/internal/logging"
	"github.com/tomtom215/agentboard/internal/metrics"
	"github.com/tomtom215/agentboard/internal/models"
)

// Parser modes accepted by NewParser.
const (
	ModeStrict     = "strict"
	ModePermissive = "permissive"
)

// DefaultListField is the object field the roster list is expected under.
const DefaultListField = "agents"

// DefaultMaxRecentPosts bounds the recent activity list of an enriched agent.
const DefaultMaxRecentPosts = 20

// fallbackListFields are tried, in order, after the configured list field.
var fallbackListFields = []string{"data", "leaderboard", "results", "items"}

// agentWrapperFields may wrap a single agent object in a detail payload.
var agentWrapperFields = []string{"agent", "data"}

var (
	// ErrMalformedPayload is returned when a payload is not JSON, or is JSON of
	// a shape that cannot contain agents (a scalar, or a list for a detail).
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrEmptyRoster is returned by callers that received zero usable agents.
	// A roster that parses to nothing is treated like a transport failure.
	ErrEmptyRoster = errors.New("upstream roster contained no valid agents")

	// ErrInvalidAgent is returned by ParseAgent when the single record fails validation.
	ErrInvalidAgent = errors.New("invalid agent record")
)

// RosterParser turns raw upstream payloads into validated agents.
//
// ParseRoster never fails because of individual elements: invalid elements and
// duplicate usernames are dropped and logged. The returned slice is never nil
// and each element's Rank equals its 1-based position in it.
type RosterParser interface {
	ParseRoster(raw []byte) ([]models.Agent, error)
	ParseAgent(raw []byte) (*models.Agent, error)
}

// ParserConfig configures a parser.
type ParserConfig struct {
	Mode           string
	ListField      string
	MaxRecentPosts int
}

// NewParser returns the parser for cfg.Mode. Unknown modes are rejected.
func NewParser(cfg ParserConfig) (RosterParser, error) {
	base := newParserBase(cfg)
	switch strings.ToLower(cfg.Mode) {
	case "", ModeStrict:
		return &StrictParser{parserBase: base}, nil
	case ModePermissive:
		return &PermissiveParser{parserBase: base}, nil
	default:
		return nil, fmt.Errorf("unknown validation mode %q (expected %s or %s)", cfg.Mode, ModeStrict, ModePermissive)
	}
}

// elementDecoder decodes one list element. A non-nil error drops the element.
type elementDecoder func(raw json.RawMessage) (*models.Agent, error)

// parserBase holds what both parser modes share: list location, dedupe and
// rank assignment.
type parserBase struct {
	listFields     []string
	maxRecentPosts int
	logger         zerolog.Logger
}

func newParserBase(cfg ParserConfig) parserBase {
	listField := cfg.ListField
	if listField == "" {
		listField = DefaultListField
	}
	fields := []string{listField}
	for _, f := range fallbackListFields {
		if f != listField {
			fields = append(fields, f)
		}
	}

	maxPosts := cfg.MaxRecentPosts
	if maxPosts <= 0 {
		maxPosts = DefaultMaxRecentPosts
	}

	return parserBase{
		listFields:     fields,
		maxRecentPosts: maxPosts,
		logger:         logging.WithComponent("validation"),
	}
}

// locateList finds the agent list in a roster payload.
func (p *parserBase) locateList(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return list, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		for _, field := range p.listFields {
			value, ok := obj[field]
			if !ok {
				continue
			}
			value = bytes.TrimSpace(value)
			if len(value) == 0 || value[0] != '[' {
				continue
			}
			var list []json.RawMessage
			if err := json.Unmarshal(value, &list); err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedPayload, field, err)
			}
			return list, nil
		}
		p.logger.Warn().
			Strs("expected_fields", p.listFields).
			Int("object_keys", len(obj)).
			Msg("Roster payload has no agent list field")
		return []json.RawMessage{}, nil

	default:
		return nil, fmt.Errorf("%w: unexpected JSON value", ErrMalformedPayload)
	}
}

// parseRoster runs decode over every element, dropping invalid ones and
// duplicates, and assigns ranks in output order.
func (p *parserBase) parseRoster(raw []byte, decode elementDecoder) ([]models.Agent, error) {
	list, err := p.locateList(raw)
	if err != nil {
		return nil, err
	}

	agents := make([]models.Agent, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	dropped := 0

	for i, elem := range list {
		agent, err := decode(elem)
		if err != nil {
			dropped++
			p.logger.Warn().
				Int("index", i).
				Str("reason", err.Error()).
				Msg("Dropping invalid roster element")
			continue
		}

		key := models.NormalizeUsername(agent.Username)
		if _, dup := seen[key]; dup {
			dropped++
			p.logger.Warn().
				Int("index", i).
				Str("username", agent.Username).
				Msg("Dropping duplicate roster element")
			continue
		}
		seen[key] = struct{}{}

		agent.Rank = len(agents) + 1
		agent.Enriched = false
		agent.Detail = nil
		agents = append(agents, *agent)
	}

	if dropped > 0 {
		metrics.RosterDroppedElements.Add(float64(dropped))
		p.logger.Info().
			Int("received", len(list)).
			Int("accepted", len(agents)).
			Int("dropped", dropped).
			Msg("Roster parsed with dropped elements")
	}

	return agents, nil
}

// unwrapAgent returns the object holding a single agent. Detail payloads may be
// a bare object or wrap it under "agent" or "data".
func unwrapAgent(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: agent payload is not an object", ErrMalformedPayload)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	for _, field := range agentWrapperFields {
		inner, ok := obj[field]
		if !ok {
			continue
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' {
			return inner, nil
		}
	}
	return trimmed, nil
}

// finishAgent applies the detail post bound and marks the record enriched.
func (p *parserBase) finishAgent(agent *models.Agent) *models.Agent {
	agent.Enriched = true
	agent.Rank = 0
	if agent.Detail == nil {
		agent.Detail = &models.Profile{}
	}
	if len(agent.Detail.RecentPosts) > p.maxRecentPosts {
		agent.Detail.RecentPosts = agent.Detail.RecentPosts[:p.maxRecentPosts]
	}
	return agent
}

// rawScalarString renders a JSON string or number as a Go string.
// Wallet balances arrive as either depending on the deployment.
func rawScalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
		return ""
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}
