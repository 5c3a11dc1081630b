// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package validation

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agentboard/internal/models"
)

// PermissiveParser keeps imperfect elements by coercing their fields:
//
//   - numeric strings are accepted wherever a number is expected
//   - "name" and "handle" are accepted when "username" is missing
//   - negative counts are clamped to zero
//   - a missing or unusable score becomes 0
//
// Elements without any usable identifier are still dropped.
type PermissiveParser struct {
	parserBase
}

var (
	usernameKeys = []string{"username", "name", "handle"}
	avatarKeys   = []string{"avatar", "avatar_url", "image"}
	cityKeys     = []string{"city", "location"}
	contentKeys  = []string{"content", "text"}
	createdKeys  = []string{"created_at", "timestamp"}
)

var errNoIdentifier = errors.New("element has no usable username")

// ParseRoster implements RosterParser.
func (p *PermissiveParser) ParseRoster(raw []byte) ([]models.Agent, error) {
	return p.parseRoster(raw, decodePermissiveAgent)
}

// ParseAgent implements RosterParser.
func (p *PermissiveParser) ParseAgent(raw []byte) (*models.Agent, error) {
	obj, err := unwrapAgent(raw)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(obj)
	if err != nil {
		return nil, errors.Join(ErrInvalidAgent, err)
	}

	agent, err := permissiveAgentFromFields(fields)
	if err != nil {
		return nil, errors.Join(ErrInvalidAgent, err)
	}

	agent.Detail = &models.Profile{
		Bio:             coerceString(fields["bio"]),
		WalletAddress:   coerceString(fields["wallet_address"]),
		WalletBalance:   rawScalarString(fields["wallet_balance"]),
		BioUpdatedAt:    coerceTime(fields["bio_updated_at"]),
		RewardClaimedAt: coerceTime(fields["reward_claimed_at"]),
		RecentPosts:     coercePosts(fields["recent_posts"], p.maxRecentPosts),
	}

	return p.finishAgent(agent), nil
}

func decodePermissiveAgent(raw json.RawMessage) (*models.Agent, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	return permissiveAgentFromFields(fields)
}

func permissiveAgentFromFields(fields map[string]json.RawMessage) (*models.Agent, error) {
	username := coerceString(first(fields, usernameKeys))
	if username == "" {
		return nil, errNoIdentifier
	}

	score, hasScore := coerceFloat(fields["score"])

	return &models.Agent{
		Username:  username,
		Score:     score,
		HasScore:  hasScore,
		Avatar:    coerceString(first(fields, avatarKeys)),
		City:      coerceString(first(fields, cityKeys)),
		Followers: coerceCount(fields["followers"]),
		Likes:     coerceCount(fields["likes"]),
		Reposts:   coerceCount(fields["reposts"]),
		Replies:   coerceCount(fields["replies"]),
	}, nil
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("element is not an object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// first returns the value of the first key present with a non-null value.
func first(fields map[string]json.RawMessage, keys []string) json.RawMessage {
	for _, k := range keys {
		if v, ok := fields[k]; ok && !isNull(v) {
			return v
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// coerceString accepts strings and numbers.
func coerceString(raw json.RawMessage) string {
	return rawScalarString(raw)
}

// coerceFloat accepts numbers and numeric strings.
func coerceFloat(raw json.RawMessage) (float64, bool) {
	s := rawScalarString(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerceCount returns nil for absent or unusable values and clamps negatives to zero.
func coerceCount(raw json.RawMessage) *int64 {
	f, ok := coerceFloat(raw)
	if !ok {
		return nil
	}
	if f < 0 {
		f = 0
	}
	if f >= math.MaxInt64 {
		return models.Int64(math.MaxInt64)
	}
	return models.Int64(int64(f))
}

// coerceTime accepts RFC3339 strings and unix timestamps in seconds.
func coerceTime(raw json.RawMessage) *time.Time {
	s := rawScalarString(raw)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil && secs > 0 {
		t := time.Unix(int64(secs), 0).UTC()
		return &t
	}
	return nil
}

func coercePosts(raw json.RawMessage, limit int) []models.Post {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil
	}

	posts := make([]models.Post, 0, min(len(items), limit))
	for _, item := range items {
		if len(posts) == limit {
			break
		}
		fields, err := decodeObject(item)
		if err != nil {
			continue
		}
		content := coerceString(first(fields, contentKeys))
		if content == "" {
			continue
		}
		post := models.Post{
			Content: content,
			Likes:   models.Count(coerceCount(fields["likes"])),
			Reposts: models.Count(coerceCount(fields["reposts"])),
			Replies: models.Count(coerceCount(fields["replies"])),
		}
		if t := coerceTime(first(fields, createdKeys)); t != nil {
			post.CreatedAt = *t
		}
		posts = append(posts, post)
	}
	if len(posts) == 0 {
		return nil
	}
	return posts
}
