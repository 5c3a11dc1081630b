// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agentboard/internal/models"
)

// StrictParser rejects any element that does not match the expected schema
// exactly. Types must match (a score sent as a string is rejected) and struct
// tags are enforced through the shared validator.
type StrictParser struct {
	parserBase
}

// strictAgent is the wire schema enforced by StrictParser.
type strictAgent struct {
	Username  string   `json:"username" validate:"required,notblank,max=64"`
	Score     *float64 `json:"score" validate:"required"`
	Avatar    string   `json:"avatar" validate:"max=2048"`
	City      string   `json:"city" validate:"max=128"`
	Followers *int64   `json:"followers" validate:"omitempty,gte=0"`
	Likes     *int64   `json:"likes" validate:"omitempty,gte=0"`
	Reposts   *int64   `json:"reposts" validate:"omitempty,gte=0"`
	Replies   *int64   `json:"replies" validate:"omitempty,gte=0"`
}

// strictProfile is the additional schema of a detail payload.
type strictProfile struct {
	Bio             string            `json:"bio"`
	WalletAddress   string            `json:"wallet_address" validate:"max=256"`
	WalletBalance   json.RawMessage   `json:"wallet_balance"`
	BioUpdatedAt    *time.Time        `json:"bio_updated_at"`
	RewardClaimedAt *time.Time        `json:"reward_claimed_at"`
	RecentPosts     []json.RawMessage `json:"recent_posts"`
}

type strictPost struct {
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	Likes     int64     `json:"likes" validate:"gte=0"`
	Reposts   int64     `json:"reposts" validate:"gte=0"`
	Replies   int64     `json:"replies" validate:"gte=0"`
}

// ParseRoster implements RosterParser.
func (p *StrictParser) ParseRoster(raw []byte) ([]models.Agent, error) {
	return p.parseRoster(raw, decodeStrictAgent)
}

// ParseAgent implements RosterParser.
func (p *StrictParser) ParseAgent(raw []byte) (*models.Agent, error) {
	obj, err := unwrapAgent(raw)
	if err != nil {
		return nil, err
	}

	agent, err := decodeStrictAgent(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgent, err)
	}

	var wire strictProfile
	if err := json.Unmarshal(obj, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgent, err)
	}
	if verr := ValidateStruct(&wire); verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgent, verr)
	}

	profile := &models.Profile{
		Bio:             strings.TrimSpace(wire.Bio),
		WalletAddress:   strings.TrimSpace(wire.WalletAddress),
		WalletBalance:   rawScalarString(wire.WalletBalance),
		BioUpdatedAt:    wire.BioUpdatedAt,
		RewardClaimedAt: wire.RewardClaimedAt,
	}
	profile.RecentPosts = p.strictPosts(agent.Username, wire.RecentPosts)
	agent.Detail = profile

	return p.finishAgent(agent), nil
}

// strictPosts keeps up to maxRecentPosts valid posts. Invalid posts are
// dropped and logged without failing the record that carries them.
func (p *StrictParser) strictPosts(username string, raw []json.RawMessage) []models.Post {
	if len(raw) == 0 {
		return nil
	}

	posts := make([]models.Post, 0, min(len(raw), p.maxRecentPosts))
	for i, elem := range raw {
		if len(posts) == p.maxRecentPosts {
			break
		}
		var wire strictPost
		err := json.Unmarshal(elem, &wire)
		if err == nil {
			if verr := ValidateStruct(&wire); verr != nil {
				err = verr
			}
		}
		if err != nil {
			p.logger.Warn().
				Str("username", username).
				Int("index", i).
				Str("reason", err.Error()).
				Msg("Dropping invalid recent post")
			continue
		}
		posts = append(posts, models.Post(wire))
	}
	if len(posts) == 0 {
		return nil
	}
	return posts
}

func decodeStrictAgent(raw json.RawMessage) (*models.Agent, error) {
	var wire strictAgent
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if verr := ValidateStruct(&wire); verr != nil {
		return nil, verr
	}

	return &models.Agent{
		Username:  strings.TrimSpace(wire.Username),
		Score:     *wire.Score,
		HasScore:  true,
		Avatar:    strings.TrimSpace(wire.Avatar),
		City:      strings.TrimSpace(wire.City),
		Followers: wire.Followers,
		Likes:     wire.Likes,
		Reposts:   wire.Reposts,
		Replies:   wire.Replies,
	}, nil
}
