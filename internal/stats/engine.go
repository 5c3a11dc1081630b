// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package stats

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/logging"
	"github.com/tomtom215/agentboard/internal/metrics"
	"github.com/tomtom215/agentboard/internal/models"
	"github.com/tomtom215/agentboard/internal/query"
)

// DetailSource resolves enriched agent records. AgentDetailCache implements it.
type DetailSource interface {
	GetDetail(ctx context.Context, username string) (*models.Agent, error)
}

// Config bounds the statistics computation.
type Config struct {
	SampleSize  int // agents sampled when counts must be estimated
	TopN        int // size of the top and bottom performer lists
	Concurrency int // parallel detail fetches while sampling
}

// ConfigFrom maps application configuration onto Config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		SampleSize:  cfg.Stats.SampleSize,
		TopN:        cfg.Stats.TopN,
		Concurrency: cfg.Stats.Concurrency,
	}
}

// Engine computes aggregate roster statistics.
type Engine struct {
	details DetailSource
	cfg     Config
	logger  zerolog.Logger
}

// NewEngine creates a stats engine. details may be nil, in which case
// missing counts are never sampled and estimate to zero.
func NewEngine(details DetailSource, cfg Config) *Engine {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 50
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &Engine{
		details: details,
		cfg:     cfg,
		logger:  logging.WithComponent("stats"),
	}
}

// Compute derives statistics for roster.
//
// Like and follower totals are exact sums when every roster entry carries
// the count. Otherwise they are extrapolated from the detail records of the
// first SampleSize agents in rank order: the sample average multiplied by the
// roster size. Failed sample fetches are skipped.
func (e *Engine) Compute(ctx context.Context, roster []models.Agent) models.Stats {
	start := time.Now()
	defer func() {
		metrics.StatsComputeDuration.Observe(time.Since(start).Seconds())
	}()

	n := len(roster)
	result := models.Stats{
		TotalAgents:      n,
		TopPerformers:    []models.Agent{},
		BottomPerformers: []models.Agent{},
	}
	if n == 0 {
		return result
	}

	var sum float64
	for i := range roster {
		sum += roster[i].Score
	}
	result.AverageScore = int64(math.Round(sum / float64(n)))

	result.TopPerformers = query.Run(roster, models.Filter{Sort: models.SortScore, Limit: e.cfg.TopN}).Items
	result.BottomPerformers = query.Run(roster, models.Filter{Sort: models.SortScoreAsc, Limit: e.cfg.TopN}).Items

	likes, likesComplete := exactSum(roster, func(a *models.Agent) *int64 { return a.Likes })
	followers, followersComplete := exactSum(roster, func(a *models.Agent) *int64 { return a.Followers })
	result.EstimatedTotalLikes = likes
	result.EstimatedTotalFollowers = followers

	if likesComplete && followersComplete {
		return result
	}

	sample := e.sampleDetails(ctx, roster)
	result.Estimated = true
	result.SampleSize = len(sample)

	if !likesComplete {
		result.EstimatedTotalLikes = extrapolate(sample, n, func(a *models.Agent) *int64 { return a.Likes })
	}
	if !followersComplete {
		result.EstimatedTotalFollowers = extrapolate(sample, n, func(a *models.Agent) *int64 { return a.Followers })
	}
	return result
}

// sampleDetails fetches detail records for the head of the roster with
// bounded concurrency. Only successful fetches are returned.
func (e *Engine) sampleDetails(ctx context.Context, roster []models.Agent) []*models.Agent {
	if e.details == nil {
		return nil
	}

	size := e.cfg.SampleSize
	if size > len(roster) {
		size = len(roster)
	}

	fetched := make([]*models.Agent, size)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	for i := 0; i < size; i++ {
		username := roster[i].Username
		g.Go(func() error {
			detail, err := e.details.GetDetail(gctx, username)
			if err != nil {
				metrics.StatsSampleFailures.Inc()
				e.logger.Debug().Err(err).Str("username", username).Msg("Skipping sampled agent")
				return nil
			}
			fetched[i] = detail
			return nil
		})
	}
	_ = g.Wait()

	sample := make([]*models.Agent, 0, size)
	for _, d := range fetched {
		if d != nil {
			sample = append(sample, d)
		}
	}
	return sample
}

// exactSum totals a count over the roster and reports whether every entry
// carried it.
func exactSum(roster []models.Agent, field func(*models.Agent) *int64) (int64, bool) {
	var total int64
	for i := range roster {
		v := field(&roster[i])
		if v == nil {
			return 0, false
		}
		total += *v
	}
	return total, true
}

// extrapolate multiplies the sample average of a count by the population size.
// Roster fallbacks without the count say nothing about it and are left out.
func extrapolate(sample []*models.Agent, population int, field func(*models.Agent) *int64) int64 {
	var total int64
	counted := 0
	for _, a := range sample {
		v := field(a)
		if v == nil && !a.Enriched {
			continue
		}
		total += models.Count(v)
		counted++
	}
	if counted == 0 {
		return 0
	}
	avg := float64(total) / float64(counted)
	return int64(math.Round(avg * float64(population)))
}
