// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/metrics"
	"github.com/gmaxing/engine/internal/models"
)

// WeightAdapter is the slice of the recommendation engine the adaptation
// loop needs. Avoids a circular import on the engine package.
type WeightAdapter interface {
	// AdaptWeights recomputes strategy weights from recent feedback.
	// The bool reports whether the weights changed.
	AdaptWeights() (models.StrategyWeights, bool)
}

// WeightAdaptationService periodically re-derives strategy weights from
// the feedback log and publishes them to the metrics gauges.
type WeightAdaptationService struct {
	adapter  WeightAdapter
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewWeightAdaptationService creates the periodic adaptation loop.
// Interval values of zero or less fall back to ten minutes.
func NewWeightAdaptationService(adapter WeightAdapter, interval time.Duration, logger zerolog.Logger) *WeightAdaptationService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &WeightAdaptationService{
		adapter:  adapter,
		interval: interval,
		logger:   logger.With().Str("service", "weight-adaptation").Logger(),
		name:     "weight-adaptation",
	}
}

// Serve implements suture.Service. Runs one adaptation pass per tick until
// the context is canceled.
func (s *WeightAdaptationService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("weight adaptation service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("weight adaptation service shutting down")
			return ctx.Err()

		case <-ticker.C:
			weights, changed := s.adapter.AdaptWeights()
			if !changed {
				s.logger.Debug().Msg("adaptation pass skipped, insufficient feedback")
				continue
			}
			metrics.WeightAdaptationRuns.Inc()
			metrics.SetStrategyWeights(weights)
			s.logger.Info().
				Float64("collaborative", weights.Collaborative).
				Float64("content", weights.Content).
				Float64("domain_specific", weights.DomainSpecific).
				Float64("progress", weights.Progress).
				Msg("strategy weights adapted")
		}
	}
}

// String identifies the service in suture logs.
func (s *WeightAdaptationService) String() string {
	return s.name
}
