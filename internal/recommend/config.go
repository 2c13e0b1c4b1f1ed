// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package recommend

import (
	"fmt"
	"time"

	"github.com/gmaxing/engine/internal/models"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights is the initial strategy weighting. Values outside the clamp
	// ranges are clamped at construction.
	Weights models.StrategyWeights `json:"weights" koanf:"weights"`

	// MaxResults caps the number of recommendations per request.
	MaxResults int `json:"max_results" koanf:"max_results"`

	// NeighborK is the neighbor count for the collaborative strategy's
	// default provider.
	NeighborK int `json:"neighbor_k" koanf:"neighbor_k"`

	// Adaptation contains weight-adaptation parameters.
	Adaptation AdaptationConfig `json:"adaptation" koanf:"adaptation"`
}

// AdaptationConfig controls the weight adapter.
type AdaptationConfig struct {
	// MinFeedback gates adaptation: below this many log entries the
	// weights stay untouched.
	MinFeedback int `json:"min_feedback" koanf:"min_feedback"`

	// Window is how many of the most recent entries adaptation considers.
	Window int `json:"window" koanf:"window"`

	// SuccessThreshold is the (rating+effectiveness)/2 cutoff above which
	// an entry counts as a success.
	SuccessThreshold float64 `json:"success_threshold" koanf:"success_threshold"`

	// Interval is how often the periodic adaptation service runs.
	Interval time.Duration `json:"interval" koanf:"interval"`
}

// DefaultConfig returns the shipped engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights:    models.DefaultStrategyWeights(),
		MaxResults: 10,
		NeighborK:  10,
		Adaptation: AdaptationConfig{
			MinFeedback:      50,
			Window:           500,
			SuccessThreshold: 6,
			Interval:         10 * time.Minute,
		},
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.Adaptation.MinFeedback <= 0 {
		return fmt.Errorf("adaptation.min_feedback must be positive, got %d", c.Adaptation.MinFeedback)
	}
	if c.Adaptation.Window <= 0 {
		return fmt.Errorf("adaptation.window must be positive, got %d", c.Adaptation.Window)
	}
	if c.Adaptation.SuccessThreshold <= 0 {
		return fmt.Errorf("adaptation.success_threshold must be positive, got %f", c.Adaptation.SuccessThreshold)
	}
	if c.Adaptation.Interval <= 0 {
		return fmt.Errorf("adaptation.interval must be positive, got %s", c.Adaptation.Interval)
	}
	return nil
}

// weightRange bounds one strategy weight.
type weightRange struct {
	min, max float64
}

func (r weightRange) clamp(v float64) float64 {
	if v < r.min {
		return r.min
	}
	if v > r.max {
		return r.max
	}
	return v
}

// Per-strategy clamp ranges. Domain-specific scoring stays structurally
// dominant while all strategies keep a nonzero floor.
var (
	contentRange        = weightRange{0.1, 0.4}
	collaborativeRange  = weightRange{0.1, 0.4}
	domainSpecificRange = weightRange{0.3, 0.6}
	progressRange       = weightRange{0.05, 0.2}
)

// ClampWeights forces each weight into its allowed range.
func ClampWeights(w models.StrategyWeights) models.StrategyWeights {
	return models.StrategyWeights{
		Collaborative:  collaborativeRange.clamp(w.Collaborative),
		Content:        contentRange.clamp(w.Content),
		DomainSpecific: domainSpecificRange.clamp(w.DomainSpecific),
		Progress:       progressRange.clamp(w.Progress),
	}
}

// NormalizeWeights scales the weights to sum to 1. All-zero input yields
// the shipped defaults.
func NormalizeWeights(w models.StrategyWeights) models.StrategyWeights {
	sum := w.Collaborative + w.Content + w.DomainSpecific + w.Progress
	if sum == 0 {
		return models.DefaultStrategyWeights()
	}
	return models.StrategyWeights{
		Collaborative:  w.Collaborative / sum,
		Content:        w.Content / sum,
		DomainSpecific: w.DomainSpecific / sum,
		Progress:       w.Progress / sum,
	}
}
