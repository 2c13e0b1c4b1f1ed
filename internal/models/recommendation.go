// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package models

// RecommendationScore is one ranked recommendation. Output-only; never
// mutated after creation.
type RecommendationScore struct {
	// ProtocolID identifies the recommended protocol.
	ProtocolID string `json:"protocol_id"`

	// Score is the blended recommendation score in [0,1].
	Score float64 `json:"score"`

	// Confidence estimates how well-supported the score is, in [0,1].
	Confidence float64 `json:"confidence"`

	// GMaxingCompatibility is the domain-specific sub-score in [0,1],
	// surfaced separately because the platform ranks protocols by how
	// well they embody GMaxing programming principles.
	GMaxingCompatibility float64 `json:"gmaxing_compatibility"`

	// Reasons are human-readable justifications, most significant first.
	Reasons []string `json:"reasons"`

	// SubScores is the per-strategy breakdown (strategy name -> score).
	SubScores map[string]float64 `json:"sub_scores,omitempty"`
}

// SatisfactionPrediction estimates the rating a user would give a protocol.
type SatisfactionPrediction struct {
	PredictedRating float64  `json:"predicted_rating"`
	Confidence      float64  `json:"confidence"`
	Factors         []string `json:"factors"`
}

// StrategyWeights holds the relative importance of each scoring strategy.
// Weights are relative, not probabilistic: they need not sum to 1, and each
// is clamped into its own range so no strategy can dominate or vanish.
type StrategyWeights struct {
	Collaborative  float64 `json:"collaborative" koanf:"collaborative"`
	Content        float64 `json:"content" koanf:"content"`
	DomainSpecific float64 `json:"domain_specific" koanf:"domain_specific"`
	Progress       float64 `json:"progress" koanf:"progress"`
}

// DefaultStrategyWeights returns the shipped weight configuration. The
// domain-specific strategy carries the largest default weight.
func DefaultStrategyWeights() StrategyWeights {
	return StrategyWeights{
		Collaborative:  0.2,
		Content:        0.3,
		DomainSpecific: 0.4,
		Progress:       0.1,
	}
}
