// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package strategies implements the scoring strategies of the hybrid
// recommendation engine.
//
// Each strategy implements the Strategy interface and produces a sub-score
// in [0,1] for one (profile, protocol) pair. The engine blends sub-scores
// with its current model weights; strategies themselves are stateless and
// safe for concurrent use.
//
//   - Content: feature-vector cosine similarity with feasibility penalties
//   - Collaborative: similar-user rating estimate via a NeighborEstimator
//   - Domain: GMaxing principle and physiology-match bonuses
//   - Progress: trend-aware adjustment from recent session history
package strategies

import (
	"github.com/gmaxing/engine/internal/feature"
	"github.com/gmaxing/engine/internal/models"
)

// Input carries the precomputed state for scoring one protocol against one
// user. Vectors are encoded once per request by the engine and shared
// across all strategies.
type Input struct {
	Profile  *models.UserProfile
	Protocol *models.Protocol

	ProfileVector  feature.Vector
	ProtocolVector feature.Vector

	// Progress and RecentSessions come from the recommendation context and
	// may be absent.
	Progress       *models.ProgressSnapshot
	RecentSessions []models.SessionRecord

	// Neighbors is the rating estimator for this scoring pass, taken once
	// at call start so every protocol scores against the same log state.
	// Nil when no neighbor data is wired.
	Neighbors NeighborEstimator
}

// Strategy scores one protocol for one user. Implementations must be
// deterministic: the same input always yields the same score.
type Strategy interface {
	// Name returns the strategy identifier used in sub-score breakdowns.
	Name() string

	// Score returns the sub-score in [0,1]. An error aborts the whole
	// scoring call (schema mismatches must not be papered over).
	Score(in *Input) (float64, error)
}

// NeighborEstimator estimates how a user would rate a protocol from
// similar users' history, against a fixed view of the rating data.
// Implementations must be deterministic. The second return is false when
// no estimate is possible (cold user, empty history), in which case the
// collaborative strategy falls back to a neutral score.
type NeighborEstimator interface {
	EstimateRating(userID, protocolID string) (float64, bool)
}

// NeighborProvider hands out point-in-time estimators. The engine takes
// one snapshot per scoring call; concurrent feedback writes cannot shift
// the rating data between protocols of the same call.
type NeighborProvider interface {
	Snapshot() NeighborEstimator
}
