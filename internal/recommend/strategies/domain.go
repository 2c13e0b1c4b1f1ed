// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package strategies

import (
	"math"

	"github.com/gmaxing/engine/internal/feature"
	"github.com/gmaxing/engine/internal/models"
)

// Principle-membership bonuses. Genetic-style optimization is the
// platform's core differentiator and carries the largest bonus.
const (
	geneticOptimizationBonus = 0.3
	progressiveOverloadBonus = 0.2
	compoundFocusBonus       = 0.2

	// physiologyMatchMax is the maximum contribution of each ordinal
	// match term (metabolic demand, recovery requirement).
	physiologyMatchMax = 0.15

	// progressSignalBonus applies when a progress snapshot is present.
	progressSignalBonus = 0.1
)

// Domain scores how well a protocol embodies GMaxing programming
// principles and matches the user's physiology.
type Domain struct{}

// NewDomain creates the domain-compatibility strategy.
func NewDomain() *Domain {
	return &Domain{}
}

// Name returns the strategy identifier.
func (d *Domain) Name() string {
	return "domain_specific"
}

// Score sums principle bonuses, metabolic and recovery ordinal-match
// terms, and the progress-signal bonus, capped at 1.
func (d *Domain) Score(in *Input) (float64, error) {
	var score float64

	if in.Protocol.HasPrinciple(models.PrincipleGeneticOptimization) {
		score += geneticOptimizationBonus
	}
	if in.Protocol.HasPrinciple(models.PrincipleProgressiveOverload) {
		score += progressiveOverloadBonus
	}
	if in.Protocol.HasPrinciple(models.PrincipleCompoundFocus) {
		score += compoundFocusBonus
	}

	score += ordinalMatch(
		in.Protocol.MetabolicDemand.Ordinal(),
		feature.IdealMetabolicOrdinal(in.Profile),
		len(models.MetabolicDemands)-1,
	)
	score += ordinalMatch(
		in.Protocol.RecoveryRequirement.Ordinal(),
		feature.IdealRecoveryOrdinal(in.Profile),
		models.RecoveryHigh.Ordinal(),
	)

	if in.Progress != nil {
		score += progressSignalBonus
	}

	if score > 1 {
		score = 1
	}
	return score, nil
}

// ordinalMatch scales physiologyMatchMax by how close the protocol's
// ordinal level is to the ideal one. A full-range mismatch contributes
// nothing; an exact match contributes the maximum.
func ordinalMatch(actual, ideal, maxOrdinal int) float64 {
	if actual < 0 || maxOrdinal <= 0 {
		return 0
	}
	distance := math.Abs(float64(actual-ideal)) / float64(maxOrdinal)
	return physiologyMatchMax * (1 - distance)
}
