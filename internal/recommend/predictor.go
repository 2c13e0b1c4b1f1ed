// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package recommend

import (
	"fmt"
	"sort"

	"github.com/gmaxing/engine/internal/models"
)

const (
	// baselineRating is the prediction with no data at all.
	baselineRating = 3.5

	// baseConfidence is the starting confidence before data raises it.
	baseConfidence = 0.5

	// metricsBlendWeight is how much observed community ratings pull the
	// prediction away from the baseline.
	metricsBlendWeight = 0.6
)

// PredictSatisfaction estimates the rating the user would give the
// protocol. Community aggregates blend against the baseline; the user's
// personalization factors then act as multipliers. Each data source that
// contributes raises confidence. Returns catalog.ErrNotFound for an
// unknown protocol.
func (e *Engine) PredictSatisfaction(userID, protocolID string) (models.SatisfactionPrediction, error) {
	if _, err := e.cat.Get(protocolID); err != nil {
		return models.SatisfactionPrediction{}, fmt.Errorf("predict satisfaction: %w", err)
	}

	rating := baselineRating
	confidence := baseConfidence
	var factors []string

	if e.feedback != nil {
		if m, ok := e.feedback.MetricsOf(protocolID); ok && m.TotalFeedbacks > 0 {
			rating = m.AvgRating*metricsBlendWeight + baselineRating*(1-metricsBlendWeight)
			confidence += 0.2
			factors = append(factors, "community-rating-history")
		}
	}

	if e.personalization != nil {
		personal := e.personalization.FactorsFor(userID)
		names := make([]string, 0, len(personal))
		for name, boost := range personal {
			if boost > 1 {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			rating *= personal[name]
			confidence += 0.1
			factors = append(factors, name)
		}
	}

	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	if confidence > 1 {
		confidence = 1
	}

	return models.SatisfactionPrediction{
		PredictedRating: rating,
		Confidence:      confidence,
		Factors:         factors,
	}, nil
}
