// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package recommend

import (
	"time"

	"github.com/gmaxing/engine/internal/models"
)

// AdaptWeights retunes the strategy weights from recent feedback. It runs
// only once the log holds at least the configured minimum, considers the
// most recent window, and attributes proportional credit (by the shipped
// default weights acting as priors) to every strategy for each successful
// entry. The accumulated totals are normalized and clamped per-strategy.
//
// Returns the weights in effect afterwards and whether they were updated.
// Low-data states leave the weights untouched; they are expected, not
// errors.
func (e *Engine) AdaptWeights() (models.StrategyWeights, bool) {
	if e.feedback == nil || e.feedback.TotalFeedbacks() < e.config.Adaptation.MinFeedback {
		return e.Weights(), false
	}

	recent := e.feedback.Recent(e.config.Adaptation.Window)
	priors := models.DefaultStrategyWeights()

	var totals models.StrategyWeights
	successes := 0
	for i := range recent {
		quality := (float64(recent[i].Rating) + float64(recent[i].Effectiveness)) / 2
		if quality <= e.config.Adaptation.SuccessThreshold {
			continue
		}
		totals.Collaborative += priors.Collaborative
		totals.Content += priors.Content
		totals.DomainSpecific += priors.DomainSpecific
		totals.Progress += priors.Progress
		successes++
	}
	if successes == 0 {
		return e.Weights(), false
	}

	adapted := ClampWeights(NormalizeWeights(totals))

	e.weightsMu.Lock()
	e.weights = adapted
	e.lastAdaptedAt = e.now()
	e.adaptationCount++
	runs := e.adaptationCount
	e.weightsMu.Unlock()

	e.logger.Info().
		Int("successes", successes).
		Int("window", len(recent)).
		Int("runs", runs).
		Float64("collaborative", adapted.Collaborative).
		Float64("content", adapted.Content).
		Float64("domain_specific", adapted.DomainSpecific).
		Float64("progress", adapted.Progress).
		Msg("strategy weights adapted")
	return adapted, true
}

// LastAdaptedAt returns when the weights last changed, zero if never.
func (e *Engine) LastAdaptedAt() time.Time {
	e.weightsMu.RLock()
	defer e.weightsMu.RUnlock()
	return e.lastAdaptedAt
}
