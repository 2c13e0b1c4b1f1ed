// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package feedback

import "github.com/gmaxing/engine/internal/models"

// Personalization factor names. Each maps to a multiplicative boost applied
// wherever personalization is consulted.
const (
	FactorPrefersHighDifficulty = "prefers-high-difficulty"
	FactorPrefersLowDifficulty  = "prefers-low-difficulty"
	FactorEffectivenessFocused  = "effectiveness-focused"
	FactorEnjoymentImportant    = "enjoyment-important"
	FactorHighCompletion        = "high-completion"
	FactorNeedsSimplerProtocols = "needs-simpler-protocols"
)

// MinFeedbackForPersonalization gates factor derivation: users with fewer
// entries get an empty factor map, not a noisy one.
const MinFeedbackForPersonalization = 3

// MaxFactorBoost is the hard ceiling per factor, bounding runaway
// amplification when several factors stack.
const MaxFactorBoost = 1.3

// Personalization derives per-user multiplicative adjustment factors from
// that user's feedback history. Stateless; every call re-derives from the
// log so factors always reflect the current contents.
type Personalization struct {
	store *Store
}

// NewPersonalization creates a personalization model over the store.
func NewPersonalization(store *Store) *Personalization {
	return &Personalization{store: store}
}

// FactorsFor returns the user's adjustment factors. Users below the
// feedback gate get an empty map.
func (p *Personalization) FactorsFor(userID string) map[string]float64 {
	history := p.store.ForUser(userID)
	factors := make(map[string]float64)
	if len(history) < MinFeedbackForPersonalization {
		return factors
	}

	var difficulty, effectiveness, enjoyment float64
	completed := 0
	for i := range history {
		difficulty += float64(history[i].Difficulty)
		effectiveness += float64(history[i].Effectiveness)
		enjoyment += float64(history[i].Enjoyment)
		if history[i].Completed {
			completed++
		}
	}
	n := float64(len(history))
	meanDifficulty := difficulty / n
	meanEffectiveness := effectiveness / n
	meanEnjoyment := enjoyment / n
	completionRate := float64(completed) / n

	if meanDifficulty > 7 {
		factors[FactorPrefersHighDifficulty] = 1.2
	} else if meanDifficulty < 4 {
		factors[FactorPrefersLowDifficulty] = 1.2
	}
	if meanEffectiveness > 8 {
		factors[FactorEffectivenessFocused] = 1.3
	}
	if meanEnjoyment > 8 {
		factors[FactorEnjoymentImportant] = 1.1
	}
	if completionRate > 0.8 {
		factors[FactorHighCompletion] = 1.15
	} else if completionRate < 0.5 {
		factors[FactorNeedsSimplerProtocols] = 1.25
	}

	for name, boost := range factors {
		if boost > MaxFactorBoost {
			factors[name] = MaxFactorBoost
		}
	}
	return factors
}

// InsightFor summarizes a user's learned state for the export snapshot.
func (p *Personalization) InsightFor(userID string) models.UserInsight {
	history := p.store.ForUser(userID)
	insight := models.UserInsight{
		UserID:    userID,
		Feedbacks: len(history),
		Factors:   p.FactorsFor(userID),
	}
	if len(history) == 0 {
		return insight
	}

	var ratingSum float64
	completed := 0
	for i := range history {
		ratingSum += float64(history[i].Rating)
		if history[i].Completed {
			completed++
		}
	}
	insight.AvgRating = ratingSum / float64(len(history))
	insight.CompletionRate = float64(completed) / float64(len(history))
	return insight
}
