// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package strategies

import "github.com/gmaxing/engine/internal/models"

// Trend classifies the user's recent performance direction.
type Trend string

// Trend values from the last-5-sessions performance delta.
const (
	TrendImproving Trend = "improving"
	TrendPlateau   Trend = "plateau"
	TrendDeclining Trend = "declining"
)

const (
	// trendWindow is how many recent sessions the classification looks at.
	trendWindow = 5

	// trendDelta separates improving/declining from plateau.
	trendDelta = 0.1

	// progressBaseline is the neutral score without session history.
	progressBaseline = 0.5

	plateauVarietyBonus    = 0.3
	decliningRecoveryBonus = 0.2
	improvingAdvancedBonus = 0.25

	// goalAlignmentMax scales the goal-overlap term.
	goalAlignmentMax = 0.15
)

// Progress adjusts scores based on the user's recent performance trend:
// plateaued users get variety, declining users get recovery, improving
// users get harder work.
type Progress struct{}

// NewProgress creates the progress-trend strategy.
func NewProgress() *Progress {
	return &Progress{}
}

// Name returns the strategy identifier.
func (p *Progress) Name() string {
	return "progress"
}

// Score starts from the neutral baseline, adds the trend-matched bonus and
// a goal-alignment term, and clamps to [0,1].
func (p *Progress) Score(in *Input) (float64, error) {
	score := progressBaseline

	if len(in.RecentSessions) > 0 {
		switch ClassifyTrend(in.RecentSessions) {
		case TrendPlateau:
			if in.Protocol.HasPrinciple(models.PrincipleVariety) {
				score += plateauVarietyBonus
			}
		case TrendDeclining:
			if in.Protocol.RecoveryRequirement == models.RecoveryHigh {
				score += decliningRecoveryBonus
			}
		case TrendImproving:
			if in.Protocol.Difficulty == models.DifficultyAdvanced {
				score += improvingAdvancedBonus
			}
		}
	}

	score += goalAlignmentMax * in.Profile.GoalOverlap(in.Protocol.Goals)

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// ClassifyTrend compares the earliest and latest of the last trendWindow
// sessions (records are ordered most-recent-last).
func ClassifyTrend(sessions []models.SessionRecord) Trend {
	if len(sessions) == 0 {
		return TrendPlateau
	}
	window := sessions
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}
	delta := window[len(window)-1].PerformanceScore - window[0].PerformanceScore
	switch {
	case delta > trendDelta:
		return TrendImproving
	case delta < -trendDelta:
		return TrendDeclining
	default:
		return TrendPlateau
	}
}
