// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package forecast produces short-horizon linear-trend extrapolations over
// numeric series (revenue, active users) and churn-risk rankings over user
// activity. Everything here is a pure function: no state, no I/O.
package forecast

import (
	"fmt"

	"github.com/gmaxing/engine/internal/models"
)

// Confidence decay bounds. The first extrapolated period starts at 0.85
// and each further period loses 0.05, floored at 0.6.
const (
	confidenceBase  = 0.9
	confidenceDecay = 0.05
	confidenceFloor = 0.6
)

// Series fits an ordinary least-squares line over the history and
// extrapolates horizon periods past the last observation. Confidence
// decays monotonically with the horizon. With a single data point the
// forecast is flat (no trend can be fit); with no data it is empty.
func Series(history []float64, horizon int) []models.ForecastPoint {
	if len(history) == 0 || horizon <= 0 {
		return nil
	}

	slope := olsSlope(history)
	last := history[len(history)-1]

	points := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		confidence := confidenceBase - confidenceDecay*float64(i)
		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}
		points = append(points, models.ForecastPoint{
			Period:         fmt.Sprintf("t+%d", i),
			PredictedValue: last + slope*float64(i),
			Confidence:     confidence,
		})
	}
	return points
}

// olsSlope returns the closed-form least-squares slope over the series
// indexed 0..n-1. Fewer than two points have no trend.
func olsSlope(history []float64) float64 {
	n := float64(len(history))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range history {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
