// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package models

import "time"

// ForecastPoint is one extrapolated period of a numeric series. Confidence
// is monotonically non-increasing as the horizon grows.
type ForecastPoint struct {
	Period         string  `json:"period"`
	PredictedValue float64 `json:"predicted_value"`
	Confidence     float64 `json:"confidence"`
}

// UserActivity is the per-user telemetry slice churn scoring consumes. It
// is supplied by the analytics collaborator; the engine does not own it.
type UserActivity struct {
	UserID            string    `json:"user_id" validate:"required"`
	LastActiveAt      time.Time `json:"last_active_at"`
	TotalSpent        float64   `json:"total_spent"`
	EngagementScore   float64   `json:"engagement_score" validate:"min=0,max=100"`
	AvgSessionMinutes float64   `json:"avg_session_minutes"`
	ProtocolsUsed     int       `json:"protocols_used"`
}

// ChurnRiskEntry flags one paying user at risk of disengaging.
type ChurnRiskEntry struct {
	UserID    string   `json:"user_id"`
	RiskScore float64  `json:"risk_score"`
	Reasons   []string `json:"reasons"`
}
