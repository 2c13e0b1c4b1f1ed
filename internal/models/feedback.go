// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package models

import "time"

// UserFeedback is one post-protocol survey response. The feedback log is
// append-only: entries are never edited or deleted once recorded, only
// evicted by the retention cap.
type UserFeedback struct {
	UserID     string `json:"user_id" validate:"required"`
	ProtocolID string `json:"protocol_id" validate:"required"`

	// Rating is the overall rating, 1-5.
	Rating int `json:"rating" validate:"min=1,max=5"`

	// Completed reports whether the user finished the protocol.
	Completed bool `json:"completed"`

	// Effectiveness, Difficulty and Enjoyment are 1-10 survey scales.
	Effectiveness int `json:"effectiveness" validate:"min=1,max=10"`
	Difficulty    int `json:"difficulty" validate:"min=1,max=10"`
	Enjoyment     int `json:"enjoyment" validate:"min=1,max=10"`

	Timestamp time.Time `json:"timestamp"`
}

// ProtocolPerformanceMetrics are aggregate outcomes for one protocol,
// recomputed in full from the feedback log whenever feedback arrives. They
// are a pure function of the log's current contents.
type ProtocolPerformanceMetrics struct {
	ProtocolID         string  `json:"protocol_id"`
	AvgRating          float64 `json:"avg_rating"`
	CompletionRate     float64 `json:"completion_rate"`
	EffectivenessScore float64 `json:"effectiveness_score"`
	TotalFeedbacks     int     `json:"total_feedbacks"`
}

// UserInsight summarizes one user's learned state for the export snapshot.
type UserInsight struct {
	UserID         string             `json:"user_id"`
	Feedbacks      int                `json:"feedbacks"`
	AvgRating      float64            `json:"avg_rating"`
	CompletionRate float64            `json:"completion_rate"`
	Factors        map[string]float64 `json:"factors"`
}

// LearningSnapshot is the exported learning state for offline analysis.
// Everything in it is derived from the feedback log and current weights.
type LearningSnapshot struct {
	TotalFeedbacks      int                          `json:"total_feedbacks"`
	ProtocolPerformance []ProtocolPerformanceMetrics `json:"protocol_performance"`
	Weights             StrategyWeights              `json:"model_weights"`
	UserInsights        []UserInsight                `json:"user_insights"`
	GeneratedAt         time.Time                    `json:"generated_at"`
}
