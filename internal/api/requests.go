// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package api

import "github.com/gmaxing/engine/internal/models"

// RecommendationRequest is the POST /api/v1/recommendations body.
// MaxResults of zero means the server-side cap applies.
type RecommendationRequest struct {
	models.RecommendationContext
	MaxResults int `json:"max_results" validate:"min=0,max=100"`
}

// ForecastRequest is the POST /api/v1/forecast body. History is ordered
// oldest to newest.
type ForecastRequest struct {
	History []float64 `json:"history" validate:"required,min=1"`
	Horizon int       `json:"horizon" validate:"min=1,max=24"`
}

// ChurnRequest is the POST /api/v1/churn body. TopN of zero returns all
// flagged users.
type ChurnRequest struct {
	Users []models.UserActivity `json:"users" validate:"required,min=1,dive"`
	TopN  int                   `json:"top_n" validate:"min=0"`
}
