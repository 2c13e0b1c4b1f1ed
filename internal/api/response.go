// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package api exposes the engine over HTTP: recommendations, protocol
// catalog, feedback recording, satisfaction predictions, forecasting,
// churn scoring and the learning-snapshot export. All responses share the
// models.APIResponse envelope.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/gmaxing/engine/internal/logging"
	"github.com/gmaxing/engine/internal/middleware"
	"github.com/gmaxing/engine/internal/models"
)

// Error codes returned by the API.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeSchemaMismatch  = "SCHEMA_MISMATCH"
	CodeInternalError   = "INTERNAL_ERROR"
)

// respondSuccess writes the success envelope. start stamps query timing
// metadata; pass the handler's entry time.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	writeJSON(w, r, status, models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			RequestID:   middleware.GetRequestID(r.Context()),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError writes the error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]string) {
	writeJSON(w, r, status, models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().
			Err(err).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("failed to encode response")
	}
}

// decodeJSON reads the request body into dst, rejecting unknown fields so
// client typos surface instead of silently validating zero values.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
