// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Status is "success" or "error"; Error is populated only for
// error responses.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...]},
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z", "query_time_ms": 2}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details.
//
// Codes used by the engine API:
//   - VALIDATION_ERROR: request failed validation
//   - NOT_FOUND: unknown protocol or user
//   - SCHEMA_MISMATCH: stale feature vector schema
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
