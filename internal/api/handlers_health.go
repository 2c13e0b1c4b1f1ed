// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package api

import (
	"net/http"
	"time"
)

// Health reports service status plus basic engine state counts.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"protocols":       h.catalog.Len(),
		"total_feedbacks": h.store.TotalFeedbacks(),
		"weights":         h.engine.Weights(),
	}, start)
}

// Live is the liveness probe. It never touches engine state.
func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready is the readiness probe; the service is ready once the catalog is
// loaded.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	if h.catalog.Len() == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("catalog empty"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
