// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/catalog"
	"github.com/gmaxing/engine/internal/feature"
	"github.com/gmaxing/engine/internal/feedback"
	"github.com/gmaxing/engine/internal/forecast"
	"github.com/gmaxing/engine/internal/metrics"
	"github.com/gmaxing/engine/internal/models"
	"github.com/gmaxing/engine/internal/recommend"
	"github.com/gmaxing/engine/internal/validation"
)

// Handlers holds the engine collaborators the HTTP layer fronts.
type Handlers struct {
	engine          *recommend.Engine
	catalog         *catalog.Catalog
	store           *feedback.Store
	personalization *feedback.Personalization
	logger          zerolog.Logger
}

// NewHandlers wires the HTTP layer over the engine collaborators.
func NewHandlers(engine *recommend.Engine, cat *catalog.Catalog, store *feedback.Store, pers *feedback.Personalization, logger zerolog.Logger) *Handlers {
	return &Handlers{
		engine:          engine,
		catalog:         cat,
		store:           store,
		personalization: pers,
		logger:          logger.With().Str("component", "api").Logger(),
	}
}

// Recommendations scores the full catalog for the posted context and
// returns the ranked protocols.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	scores, err := h.engine.Recommend(&req.RecommendationContext, req.MaxResults)
	if err != nil {
		h.respondEngineError(w, r, err, "recommendation scoring failed")
		return
	}

	metrics.RecommendationsTotal.Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"recommendations": scores,
		"count":           len(scores),
	}, start)
}

// ListProtocols returns the full protocol catalog.
func (h *Handlers) ListProtocols(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	protocols := h.catalog.List()
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"protocols": protocols,
		"count":     len(protocols),
	}, start)
}

// GetProtocol returns one protocol by ID.
func (h *Handlers) GetProtocol(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	p, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "protocol not found: "+id, nil)
			return
		}
		h.respondEngineError(w, r, err, "catalog lookup failed")
		return
	}

	respondSuccess(w, r, http.StatusOK, p, start)
}

// RecordFeedback appends one survey response to the feedback log.
func (h *Handlers) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var fb models.UserFeedback
	if err := decodeJSON(r, &fb); err != nil {
		metrics.FeedbackRejectedTotal.Inc()
		respondError(w, r, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error(), nil)
		return
	}

	if err := h.store.Record(fb); err != nil {
		if errors.Is(err, feedback.ErrValidation) {
			metrics.FeedbackRejectedTotal.Inc()
			respondError(w, r, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
			return
		}
		h.respondEngineError(w, r, err, "feedback record failed")
		return
	}

	metrics.FeedbackRecordedTotal.Inc()
	metrics.FeedbackLogSize.Set(float64(h.store.TotalFeedbacks()))

	respondSuccess(w, r, http.StatusCreated, map[string]interface{}{
		"recorded":        true,
		"total_feedbacks": h.store.TotalFeedbacks(),
	}, start)
}

// ProtocolMetrics returns the aggregate performance metrics for one
// protocol. Known protocols with no feedback yet return 404.
func (h *Handlers) ProtocolMetrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	if _, err := h.catalog.Get(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "protocol not found: "+id, nil)
			return
		}
		h.respondEngineError(w, r, err, "catalog lookup failed")
		return
	}

	m, ok := h.store.MetricsOf(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "no feedback recorded for protocol: "+id, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, m, start)
}

// UserPersonalization returns the learned insight and adjustment factors
// for one user.
func (h *Handlers) UserPersonalization(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "id")

	insight := h.personalization.InsightFor(userID)
	respondSuccess(w, r, http.StatusOK, insight, start)
}

// PredictSatisfaction returns the predicted rating for a user and protocol.
func (h *Handlers) PredictSatisfaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "id")
	protocolID := chi.URLParam(r, "protocolId")

	pred, err := h.engine.PredictSatisfaction(userID, protocolID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "protocol not found: "+protocolID, nil)
			return
		}
		h.respondEngineError(w, r, err, "satisfaction prediction failed")
		return
	}

	metrics.SatisfactionPredictionsTotal.Inc()
	respondSuccess(w, r, http.StatusOK, pred, start)
}

// Forecast extrapolates a numeric series over the requested horizon.
func (h *Handlers) Forecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ForecastRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	points := forecast.Series(req.History, req.Horizon)
	metrics.ForecastRequestsTotal.Inc()

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"forecast": points,
		"horizon":  req.Horizon,
	}, start)
}

// ChurnRisk scores the posted user activity slice for churn risk.
func (h *Handlers) ChurnRisk(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ChurnRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	entries := forecast.ChurnRisk(req.Users, req.TopN, time.Now().UTC())
	metrics.ChurnScansTotal.Inc()

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"at_risk": entries,
		"count":   len(entries),
	}, start)
}

// ExportInsights returns the full learning snapshot for offline analysis.
func (h *Handlers) ExportInsights(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, h.engine.Export(), start)
}

// respondValidationError translates a struct validation failure into the
// 400 envelope, flattening details to string values.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	details := make(map[string]string, len(verr.Errors()))
	for _, fe := range verr.Errors() {
		details[fe.Field()] = fe.Error()
	}
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, details)
}

// respondEngineError maps internal errors onto the wire, logging the
// original. Schema mismatches get their own code so stale catalog data is
// distinguishable from generic failures.
func (h *Handlers) respondEngineError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	if errors.Is(err, feature.ErrSchemaMismatch) {
		respondError(w, r, http.StatusInternalServerError, CodeSchemaMismatch, "feature vector schema mismatch", nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, CodeInternalError, msg, nil)
}
