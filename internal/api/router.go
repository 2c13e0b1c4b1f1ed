// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gmaxing/engine/internal/config"
	"github.com/gmaxing/engine/internal/middleware"
)

// NewRouter assembles the chi router: request-ID and metrics middleware,
// optional CORS and per-IP rate limiting, the versioned API surface, and
// the Prometheus scrape endpoint.
func NewRouter(h *Handlers, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	r.Use(middleware.PrometheusMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.Live)
			r.Get("/ready", h.Ready)
		})

		r.Post("/recommendations", h.Recommendations)

		r.Route("/protocols", func(r chi.Router) {
			r.Get("/", h.ListProtocols)
			r.Get("/{id}", h.GetProtocol)
			r.Get("/{id}/metrics", h.ProtocolMetrics)
		})

		r.Post("/feedback", h.RecordFeedback)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/personalization", h.UserPersonalization)
			r.Get("/satisfaction/{protocolId}", h.PredictSatisfaction)
		})

		r.Post("/forecast", h.Forecast)
		r.Post("/churn", h.ChurnRisk)

		r.Get("/insights/export", h.ExportInsights)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
