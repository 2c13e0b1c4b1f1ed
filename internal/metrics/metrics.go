// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package metrics exposes Prometheus instrumentation for the engine: API
// latency and throughput, scoring and feedback counters, live strategy
// weights, and forecast usage.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gmaxing/engine/internal/models"
)

var (
	// API metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gmaxing_api_requests_total",
			Help: "Total API requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gmaxing_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// Recommendation metrics

	RecommendationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_recommendations_total",
			Help: "Total recommendation requests scored",
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gmaxing_recommendation_duration_seconds",
			Help:    "Full-catalog scoring latency in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	SatisfactionPredictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_satisfaction_predictions_total",
			Help: "Total satisfaction predictions computed",
		},
	)

	// Feedback metrics

	FeedbackRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_feedback_recorded_total",
			Help: "Total feedback entries accepted into the log",
		},
	)

	FeedbackRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_feedback_rejected_total",
			Help: "Total feedback entries rejected by validation",
		},
	)

	FeedbackLogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gmaxing_feedback_log_entries",
			Help: "Current feedback log size after retention eviction",
		},
	)

	// Learning metrics

	WeightAdaptationRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_weight_adaptation_runs_total",
			Help: "Total weight adaptation runs that changed the weights",
		},
	)

	StrategyWeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gmaxing_strategy_weight",
			Help: "Current scoring weight per strategy",
		},
		[]string{"strategy"},
	)

	// Forecast metrics

	ForecastRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_forecast_requests_total",
			Help: "Total series forecast requests",
		},
	)

	ChurnScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gmaxing_churn_scans_total",
			Help: "Total churn-risk scans",
		},
	)
)

// ObserveAPIRequest records one finished HTTP request.
func ObserveAPIRequest(endpoint, method string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// SetStrategyWeights publishes the current weights to the per-strategy
// gauge.
func SetStrategyWeights(w models.StrategyWeights) {
	StrategyWeight.WithLabelValues("collaborative").Set(w.Collaborative)
	StrategyWeight.WithLabelValues("content").Set(w.Content)
	StrategyWeight.WithLabelValues("domain_specific").Set(w.DomainSpecific)
	StrategyWeight.WithLabelValues("progress").Set(w.Progress)
}
