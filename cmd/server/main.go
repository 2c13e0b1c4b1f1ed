// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package main is the entry point for the GMaxing recommendation engine.
//
// The engine serves ranked training-protocol recommendations over HTTP,
// records post-protocol feedback, adapts scoring weights from outcomes,
// and exposes satisfaction prediction, series forecasting and churn-risk
// scoring.
//
// # Startup order
//
//  1. Configuration: koanf layered defaults, YAML file, environment
//  2. Logging: zerolog initialized from config
//  3. Protocol catalog: bundled defaults or CATALOG file
//  4. Feedback journal: BadgerDB append-only log, replayed into memory
//  5. Engine: four scoring strategies plus learned collaborators
//  6. Supervisor tree: HTTP server and weight-adaptation loop
//
// # Configuration
//
// Configuration layers, highest priority last:
//   - Built-in defaults
//   - YAML file (CONFIG_PATH, ./config.yaml, or /etc/gmaxing/config.yaml)
//   - Environment variables with the GMAXING_ prefix, "__" nesting
//     (GMAXING_SERVER__PORT=9000 sets server.port)
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections, in-flight requests drain within the shutdown
// timeout, and the journal pipeline flushes before exit.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gmaxing/engine/internal/api"
	"github.com/gmaxing/engine/internal/catalog"
	"github.com/gmaxing/engine/internal/config"
	"github.com/gmaxing/engine/internal/feedback"
	"github.com/gmaxing/engine/internal/feedback/journal"
	"github.com/gmaxing/engine/internal/logging"
	"github.com/gmaxing/engine/internal/metrics"
	"github.com/gmaxing/engine/internal/models"
	"github.com/gmaxing/engine/internal/recommend"
	"github.com/gmaxing/engine/internal/supervisor"
	"github.com/gmaxing/engine/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("journal", cfg.Feedback.JournalEnabled).
		Int("retention", cfg.Feedback.Retention).
		Msg("Starting GMaxing engine")

	// Protocol catalog: bundled defaults unless a file is configured.
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		cat = catalog.New(logger)
		if err := cat.LoadFile(cfg.Catalog.Path); err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
		}
		logging.Info().Str("path", cfg.Catalog.Path).Int("protocols", cat.Len()).Msg("Catalog loaded")
	} else {
		cat = catalog.NewWithDefaults(logger)
		logging.Info().Int("protocols", cat.Len()).Msg("Using bundled protocol catalog")
	}

	// Feedback journal: durable Badger log behind an async pipeline, or a
	// no-op when persistence is disabled.
	var jnl journal.Journal = journal.Nop{}
	if cfg.Feedback.JournalEnabled {
		badger, err := journal.OpenBadger(cfg.Feedback.JournalPath, logger)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Feedback.JournalPath).Msg("Failed to open feedback journal")
		}
		jnl = badger
	}

	pipeline, err := journal.NewPipeline(jnl, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to start journal pipeline")
	}

	store := feedback.NewStore(cfg.Feedback.Retention, logger, feedback.WithSink(pipeline))

	// Replay journaled feedback into the in-memory log before serving.
	replayed := 0
	if err := jnl.Replay(context.Background(), func(fb models.UserFeedback) error {
		if rerr := store.Restore(fb); rerr != nil {
			logging.Warn().Err(rerr).Str("user_id", fb.UserID).Msg("Skipping invalid journal entry")
			return nil
		}
		replayed++
		return nil
	}); err != nil {
		logging.Fatal().Err(err).Msg("Failed to replay feedback journal")
	}
	if replayed > 0 {
		logging.Info().Int("entries", replayed).Msg("Feedback journal replayed")
	}
	metrics.FeedbackLogSize.Set(float64(store.TotalFeedbacks()))

	personalization := feedback.NewPersonalization(store)
	neighbors := feedback.NewNeighbors(store, cfg.Engine.NeighborK)

	engine, err := recommend.New(&cfg.Engine, cat, logger,
		recommend.WithFeedbackSource(store),
		recommend.WithPersonalization(personalization),
		recommend.WithNeighbors(neighbors),
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}
	metrics.SetStrategyWeights(engine.Weights())

	handlers := api.NewHandlers(engine, cat, store, personalization, logger)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handlers, cfg.Server),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddLearningService(services.NewWeightAdaptationService(engine, cfg.Engine.Adaptation.Interval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	// Flush buffered feedback to the journal; the pipeline closes the
	// journal once drained.
	if err := pipeline.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing journal pipeline")
	}

	logging.Info().Msg("Engine stopped gracefully")
}
