// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package config loads layered application configuration: built-in
// defaults, then an optional YAML file, then environment variables, each
// layer overriding the previous one.
package config

import (
	"fmt"
	"time"

	"github.com/gmaxing/engine/internal/feedback"
	"github.com/gmaxing/engine/internal/logging"
	"github.com/gmaxing/engine/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig     `koanf:"server"`
	Logging  logging.Config   `koanf:"logging"`
	Catalog  CatalogConfig    `koanf:"catalog"`
	Feedback FeedbackConfig   `koanf:"feedback"`
	Engine   recommend.Config `koanf:"engine"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimit is requests per minute per client IP; zero disables
	// rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// CORSOrigins lists allowed origins. Empty disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig configures protocol catalog loading.
type CatalogConfig struct {
	// Path is an optional YAML protocol catalog. Empty uses the built-in
	// default protocols.
	Path string `koanf:"path"`
}

// FeedbackConfig configures the feedback store and its durable journal.
type FeedbackConfig struct {
	// Retention caps the in-memory feedback log.
	Retention int `koanf:"retention"`

	// JournalEnabled turns on the durable badger journal with
	// replay-on-start.
	JournalEnabled bool `koanf:"journal_enabled"`

	// JournalPath is the badger directory.
	JournalPath string `koanf:"journal_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       300,
		},
		Logging: logging.DefaultConfig(),
		Feedback: FeedbackConfig{
			Retention:      feedback.DefaultRetention,
			JournalEnabled: true,
			JournalPath:    "/data/gmaxing/journal",
		},
		Engine: *recommend.DefaultConfig(),
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Feedback.Retention <= 0 {
		return fmt.Errorf("feedback.retention must be positive, got %d", c.Feedback.Retention)
	}
	if c.Feedback.JournalEnabled && c.Feedback.JournalPath == "" {
		return fmt.Errorf("feedback.journal_path is required when the journal is enabled")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
