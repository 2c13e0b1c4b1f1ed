// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package catalog implements the protocol registry.
//
// The catalog loads once at startup (built-in defaults, optionally replaced
// by a YAML file) and is read-mostly afterwards. Each protocol's feature
// embedding is computed once on insert and memoized; upserting a protocol
// invalidates and recomputes only that protocol's embedding.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/feature"
	"github.com/gmaxing/engine/internal/models"
)

// ErrNotFound indicates a protocol id is not in the catalog. Lookups never
// fall back to a default protocol.
var ErrNotFound = errors.New("protocol not found")

// Catalog is the in-memory protocol registry. Safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	protocols  map[string]models.Protocol
	embeddings map[string]feature.Vector
	logger     zerolog.Logger
}

// New creates an empty catalog.
func New(logger zerolog.Logger) *Catalog {
	return &Catalog{
		protocols:  make(map[string]models.Protocol),
		embeddings: make(map[string]feature.Vector),
		logger:     logger.With().Str("component", "catalog").Logger(),
	}
}

// NewWithDefaults creates a catalog preloaded with the built-in GMaxing
// protocol library.
func NewWithDefaults(logger zerolog.Logger) *Catalog {
	c := New(logger)
	for _, p := range defaultProtocols() {
		// Built-in protocols are statically valid.
		if err := c.Upsert(p); err != nil {
			c.logger.Error().Err(err).Str("protocol", p.ID).Msg("invalid built-in protocol")
		}
	}
	return c
}

// LoadFile replaces the catalog contents with protocols from a YAML file.
// The file holds a top-level "protocols" list. On any error the existing
// contents are left untouched.
func (c *Catalog) LoadFile(path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load catalog file: %w", err)
	}

	var protocols []models.Protocol
	if err := k.Unmarshal("protocols", &protocols); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}
	if len(protocols) == 0 {
		return fmt.Errorf("catalog file %s contains no protocols", path)
	}

	for i := range protocols {
		if err := validate(&protocols[i]); err != nil {
			return fmt.Errorf("protocol %d: %w", i, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.protocols = make(map[string]models.Protocol, len(protocols))
	c.embeddings = make(map[string]feature.Vector, len(protocols))
	for i := range protocols {
		p := protocols[i]
		c.protocols[p.ID] = p
		c.embeddings[p.ID] = feature.EncodeProtocol(&p)
	}

	c.logger.Info().Int("protocols", len(protocols)).Str("path", path).Msg("catalog loaded")
	return nil
}

// Upsert inserts or replaces a protocol and recomputes its embedding.
func (c *Catalog) Upsert(p models.Protocol) error {
	if err := validate(&p); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.protocols[p.ID] = p
	c.embeddings[p.ID] = feature.EncodeProtocol(&p)
	return nil
}

// List returns all protocols ordered by id for deterministic iteration.
func (c *Catalog) List() []models.Protocol {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Protocol, 0, len(c.protocols))
	for _, p := range c.protocols {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the protocol with the given id, or ErrNotFound.
func (c *Catalog) Get(id string) (models.Protocol, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.protocols[id]
	if !ok {
		return models.Protocol{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// EmbeddingOf returns the memoized feature embedding for a protocol, or
// ErrNotFound.
func (c *Catalog) EmbeddingOf(id string) (feature.Vector, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.embeddings[id]
	if !ok {
		return feature.Vector{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return v, nil
}

// Len returns the number of protocols in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.protocols)
}

// validate enforces the structural invariants the scoring math assumes.
func validate(p *models.Protocol) error {
	switch {
	case p.ID == "":
		return errors.New("protocol id is required")
	case p.Category.Index() < 0:
		return fmt.Errorf("unknown category %q", p.Category)
	case p.Difficulty.Index() < 0:
		return fmt.Errorf("unknown difficulty %q", p.Difficulty)
	case p.DurationWeeks <= 0:
		return fmt.Errorf("duration_weeks must be positive, got %d", p.DurationWeeks)
	case p.SessionsPerWeek <= 0 || p.SessionsPerWeek > 14:
		return fmt.Errorf("sessions_per_week must be in [1,14], got %d", p.SessionsPerWeek)
	case p.MetabolicDemand.Ordinal() < 0:
		return fmt.Errorf("unknown metabolic_demand %q", p.MetabolicDemand)
	case p.RecoveryRequirement.Ordinal() < 0:
		return fmt.Errorf("unknown recovery_requirement %q", p.RecoveryRequirement)
	}
	return nil
}
