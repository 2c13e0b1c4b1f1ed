// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/feature"
	"github.com/gmaxing/engine/internal/models"
)

func TestNewWithDefaults(t *testing.T) {
	c := NewWithDefaults(zerolog.Nop())

	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}

	for _, p := range c.List() {
		emb, err := c.EmbeddingOf(p.ID)
		if err != nil {
			t.Errorf("EmbeddingOf(%s) error = %v", p.ID, err)
			continue
		}
		if emb.Version != feature.SchemaVersion || len(emb.Values) != feature.Dim {
			t.Errorf("embedding for %s has version %d len %d", p.ID, emb.Version, len(emb.Values))
		}
	}
}

func TestCatalog_Get_NotFound(t *testing.T) {
	c := NewWithDefaults(zerolog.Nop())

	if _, err := c.Get("no-such-protocol"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := c.EmbeddingOf("no-such-protocol"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EmbeddingOf() error = %v, want ErrNotFound", err)
	}
}

func TestCatalog_List_Deterministic(t *testing.T) {
	c := NewWithDefaults(zerolog.Nop())

	a := c.List()
	b := c.List()
	if len(a) != len(b) {
		t.Fatalf("List() lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("List() order differs at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
		if i > 0 && a[i-1].ID >= a[i].ID {
			t.Errorf("List() not sorted: %s before %s", a[i-1].ID, a[i].ID)
		}
	}
}

func TestCatalog_Upsert_RecomputesEmbedding(t *testing.T) {
	c := NewWithDefaults(zerolog.Nop())

	p, err := c.Get("gmx-foundation")
	if err != nil {
		t.Fatal(err)
	}
	before, _ := c.EmbeddingOf(p.ID)

	p.DurationWeeks = 24
	if err := c.Upsert(p); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	after, _ := c.EmbeddingOf(p.ID)
	same := true
	for i := range before.Values {
		if before.Values[i] != after.Values[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("embedding unchanged after protocol mutation")
	}
}

func TestCatalog_Upsert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.Protocol)
	}{
		{"missing id", func(p *models.Protocol) { p.ID = "" }},
		{"unknown category", func(p *models.Protocol) { p.Category = "yoga" }},
		{"unknown difficulty", func(p *models.Protocol) { p.Difficulty = "impossible" }},
		{"zero duration", func(p *models.Protocol) { p.DurationWeeks = 0 }},
		{"excessive frequency", func(p *models.Protocol) { p.SessionsPerWeek = 20 }},
		{"unknown metabolic demand", func(p *models.Protocol) { p.MetabolicDemand = "extreme" }},
		{"unknown recovery requirement", func(p *models.Protocol) { p.RecoveryRequirement = "none" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultProtocols()[0]
			tt.mutate(&p)
			if err := New(zerolog.Nop()).Upsert(p); err == nil {
				t.Error("Upsert() accepted invalid protocol")
			}
		})
	}
}

func TestCatalog_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `protocols:
  - id: custom-strength
    name: Custom Strength
    category: strength
    difficulty: intermediate
    duration_weeks: 10
    sessions_per_week: 3
    required_equipment: [barbell]
    goals: [strength]
    principles: [progressive-overload]
    target_muscles: [full-body]
    metabolic_demand: moderate
    recovery_requirement: standard
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewWithDefaults(zerolog.Nop())
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (file replaces defaults)", c.Len())
	}
	p, err := c.Get("custom-strength")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Category != models.CategoryStrength || p.DurationWeeks != 10 {
		t.Errorf("loaded protocol = %+v", p)
	}
}

func TestCatalog_LoadFile_InvalidKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `protocols:
  - id: broken
    category: nonsense
    difficulty: beginner
    duration_weeks: 8
    sessions_per_week: 3
    metabolic_demand: low
    recovery_requirement: standard
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewWithDefaults(zerolog.Nop())
	before := c.Len()
	if err := c.LoadFile(path); err == nil {
		t.Fatal("LoadFile() accepted invalid catalog")
	}
	if c.Len() != before {
		t.Errorf("Len() = %d after failed load, want %d", c.Len(), before)
	}
}
