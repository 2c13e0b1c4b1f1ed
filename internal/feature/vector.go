// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package feature

import (
	"errors"
	"fmt"
	"math"
)

// SchemaVersion identifies the current encoding scheme. Bump whenever the
// slot layout, vocabularies or normalization divisors change.
const SchemaVersion = 1

// Dim is the vector length of the current schema.
const Dim = 33

// ErrSchemaMismatch indicates two vectors were produced by different
// encoding schemes. Similarity math over mismatched vectors would be
// silently corrupt, so callers must treat this as a hard failure.
var ErrSchemaMismatch = errors.New("feature vector schema mismatch")

// Vector is a fixed-length numeric encoding of a protocol or user profile.
type Vector struct {
	Version int       `json:"version"`
	Values  []float64 `json:"values"`
}

// newVector allocates a zeroed vector of the current schema.
func newVector() Vector {
	return Vector{Version: SchemaVersion, Values: make([]float64, Dim)}
}

// Cosine returns the cosine similarity between two vectors in [-1,1].
// Returns ErrSchemaMismatch if the vectors were encoded under different
// schema versions or have inconsistent lengths.
func (v Vector) Cosine(other Vector) (float64, error) {
	if v.Version != other.Version {
		return 0, fmt.Errorf("%w: %d vs %d", ErrSchemaMismatch, v.Version, other.Version)
	}
	if len(v.Values) != len(other.Values) {
		return 0, fmt.Errorf("%w: length %d vs %d", ErrSchemaMismatch, len(v.Values), len(other.Values))
	}

	var dot, normA, normB float64
	for i := range v.Values {
		dot += v.Values[i] * other.Values[i]
		normA += v.Values[i] * v.Values[i]
		normB += other.Values[i] * other.Values[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
