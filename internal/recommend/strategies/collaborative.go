// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package strategies

// neutralCollaborative is returned when no neighbor estimate exists. It
// neither promotes nor demotes the protocol.
const neutralCollaborative = 0.5

// Collaborative scores protocols by how similar users rated them. The
// estimator arrives per scoring pass via Input.Neighbors, so every
// protocol of one call reads the same log snapshot.
type Collaborative struct{}

// NewCollaborative creates the collaborative strategy.
func NewCollaborative() *Collaborative {
	return &Collaborative{}
}

// Name returns the strategy identifier.
func (c *Collaborative) Name() string {
	return "collaborative"
}

// Score maps the neighbor rating estimate (1-5) onto [0,1]. Without an
// estimator or an estimate the score is neutral rather than zero, so
// sparse feedback data cannot bury otherwise good protocols.
func (c *Collaborative) Score(in *Input) (float64, error) {
	if in.Neighbors == nil {
		return neutralCollaborative, nil
	}
	rating, ok := in.Neighbors.EstimateRating(in.Profile.ID, in.Protocol.ID)
	if !ok {
		return neutralCollaborative, nil
	}
	score := (rating - 1) / 4
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
