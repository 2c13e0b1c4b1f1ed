// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package strategies

import "fmt"

// Feasibility penalty factors applied to the raw similarity score. A
// protocol the user cannot actually run should never outrank one they can.
const (
	// EquipmentPenalty applies when required equipment is not fully
	// available.
	EquipmentPenalty = 0.3

	// TimePenalty applies when the estimated session length exceeds the
	// user's available time.
	TimePenalty = 0.5

	// FrequencyPenalty applies when the protocol asks for more weekly
	// sessions than the user trains.
	FrequencyPenalty = 0.7
)

// Content scores protocols by feature-vector similarity to the user,
// scaled down by feasibility penalties.
type Content struct{}

// NewContent creates the content-similarity strategy.
func NewContent() *Content {
	return &Content{}
}

// Name returns the strategy identifier.
func (c *Content) Name() string {
	return "content"
}

// Score computes cosine similarity between the user and protocol vectors,
// clamps it to [0,1], then applies the feasibility penalties.
func (c *Content) Score(in *Input) (float64, error) {
	sim, err := in.ProfileVector.Cosine(in.ProtocolVector)
	if err != nil {
		return 0, fmt.Errorf("content similarity: %w", err)
	}
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}

	if !in.Profile.HasAllEquipment(in.Protocol.RequiredEquipment) {
		sim *= EquipmentPenalty
	}
	if in.Profile.AvailableTimeMinutes > 0 &&
		in.Protocol.EstimatedSessionMinutes() > float64(in.Profile.AvailableTimeMinutes) {
		sim *= TimePenalty
	}
	if in.Profile.WeeklyFrequency > 0 &&
		in.Protocol.SessionsPerWeek > in.Profile.WeeklyFrequency {
		sim *= FrequencyPenalty
	}
	return sim, nil
}
