// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package models

import "time"

// FitnessLevel grades a user's training experience.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
	FitnessElite        FitnessLevel = "elite"
)

// FitnessLevels lists fitness levels in canonical encoding order. The
// ordering is aligned with Difficulties so level index N corresponds to
// difficulty index N for matching purposes.
var FitnessLevels = []FitnessLevel{
	FitnessBeginner,
	FitnessIntermediate,
	FitnessAdvanced,
	FitnessElite,
}

// Index returns the level's position in the canonical ordering, or -1.
func (f FitnessLevel) Index() int {
	for i, lvl := range FitnessLevels {
		if lvl == f {
			return i
		}
	}
	return -1
}

// UserProfile describes the user a recommendation is computed for. Profiles
// are supplied per request; the engine never persists them beyond the
// current scoring call.
type UserProfile struct {
	ID                   string       `json:"id" validate:"required"`
	Age                  int          `json:"age" validate:"omitempty,min=13,max=120"`
	WeightKG             float64      `json:"weight_kg" validate:"omitempty,min=20,max=400"`
	HeightCM             float64      `json:"height_cm" validate:"omitempty,min=100,max=250"`
	FitnessLevel         FitnessLevel `json:"fitness_level" validate:"required"`
	Goals                []Goal       `json:"goals" validate:"required,min=1"`
	Equipment            []Equipment  `json:"equipment"`
	AvailableTimeMinutes int          `json:"available_time_minutes" validate:"omitempty,min=10,max=360"`
	WeeklyFrequency      int          `json:"weekly_frequency" validate:"omitempty,min=1,max=14"`
	MedicalConditions    []string     `json:"medical_conditions,omitempty"`
}

// HasEquipment reports whether the user has access to the equipment.
// Bodyweight is always available.
func (u *UserProfile) HasEquipment(eq Equipment) bool {
	if eq == EquipmentBodyweight {
		return true
	}
	for _, e := range u.Equipment {
		if e == eq {
			return true
		}
	}
	return false
}

// HasAllEquipment reports whether every required piece is available.
func (u *UserProfile) HasAllEquipment(required []Equipment) bool {
	for _, eq := range required {
		if !u.HasEquipment(eq) {
			return false
		}
	}
	return true
}

// GoalOverlap returns the fraction of the protocol's goals the user shares,
// in [0,1]. A protocol with no goals overlaps nothing.
func (u *UserProfile) GoalOverlap(goals []Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	shared := 0
	for _, g := range goals {
		for _, ug := range u.Goals {
			if g == ug {
				shared++
				break
			}
		}
	}
	return float64(shared) / float64(len(goals))
}

// SessionRecord is one completed (or attempted) training session, used for
// progress-trend classification. Records are ordered most-recent-last.
type SessionRecord struct {
	Date             time.Time `json:"date"`
	ProtocolID       string    `json:"protocol_id,omitempty"`
	PerformanceScore float64   `json:"performance_score" validate:"min=0,max=1"`
	DurationMinutes  int       `json:"duration_minutes,omitempty"`
	Completed        bool      `json:"completed"`
}

// ProgressSnapshot summarizes a user's current training block. Its presence
// alone is a progress-alignment signal; the fields refine reasons.
type ProgressSnapshot struct {
	TotalSessions   int     `json:"total_sessions"`
	AdherenceRate   float64 `json:"adherence_rate"`
	StrengthGainPct float64 `json:"strength_gain_pct"`
}

// RecommendationContext wraps everything the scoring engine needs for one
// request. It is transient and never stored.
type RecommendationContext struct {
	Profile         UserProfile       `json:"profile" validate:"required"`
	CurrentProgress *ProgressSnapshot `json:"current_progress,omitempty"`
	RecentSessions  []SessionRecord   `json:"recent_sessions,omitempty" validate:"dive"`
}
