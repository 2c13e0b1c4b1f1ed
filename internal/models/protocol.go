// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package models

// Category classifies a training protocol by its primary adaptation target.
type Category string

const (
	CategoryStrength     Category = "strength"
	CategoryHypertrophy  Category = "hypertrophy"
	CategoryFatLoss      Category = "fat-loss"
	CategoryPowerlifting Category = "powerlifting"
	CategoryConditioning Category = "conditioning"
)

// Categories lists all protocol categories in canonical encoding order.
// The order is part of the feature schema and must not change without
// bumping feature.SchemaVersion.
var Categories = []Category{
	CategoryStrength,
	CategoryHypertrophy,
	CategoryFatLoss,
	CategoryPowerlifting,
	CategoryConditioning,
}

// Index returns the category's position in the canonical ordering, or -1
// for an unknown category.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// categoryBaseMinutes is the typical session length per category before
// difficulty scaling.
var categoryBaseMinutes = map[Category]float64{
	CategoryStrength:     60,
	CategoryHypertrophy:  75,
	CategoryFatLoss:      45,
	CategoryPowerlifting: 90,
	CategoryConditioning: 30,
}

// Difficulty grades how demanding a protocol is to execute.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Difficulties lists all difficulty grades in canonical encoding order.
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// Index returns the difficulty's position in the canonical ordering, or -1.
func (d Difficulty) Index() int {
	for i, diff := range Difficulties {
		if diff == d {
			return i
		}
	}
	return -1
}

// TimeMultiplier returns the session-duration scaling factor for the
// difficulty grade. Harder protocols take longer per session.
func (d Difficulty) TimeMultiplier() float64 {
	switch d {
	case DifficultyBeginner:
		return 0.8
	case DifficultyIntermediate:
		return 1.0
	case DifficultyAdvanced:
		return 1.2
	case DifficultyExpert:
		return 1.4
	default:
		return 1.0
	}
}

// Equipment identifies a piece of training equipment.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBands      Equipment = "bands"
	EquipmentBench      Equipment = "bench"
	EquipmentBodyweight Equipment = "bodyweight"
)

// EquipmentVocabulary is the fixed equipment vocabulary used for feature
// encoding. Order matters (see feature package).
var EquipmentVocabulary = []Equipment{
	EquipmentBarbell,
	EquipmentDumbbell,
	EquipmentKettlebell,
	EquipmentMachine,
	EquipmentCable,
	EquipmentBands,
	EquipmentBench,
	EquipmentBodyweight,
}

// Goal is a training outcome a user pursues or a protocol targets.
type Goal string

const (
	GoalStrength       Goal = "strength"
	GoalMuscleGain     Goal = "muscle-gain"
	GoalFatLoss        Goal = "fat-loss"
	GoalEndurance      Goal = "endurance"
	GoalMobility       Goal = "mobility"
	GoalGeneralFitness Goal = "general-fitness"
)

// GoalVocabulary is the fixed goal vocabulary used for feature encoding.
var GoalVocabulary = []Goal{
	GoalStrength,
	GoalMuscleGain,
	GoalFatLoss,
	GoalEndurance,
	GoalMobility,
	GoalGeneralFitness,
}

// Principle tags a protocol with a GMaxing programming principle.
type Principle string

const (
	PrincipleGeneticOptimization Principle = "genetic-optimization"
	PrincipleProgressiveOverload Principle = "progressive-overload"
	PrincipleCompoundFocus       Principle = "compound-focus"
	PrincipleVariety             Principle = "variety"
	PrincipleAutoregulation      Principle = "autoregulation"
	PrincipleRecoveryFocus       Principle = "recovery-focus"
)

// MuscleGroup identifies a trained muscle region.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleArms      MuscleGroup = "arms"
	MuscleCore      MuscleGroup = "core"
	MuscleFullBody  MuscleGroup = "full-body"
)

// MetabolicDemand grades the systemic fatigue cost of a protocol.
type MetabolicDemand string

const (
	MetabolicLow      MetabolicDemand = "low"
	MetabolicModerate MetabolicDemand = "moderate"
	MetabolicHigh     MetabolicDemand = "high"
	MetabolicVeryHigh MetabolicDemand = "very-high"
)

// MetabolicDemands lists demand grades in ascending ordinal order.
var MetabolicDemands = []MetabolicDemand{
	MetabolicLow,
	MetabolicModerate,
	MetabolicHigh,
	MetabolicVeryHigh,
}

// Ordinal returns the demand level as an integer (0=low .. 3=very-high),
// or -1 for an unknown value.
func (m MetabolicDemand) Ordinal() int {
	for i, d := range MetabolicDemands {
		if d == m {
			return i
		}
	}
	return -1
}

// RecoveryRequirement grades how much recovery capacity a protocol assumes.
type RecoveryRequirement string

const (
	RecoveryStandard RecoveryRequirement = "standard"
	RecoveryElevated RecoveryRequirement = "elevated"
	RecoveryHigh     RecoveryRequirement = "high"
)

// Ordinal returns the recovery level as an integer (0=standard .. 2=high),
// or -1 for an unknown value.
func (r RecoveryRequirement) Ordinal() int {
	switch r {
	case RecoveryStandard:
		return 0
	case RecoveryElevated:
		return 1
	case RecoveryHigh:
		return 2
	default:
		return -1
	}
}

// Protocol is a structured training program. Protocols are immutable after
// catalog load; the catalog owns the only authoritative copies.
type Protocol struct {
	ID                  string              `json:"id" koanf:"id"`
	Name                string              `json:"name" koanf:"name"`
	Category            Category            `json:"category" koanf:"category"`
	Difficulty          Difficulty          `json:"difficulty" koanf:"difficulty"`
	DurationWeeks       int                 `json:"duration_weeks" koanf:"duration_weeks"`
	SessionsPerWeek     int                 `json:"sessions_per_week" koanf:"sessions_per_week"`
	RequiredEquipment   []Equipment         `json:"required_equipment" koanf:"required_equipment"`
	Goals               []Goal              `json:"goals" koanf:"goals"`
	Principles          []Principle         `json:"principles" koanf:"principles"`
	TargetMuscles       []MuscleGroup       `json:"target_muscles" koanf:"target_muscles"`
	MetabolicDemand     MetabolicDemand     `json:"metabolic_demand" koanf:"metabolic_demand"`
	RecoveryRequirement RecoveryRequirement `json:"recovery_requirement" koanf:"recovery_requirement"`
}

// EstimatedSessionMinutes returns the expected session length: the
// category's base time scaled by the difficulty multiplier.
func (p *Protocol) EstimatedSessionMinutes() float64 {
	base, ok := categoryBaseMinutes[p.Category]
	if !ok {
		base = 60
	}
	return base * p.Difficulty.TimeMultiplier()
}

// HasPrinciple reports whether the protocol is tagged with the principle.
func (p *Protocol) HasPrinciple(principle Principle) bool {
	for _, pr := range p.Principles {
		if pr == principle {
			return true
		}
	}
	return false
}

// HasGoal reports whether the protocol targets the goal.
func (p *Protocol) HasGoal(goal Goal) bool {
	for _, g := range p.Goals {
		if g == goal {
			return true
		}
	}
	return false
}
