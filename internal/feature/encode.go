// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package feature

import (
	"github.com/gmaxing/engine/internal/models"
)

// Slot offsets of the v1 schema. See package doc for the full layout.
const (
	levelOffset     = 0
	categoryOffset  = 4
	durationSlot    = 9
	frequencySlot   = 10
	equipmentOffset = 11
	goalOffset      = 19
	metabolicOffset = 25
	ageSlot         = 29
	weightSlot      = 30
	heightSlot      = 31
	timeSlot        = 32
)

// Normalization divisors. A 24-week program, 7 sessions/week and a
// 180-minute time budget all map to 1.0.
const (
	maxDurationWeeks  = 24.0
	maxWeeklySessions = 7.0
	maxSessionMinutes = 180.0
)

// goalCategoryAffinity maps each user goal to the protocol categories that
// serve it, used to fill the category block on the user side.
var goalCategoryAffinity = map[models.Goal][]models.Category{
	models.GoalStrength:       {models.CategoryStrength, models.CategoryPowerlifting},
	models.GoalMuscleGain:     {models.CategoryHypertrophy},
	models.GoalFatLoss:        {models.CategoryFatLoss, models.CategoryConditioning},
	models.GoalEndurance:      {models.CategoryConditioning},
	models.GoalMobility:       {models.CategoryConditioning},
	models.GoalGeneralFitness: {models.CategoryStrength, models.CategoryConditioning},
}

// EncodeProtocol builds a protocol's feature embedding under the current
// schema. Deterministic: the same protocol always encodes identically.
func EncodeProtocol(p *models.Protocol) Vector {
	v := newVector()

	if i := p.Difficulty.Index(); i >= 0 {
		v.Values[levelOffset+i] = 1
	}
	if i := p.Category.Index(); i >= 0 {
		v.Values[categoryOffset+i] = 1
	}

	v.Values[durationSlot] = float64(p.DurationWeeks) / maxDurationWeeks
	v.Values[frequencySlot] = float64(p.SessionsPerWeek) / maxWeeklySessions

	for i, eq := range models.EquipmentVocabulary {
		for _, req := range p.RequiredEquipment {
			if req == eq {
				v.Values[equipmentOffset+i] = 1
				break
			}
		}
	}
	for i, goal := range models.GoalVocabulary {
		if p.HasGoal(goal) {
			v.Values[goalOffset+i] = 1
		}
	}

	if i := p.MetabolicDemand.Ordinal(); i >= 0 {
		v.Values[metabolicOffset+i] = 1
	}

	return v
}

// EncodeProfile builds a user profile's feature vector under the current
// schema, comparable against protocol embeddings.
func EncodeProfile(u *models.UserProfile) Vector {
	v := newVector()

	if i := u.FitnessLevel.Index(); i >= 0 {
		v.Values[levelOffset+i] = 1
	}

	for _, goal := range u.Goals {
		for _, cat := range goalCategoryAffinity[goal] {
			if i := cat.Index(); i >= 0 {
				v.Values[categoryOffset+i] = 1
			}
		}
	}

	v.Values[frequencySlot] = float64(u.WeeklyFrequency) / maxWeeklySessions

	for i, eq := range models.EquipmentVocabulary {
		if u.HasEquipment(eq) {
			v.Values[equipmentOffset+i] = 1
		}
	}
	for i, goal := range models.GoalVocabulary {
		for _, ug := range u.Goals {
			if ug == goal {
				v.Values[goalOffset+i] = 1
				break
			}
		}
	}

	if i := IdealMetabolicOrdinal(u); i >= 0 {
		v.Values[metabolicOffset+i] = 1
	}

	v.Values[ageSlot] = float64(u.Age) / 100.0
	v.Values[weightSlot] = u.WeightKG / 200.0
	v.Values[heightSlot] = u.HeightCM / 250.0
	v.Values[timeSlot] = float64(u.AvailableTimeMinutes) / maxSessionMinutes

	return v
}

// IdealMetabolicOrdinal derives the metabolic demand level that best suits
// the profile, as an ordinal into models.MetabolicDemands. Starts at
// moderate, shifts up for fat-loss/endurance goals and high training
// frequency, down past age 50.
func IdealMetabolicOrdinal(u *models.UserProfile) int {
	ideal := models.MetabolicModerate.Ordinal()
	for _, g := range u.Goals {
		if g == models.GoalFatLoss || g == models.GoalEndurance {
			ideal++
			break
		}
	}
	if u.WeeklyFrequency >= 5 {
		ideal++
	}
	if u.Age > 50 {
		ideal--
	}
	return clampOrdinal(ideal, len(models.MetabolicDemands)-1)
}

// IdealRecoveryOrdinal derives the recovery requirement level the profile
// can support, as an ordinal (0=standard .. 2=high). Older lifters and
// high-frequency schedules need protocols built around more recovery.
func IdealRecoveryOrdinal(u *models.UserProfile) int {
	ideal := models.RecoveryStandard.Ordinal()
	if u.Age >= 45 {
		ideal++
	}
	if u.WeeklyFrequency >= 5 {
		ideal++
	}
	return clampOrdinal(ideal, models.RecoveryHigh.Ordinal())
}

func clampOrdinal(v, maxOrdinal int) int {
	if v < 0 {
		return 0
	}
	if v > maxOrdinal {
		return maxOrdinal
	}
	return v
}
