// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package catalog

import "github.com/gmaxing/engine/internal/models"

// defaultProtocols returns the built-in GMaxing protocol library, used when
// no catalog file is configured.
func defaultProtocols() []models.Protocol {
	return []models.Protocol{
		{
			ID:              "gmx-foundation",
			Name:            "GMaxing Foundation",
			Category:        models.CategoryStrength,
			Difficulty:      models.DifficultyBeginner,
			DurationWeeks:   8,
			SessionsPerWeek: 3,
			RequiredEquipment: []models.Equipment{
				models.EquipmentBarbell, models.EquipmentBench,
			},
			Goals: []models.Goal{
				models.GoalStrength, models.GoalGeneralFitness,
			},
			Principles: []models.Principle{
				models.PrincipleProgressiveOverload, models.PrincipleCompoundFocus,
			},
			TargetMuscles:       []models.MuscleGroup{models.MuscleFullBody},
			MetabolicDemand:     models.MetabolicModerate,
			RecoveryRequirement: models.RecoveryStandard,
		},
		{
			ID:              "gmx-strength-block",
			Name:            "Strength Block",
			Category:        models.CategoryStrength,
			Difficulty:      models.DifficultyIntermediate,
			DurationWeeks:   12,
			SessionsPerWeek: 4,
			RequiredEquipment: []models.Equipment{
				models.EquipmentBarbell, models.EquipmentBench, models.EquipmentMachine,
			},
			Goals: []models.Goal{models.GoalStrength},
			Principles: []models.Principle{
				models.PrincipleProgressiveOverload,
				models.PrincipleCompoundFocus,
				models.PrincipleGeneticOptimization,
			},
			TargetMuscles: []models.MuscleGroup{
				models.MuscleLegs, models.MuscleBack, models.MuscleChest,
			},
			MetabolicDemand:     models.MetabolicModerate,
			RecoveryRequirement: models.RecoveryElevated,
		},
		{
			ID:              "gmx-hypertrophy-volume",
			Name:            "Hypertrophy Volume Phase",
			Category:        models.CategoryHypertrophy,
			Difficulty:      models.DifficultyIntermediate,
			DurationWeeks:   10,
			SessionsPerWeek: 5,
			RequiredEquipment: []models.Equipment{
				models.EquipmentBarbell, models.EquipmentDumbbell,
				models.EquipmentCable, models.EquipmentMachine,
			},
			Goals: []models.Goal{models.GoalMuscleGain},
			Principles: []models.Principle{
				models.PrincipleProgressiveOverload,
				models.PrincipleVariety,
				models.PrincipleGeneticOptimization,
			},
			TargetMuscles: []models.MuscleGroup{
				models.MuscleChest, models.MuscleBack, models.MuscleArms,
				models.MuscleShoulders, models.MuscleLegs,
			},
			MetabolicDemand:     models.MetabolicHigh,
			RecoveryRequirement: models.RecoveryHigh,
		},
		{
			ID:              "gmx-cut-engine",
			Name:            "Cut Engine",
			Category:        models.CategoryFatLoss,
			Difficulty:      models.DifficultyBeginner,
			DurationWeeks:   6,
			SessionsPerWeek: 4,
			RequiredEquipment: []models.Equipment{
				models.EquipmentDumbbell, models.EquipmentBodyweight,
			},
			Goals: []models.Goal{
				models.GoalFatLoss, models.GoalGeneralFitness,
			},
			Principles: []models.Principle{
				models.PrincipleVariety, models.PrincipleAutoregulation,
			},
			TargetMuscles:       []models.MuscleGroup{models.MuscleFullBody},
			MetabolicDemand:     models.MetabolicVeryHigh,
			RecoveryRequirement: models.RecoveryStandard,
		},
		{
			ID:              "gmx-powerlifting-peak",
			Name:            "Powerlifting Peaking Cycle",
			Category:        models.CategoryPowerlifting,
			Difficulty:      models.DifficultyAdvanced,
			DurationWeeks:   16,
			SessionsPerWeek: 4,
			RequiredEquipment: []models.Equipment{
				models.EquipmentBarbell, models.EquipmentBench,
			},
			Goals: []models.Goal{models.GoalStrength},
			Principles: []models.Principle{
				models.PrincipleProgressiveOverload,
				models.PrincipleCompoundFocus,
				models.PrincipleAutoregulation,
			},
			TargetMuscles: []models.MuscleGroup{
				models.MuscleLegs, models.MuscleBack, models.MuscleChest,
			},
			MetabolicDemand:     models.MetabolicModerate,
			RecoveryRequirement: models.RecoveryHigh,
		},
		{
			ID:              "gmx-conditioning-circuit",
			Name:            "Conditioning Circuits",
			Category:        models.CategoryConditioning,
			Difficulty:      models.DifficultyBeginner,
			DurationWeeks:   6,
			SessionsPerWeek: 3,
			RequiredEquipment: []models.Equipment{
				models.EquipmentKettlebell, models.EquipmentBodyweight,
			},
			Goals: []models.Goal{
				models.GoalEndurance, models.GoalFatLoss,
			},
			Principles: []models.Principle{
				models.PrincipleVariety, models.PrincipleRecoveryFocus,
			},
			TargetMuscles:       []models.MuscleGroup{models.MuscleFullBody, models.MuscleCore},
			MetabolicDemand:     models.MetabolicVeryHigh,
			RecoveryRequirement: models.RecoveryStandard,
		},
		{
			ID:              "gmx-elite-gmax",
			Name:            "Elite GMax Protocol",
			Category:        models.CategoryHypertrophy,
			Difficulty:      models.DifficultyExpert,
			DurationWeeks:   20,
			SessionsPerWeek: 6,
			RequiredEquipment: []models.Equipment{
				models.EquipmentBarbell, models.EquipmentDumbbell,
				models.EquipmentCable, models.EquipmentMachine, models.EquipmentBench,
			},
			Goals: []models.Goal{
				models.GoalMuscleGain, models.GoalStrength,
			},
			Principles: []models.Principle{
				models.PrincipleGeneticOptimization,
				models.PrincipleProgressiveOverload,
				models.PrincipleCompoundFocus,
				models.PrincipleAutoregulation,
			},
			TargetMuscles: []models.MuscleGroup{
				models.MuscleChest, models.MuscleBack, models.MuscleLegs,
				models.MuscleShoulders, models.MuscleArms,
			},
			MetabolicDemand:     models.MetabolicHigh,
			RecoveryRequirement: models.RecoveryHigh,
		},
		{
			ID:              "gmx-reset-deload",
			Name:            "Reset & Deload",
			Category:        models.CategoryConditioning,
			Difficulty:      models.DifficultyIntermediate,
			DurationWeeks:   4,
			SessionsPerWeek: 3,
			RequiredEquipment: []models.Equipment{
				models.EquipmentBodyweight, models.EquipmentBands,
			},
			Goals: []models.Goal{
				models.GoalMobility, models.GoalGeneralFitness,
			},
			Principles: []models.Principle{
				models.PrincipleRecoveryFocus, models.PrincipleVariety,
			},
			TargetMuscles:       []models.MuscleGroup{models.MuscleFullBody, models.MuscleCore},
			MetabolicDemand:     models.MetabolicLow,
			RecoveryRequirement: models.RecoveryHigh,
		},
	}
}
