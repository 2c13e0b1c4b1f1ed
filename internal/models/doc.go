// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package models defines the shared domain types for the GMaxing engine.
//
// The package is dependency-free by design: every other internal package
// (catalog, feature, feedback, recommend, forecast, api) imports models,
// never the other way around. Types fall into four groups:
//
//   - Protocol types: Protocol and its enumerated attributes (Category,
//     Difficulty, Equipment, Goal, Principle, MetabolicDemand, ...)
//   - Request types: UserProfile, RecommendationContext, SessionRecord
//   - Learning types: UserFeedback, ProtocolPerformanceMetrics,
//     StrategyWeights, UserInsight, LearningSnapshot
//   - Reporting types: ForecastPoint, UserActivity, ChurnRiskEntry
//
// All enumerated attributes use string-typed constants so protocol
// catalogs remain human-editable YAML and API payloads stay readable.
// Ordinal enums (Difficulty, MetabolicDemand, RecoveryRequirement,
// FitnessLevel) expose an Index/Ordinal method for feature encoding.
package models
