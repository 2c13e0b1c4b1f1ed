// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package feature implements the shared feature-vector encoding for
// protocols and user profiles.
//
// Both sides encode into the same fixed-length, versioned schema so cosine
// similarity between a user and a protocol is always well-defined. Slots
// that only apply to one side (for example protocol duration, or user body
// metrics) are zero on the other side; zero slots simply contribute nothing
// to the dot product.
//
// # Schema v1 layout (33 slots)
//
//	[0,4)   level block: protocol difficulty / user fitness level (one-hot)
//	[4,9)   category block: protocol category (one-hot) / user goal-derived
//	        category affinity
//	[9]     normalized program duration (weeks/24), protocol only
//	[10]    normalized weekly frequency (sessions/7 or user frequency/7)
//	[11,19) equipment flags over the fixed equipment vocabulary
//	[19,25) goal flags over the fixed goal vocabulary
//	[25,29) metabolic block: protocol demand / user ideal demand (one-hot)
//	[29]    age/100, user only
//	[30]    weight/200 (kg), user only
//	[31]    height/250 (cm), user only
//	[32]    available session time/180 (minutes), user only
//
// The slot layout, vocabulary orders and normalization divisors are part of
// the schema; any change requires bumping SchemaVersion. Vectors carry
// their version and similarity between mismatched versions fails with
// ErrSchemaMismatch instead of silently truncating or padding.
package feature
