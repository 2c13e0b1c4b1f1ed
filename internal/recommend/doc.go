// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package recommend implements the hybrid protocol-recommendation engine.
//
// The engine blends four scoring strategies (content similarity,
// collaborative estimate, domain compatibility, progress adjustment) into
// one ranked, explained list. Strategy weights are live: the weight
// adapter retunes them from aggregate feedback while keeping each inside
// its clamp range, so no strategy can dominate or vanish.
//
// Scoring is a pure function of the catalog, the request context and a
// snapshot of the current weights: concurrent feedback recording never
// mutates state mid-scoring. Learning data is consumed through the
// FeedbackSource and PersonalizationSource interfaces to keep this package
// free of storage concerns.
package recommend
