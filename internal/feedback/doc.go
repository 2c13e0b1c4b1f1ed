// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package feedback implements the append-only feedback log and everything
// derived from it.
//
// The log is the single source of truth for all learning state. Aggregate
// protocol metrics, personalization factors and neighbor estimates are pure
// functions of the log's current contents and are recomputed, never
// incrementally patched, so they stay idempotent and replayable.
//
//   - Store: validated append-only log with a retention cap and full
//     per-protocol metric recomputation on every write
//   - Personalization: per-user multiplicative adjustment factors
//   - Neighbors: user-based collaborative rating estimates
//   - journal subpackage: durable BadgerDB journal fed through an
//     asynchronous watermill pipeline, replayed on startup
//
// # Concurrency
//
// Writes (Record) serialize behind the store's write lock together with
// their dependent metric recomputation, so concurrent records never produce
// torn aggregates. Reads take the read lock and copy, so scoring operates
// on a consistent snapshot. Durable journal writes happen on a separate
// consumer goroutine and never block Record.
package feedback
