// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package feedback

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/models"
	"github.com/gmaxing/engine/internal/validation"
)

// ErrValidation indicates a feedback entry failed range validation. The log
// never contains out-of-range values; aggregation has no downstream bounds
// checking.
var ErrValidation = errors.New("invalid feedback")

// DefaultRetention is the default feedback log ceiling. Once exceeded, the
// oldest entries are evicted.
const DefaultRetention = 10000

// Sink receives recorded entries for asynchronous durable persistence.
// Implementations must not block; Record treats the sink as fire-and-forget.
type Sink interface {
	Enqueue(fb models.UserFeedback)
}

// Store is the in-memory feedback log plus derived per-protocol aggregate
// metrics. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	entries   []models.UserFeedback
	metrics   map[string]models.ProtocolPerformanceMetrics
	retention int

	sink   Sink
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithSink attaches an asynchronous persistence sink.
func WithSink(sink Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a feedback store with the given retention cap.
// A non-positive retention falls back to DefaultRetention.
func NewStore(retention int, logger zerolog.Logger, opts ...Option) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	s := &Store{
		metrics:   make(map[string]models.ProtocolPerformanceMetrics),
		retention: retention,
		logger:    logger.With().Str("component", "feedback").Logger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record validates and appends a feedback entry, recomputes the affected
// protocol aggregates, and hands the entry to the persistence sink. The
// sink call is fire-and-forget; Record never blocks on durable storage.
func (s *Store) Record(fb models.UserFeedback) error {
	if err := s.append(fb); err != nil {
		return err
	}
	if s.sink != nil {
		s.sink.Enqueue(fb)
	}
	return nil
}

// Restore appends an entry without notifying the sink. Used when replaying
// the durable journal at startup.
func (s *Store) Restore(fb models.UserFeedback) error {
	return s.append(fb)
}

func (s *Store) append(fb models.UserFeedback) error {
	if verr := validation.ValidateStruct(&fb); verr != nil {
		return fmt.Errorf("%w: %s", ErrValidation, verr.Error())
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, fb)

	// Eviction changes other protocols' aggregates too, so collect every
	// protocol touched before recomputing.
	affected := map[string]struct{}{fb.ProtocolID: {}}
	if over := len(s.entries) - s.retention; over > 0 {
		for _, evicted := range s.entries[:over] {
			affected[evicted.ProtocolID] = struct{}{}
		}
		kept := make([]models.UserFeedback, s.retention)
		copy(kept, s.entries[over:])
		s.entries = kept
		s.logger.Debug().Int("evicted", over).Msg("feedback retention cap reached")
	}

	for id := range affected {
		s.recomputeLocked(id)
	}
	return nil
}

// recomputeLocked fully re-derives one protocol's aggregates from the log.
// Must be called with mu held. A pure re-derivation, never a running-average
// update, so eviction cannot introduce drift.
func (s *Store) recomputeLocked(protocolID string) {
	var (
		count         int
		ratingSum     float64
		completed     int
		effectiveness float64
	)
	for i := range s.entries {
		if s.entries[i].ProtocolID != protocolID {
			continue
		}
		count++
		ratingSum += float64(s.entries[i].Rating)
		effectiveness += float64(s.entries[i].Effectiveness)
		if s.entries[i].Completed {
			completed++
		}
	}

	if count == 0 {
		delete(s.metrics, protocolID)
		return
	}

	s.metrics[protocolID] = models.ProtocolPerformanceMetrics{
		ProtocolID:         protocolID,
		AvgRating:          ratingSum / float64(count),
		CompletionRate:     float64(completed) / float64(count),
		EffectivenessScore: effectiveness / float64(count),
		TotalFeedbacks:     count,
	}
}

// MetricsOf returns the aggregate metrics for a protocol. The second return
// is false when the log holds no feedback for it.
func (s *Store) MetricsOf(protocolID string) (models.ProtocolPerformanceMetrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.metrics[protocolID]
	return m, ok
}

// AllMetrics returns aggregates for every protocol with feedback, ordered
// by protocol id.
func (s *Store) AllMetrics() []models.ProtocolPerformanceMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProtocolPerformanceMetrics, 0, len(s.metrics))
	for _, m := range s.metrics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProtocolID < out[j].ProtocolID })
	return out
}

// TotalFeedbacks returns the current log length.
func (s *Store) TotalFeedbacks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ForUser returns the user's entries in record order.
func (s *Store) ForUser(userID string) []models.UserFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.UserFeedback
	for i := range s.entries {
		if s.entries[i].UserID == userID {
			out = append(out, s.entries[i])
		}
	}
	return out
}

// Recent returns a copy of the most recent n entries, oldest first.
func (s *Store) Recent(n int) []models.UserFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]models.UserFeedback, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// All returns a copy of the full log, oldest first.
func (s *Store) All() []models.UserFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UserFeedback, len(s.entries))
	copy(out, s.entries)
	return out
}

// UserIDs returns the distinct user ids in the log, sorted.
func (s *Store) UserIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for i := range s.entries {
		seen[s.entries[i].UserID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
