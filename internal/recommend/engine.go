// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package recommend

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/catalog"
	"github.com/gmaxing/engine/internal/feature"
	"github.com/gmaxing/engine/internal/models"
	"github.com/gmaxing/engine/internal/recommend/strategies"
)

// FeedbackSource is the engine's read-only view of the feedback log and
// its derived aggregates. Implemented by the feedback store; injected so
// this package stays free of storage concerns.
type FeedbackSource interface {
	TotalFeedbacks() int
	Recent(n int) []models.UserFeedback
	MetricsOf(protocolID string) (models.ProtocolPerformanceMetrics, bool)
	AllMetrics() []models.ProtocolPerformanceMetrics
	UserIDs() []string
}

// PersonalizationSource supplies per-user adjustment factors and insight
// summaries.
type PersonalizationSource interface {
	FactorsFor(userID string) map[string]float64
	InsightFor(userID string) models.UserInsight
}

// Engine coordinates the scoring strategies and produces ranked, explained
// recommendations. Safe for concurrent use: scoring reads a weight
// snapshot taken at call start, and only the weight adapter mutates state.
type Engine struct {
	config *Config
	logger zerolog.Logger
	cat    *catalog.Catalog

	content       *strategies.Content
	collaborative *strategies.Collaborative
	domain        *strategies.Domain
	progress      *strategies.Progress

	weightsMu       sync.RWMutex
	weights         models.StrategyWeights
	lastAdaptedAt   time.Time
	adaptationCount int

	feedback        FeedbackSource
	personalization PersonalizationSource
	neighbors       strategies.NeighborProvider

	now func() time.Time
}

// Option customizes engine construction.
type Option func(*Engine)

// WithFeedbackSource wires the feedback log view used by the weight
// adapter, predictor and export.
func WithFeedbackSource(fs FeedbackSource) Option {
	return func(e *Engine) { e.feedback = fs }
}

// WithPersonalization wires the per-user factor source.
func WithPersonalization(ps PersonalizationSource) Option {
	return func(e *Engine) { e.personalization = ps }
}

// WithNeighbors wires the collaborative strategy's neighbor lookup. The
// engine takes one snapshot per scoring call.
func WithNeighbors(np strategies.NeighborProvider) Option {
	return func(e *Engine) { e.neighbors = np }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a recommendation engine over the catalog. Initial weights
// are clamped into their allowed ranges.
func New(cfg *Config, cat *catalog.Catalog, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	e := &Engine{
		config:        cfg,
		logger:        logger.With().Str("component", "recommend").Logger(),
		cat:           cat,
		content:       strategies.NewContent(),
		collaborative: strategies.NewCollaborative(),
		domain:        strategies.NewDomain(),
		progress:      strategies.NewProgress(),
		weights:       ClampWeights(cfg.Weights),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Weights returns a snapshot of the current strategy weights.
func (e *Engine) Weights() models.StrategyWeights {
	e.weightsMu.RLock()
	defer e.weightsMu.RUnlock()
	return e.weights
}

// SetWeights replaces the strategy weights, clamped into range.
func (e *Engine) SetWeights(w models.StrategyWeights) {
	clamped := ClampWeights(w)
	e.weightsMu.Lock()
	e.weights = clamped
	e.weightsMu.Unlock()
}

// Recommend scores every protocol in the catalog against the context and
// returns the top maxResults, sorted by score descending with ties broken
// by confidence then protocol id. maxResults <= 0 or above the configured
// cap falls back to the cap.
func (e *Engine) Recommend(rc *models.RecommendationContext, maxResults int) ([]models.RecommendationScore, error) {
	if rc == nil {
		return nil, fmt.Errorf("recommendation context is required")
	}
	if maxResults <= 0 || maxResults > e.config.MaxResults {
		maxResults = e.config.MaxResults
	}

	weights := e.Weights()
	profile := &rc.Profile
	profileVec := feature.EncodeProfile(profile)

	// One snapshot per call: every protocol scores against the same log
	// state, and concurrent Record calls cannot shift the data mid-pass.
	var neighbors strategies.NeighborEstimator
	if e.neighbors != nil {
		neighbors = e.neighbors.Snapshot()
	}
	boost := e.personalizationBoost(profile.ID)

	protocols := e.cat.List()
	scores := make([]models.RecommendationScore, 0, len(protocols))
	for i := range protocols {
		p := &protocols[i]
		embedding, err := e.cat.EmbeddingOf(p.ID)
		if err != nil {
			return nil, fmt.Errorf("embedding of %s: %w", p.ID, err)
		}

		in := &strategies.Input{
			Profile:        profile,
			Protocol:       p,
			ProfileVector:  profileVec,
			ProtocolVector: embedding,
			Progress:       rc.CurrentProgress,
			RecentSessions: rc.RecentSessions,
			Neighbors:      neighbors,
		}

		contentScore, err := e.content.Score(in)
		if err != nil {
			return nil, fmt.Errorf("protocol %s: %w", p.ID, err)
		}
		collabScore, err := e.collaborative.Score(in)
		if err != nil {
			return nil, fmt.Errorf("protocol %s: %w", p.ID, err)
		}
		domainScore, err := e.domain.Score(in)
		if err != nil {
			return nil, fmt.Errorf("protocol %s: %w", p.ID, err)
		}
		progressScore, err := e.progress.Score(in)
		if err != nil {
			return nil, fmt.Errorf("protocol %s: %w", p.ID, err)
		}

		// Weighted blend, normalized by the weight sum so the score stays
		// in [0,1] whatever the clamped weights sum to.
		weightSum := weights.Content + weights.Collaborative + weights.DomainSpecific + weights.Progress
		blended := (weights.Content*contentScore +
			weights.Collaborative*collabScore +
			weights.DomainSpecific*domainScore +
			weights.Progress*progressScore) / weightSum

		// Learned per-user factors boost the blended score multiplicatively,
		// re-clamped to [0,1].
		blended *= boost
		if blended > 1 {
			blended = 1
		}

		scores = append(scores, models.RecommendationScore{
			ProtocolID:           p.ID,
			Score:                blended,
			Confidence:           e.confidenceFor(rc, p),
			GMaxingCompatibility: domainScore,
			Reasons:              e.reasonsFor(profile, p),
			SubScores: map[string]float64{
				e.content.Name():       contentScore,
				e.collaborative.Name(): collabScore,
				e.domain.Name():        domainScore,
				e.progress.Name():      progressScore,
			},
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		if scores[i].Confidence != scores[j].Confidence {
			return scores[i].Confidence > scores[j].Confidence
		}
		return scores[i].ProtocolID < scores[j].ProtocolID
	})
	if len(scores) > maxResults {
		scores = scores[:maxResults]
	}

	e.logger.Debug().
		Str("user_id", profile.ID).
		Int("results", len(scores)).
		Msg("recommendations computed")
	return scores, nil
}

// personalizationBoost multiplies the user's learned factors above 1 into
// a single score multiplier. Factors apply in sorted name order so float
// rounding is stable; 1 when no source is wired or the user is below the
// personalization gate.
func (e *Engine) personalizationBoost(userID string) float64 {
	boost := 1.0
	if e.personalization == nil {
		return boost
	}
	personal := e.personalization.FactorsFor(userID)
	names := make([]string, 0, len(personal))
	for name, f := range personal {
		if f > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		boost *= personal[name]
	}
	return boost
}

// confidenceFor builds the additive confidence score: equipment match,
// goal overlap, difficulty match, progress data, time+frequency
// feasibility. Clamped to [0,1].
func (e *Engine) confidenceFor(rc *models.RecommendationContext, p *models.Protocol) float64 {
	profile := &rc.Profile
	var confidence float64

	if profile.HasAllEquipment(p.RequiredEquipment) {
		confidence += 0.2
	}
	confidence += 0.2 * profile.GoalOverlap(p.Goals)
	if p.Difficulty.Index() == profile.FitnessLevel.Index() {
		confidence += 0.15
	}
	if rc.CurrentProgress != nil || len(rc.RecentSessions) > 0 {
		confidence += 0.1
	}
	if timeFits(profile, p) && frequencyFits(profile, p) {
		confidence += 0.15
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// reasonsFor assembles the human-readable justification list, most
// significant first.
func (e *Engine) reasonsFor(profile *models.UserProfile, p *models.Protocol) []string {
	var reasons []string

	if p.HasPrinciple(models.PrincipleGeneticOptimization) {
		reasons = append(reasons, "built around GMaxing genetic-optimization programming")
	}
	switch overlap := profile.GoalOverlap(p.Goals); {
	case overlap == 1:
		reasons = append(reasons, "targets all of your goals")
	case overlap > 0:
		reasons = append(reasons, "targets some of your goals")
	}
	if profile.HasAllEquipment(p.RequiredEquipment) {
		reasons = append(reasons, "all required equipment available")
	} else {
		reasons = append(reasons, "requires equipment you don't have")
	}
	if p.Difficulty.Index() == profile.FitnessLevel.Index() {
		reasons = append(reasons, "matches your experience level")
	}
	if timeFits(profile, p) {
		reasons = append(reasons, "sessions fit your available time")
	}
	if frequencyFits(profile, p) {
		reasons = append(reasons, "fits your weekly schedule")
	}
	return reasons
}

// timeFits reports whether the estimated session fits the user's available
// time. An unset time budget counts as unverified, not as a fit.
func timeFits(profile *models.UserProfile, p *models.Protocol) bool {
	return profile.AvailableTimeMinutes > 0 &&
		p.EstimatedSessionMinutes() <= float64(profile.AvailableTimeMinutes)
}

// frequencyFits reports whether the weekly session count fits the user's
// training frequency.
func frequencyFits(profile *models.UserProfile, p *models.Protocol) bool {
	return profile.WeeklyFrequency > 0 &&
		p.SessionsPerWeek <= profile.WeeklyFrequency
}

// Export returns the learning snapshot for offline analysis: log totals,
// per-protocol aggregates, current weights, and per-user insights.
func (e *Engine) Export() models.LearningSnapshot {
	snap := models.LearningSnapshot{
		Weights:     e.Weights(),
		GeneratedAt: e.now(),
	}
	if e.feedback == nil {
		return snap
	}

	snap.TotalFeedbacks = e.feedback.TotalFeedbacks()
	snap.ProtocolPerformance = e.feedback.AllMetrics()

	if e.personalization != nil {
		ids := e.feedback.UserIDs()
		sort.Strings(ids)
		snap.UserInsights = make([]models.UserInsight, 0, len(ids))
		for _, id := range ids {
			snap.UserInsights = append(snap.UserInsights, e.personalization.InsightFor(id))
		}
	}
	return snap
}
