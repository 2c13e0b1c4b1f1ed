// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/catalog"
	"github.com/gmaxing/engine/internal/models"
	"github.com/gmaxing/engine/internal/recommend/strategies"
)

func testCatalog(t *testing.T, protocols ...models.Protocol) *catalog.Catalog {
	t.Helper()
	cat := catalog.New(zerolog.Nop())
	for _, p := range protocols {
		if err := cat.Upsert(p); err != nil {
			t.Fatalf("Upsert(%s) error = %v", p.ID, err)
		}
	}
	return cat
}

func strengthProtocol(id string) models.Protocol {
	return models.Protocol{
		ID:                  id,
		Name:                "Strength Block",
		Category:            models.CategoryStrength,
		Difficulty:          models.DifficultyIntermediate,
		DurationWeeks:       12,
		SessionsPerWeek:     3,
		RequiredEquipment:   []models.Equipment{models.EquipmentBarbell},
		Goals:               []models.Goal{models.GoalStrength},
		Principles:          []models.Principle{models.PrincipleProgressiveOverload},
		MetabolicDemand:     models.MetabolicModerate,
		RecoveryRequirement: models.RecoveryElevated,
	}
}

func testContext() *models.RecommendationContext {
	return &models.RecommendationContext{
		Profile: models.UserProfile{
			ID:                   "u1",
			Age:                  30,
			WeightKG:             80,
			HeightCM:             180,
			FitnessLevel:         models.FitnessIntermediate,
			Goals:                []models.Goal{models.GoalStrength},
			Equipment:            []models.Equipment{models.EquipmentBarbell, models.EquipmentBench},
			AvailableTimeMinutes: 90,
			WeeklyFrequency:      4,
		},
	}
}

func newTestEngine(t *testing.T, cat *catalog.Catalog, opts ...Option) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), cat, zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	e := newTestEngine(t, cat)

	first, err := e.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := e.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two identical calls produced different output")
	}
}

func TestEngine_Recommend_Bounds(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	e := newTestEngine(t, cat)

	contexts := []*models.RecommendationContext{
		testContext(),
		{Profile: models.UserProfile{
			ID:           "minimal",
			FitnessLevel: models.FitnessBeginner,
			Goals:        []models.Goal{models.GoalGeneralFitness},
		}},
		{
			Profile: models.UserProfile{
				ID:                   "loaded",
				Age:                  55,
				FitnessLevel:         models.FitnessElite,
				Goals:                []models.Goal{models.GoalStrength, models.GoalMuscleGain, models.GoalFatLoss},
				Equipment:            models.EquipmentVocabulary,
				AvailableTimeMinutes: 180,
				WeeklyFrequency:      6,
			},
			CurrentProgress: &models.ProgressSnapshot{TotalSessions: 50, AdherenceRate: 0.95},
			RecentSessions: []models.SessionRecord{
				{PerformanceScore: 0.5}, {PerformanceScore: 0.9},
			},
		},
	}

	for _, rc := range contexts {
		scores, err := e.Recommend(rc, 50)
		if err != nil {
			t.Fatalf("Recommend(%s) error = %v", rc.Profile.ID, err)
		}
		if len(scores) == 0 {
			t.Fatalf("Recommend(%s) returned no results", rc.Profile.ID)
		}
		for _, s := range scores {
			if s.Score < 0 || s.Score > 1 {
				t.Errorf("%s/%s: score %f out of [0,1]", rc.Profile.ID, s.ProtocolID, s.Score)
			}
			if s.Confidence < 0 || s.Confidence > 1 {
				t.Errorf("%s/%s: confidence %f out of [0,1]", rc.Profile.ID, s.ProtocolID, s.Confidence)
			}
			if s.GMaxingCompatibility < 0 || s.GMaxingCompatibility > 1 {
				t.Errorf("%s/%s: compatibility %f out of [0,1]", rc.Profile.ID, s.ProtocolID, s.GMaxingCompatibility)
			}
		}
	}
}

func TestEngine_Recommend_Ordering(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	e := newTestEngine(t, cat)

	scores, err := e.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 1; i < len(scores); i++ {
		prev, cur := scores[i-1], scores[i]
		if prev.Score < cur.Score {
			t.Errorf("results not sorted: %s (%f) before %s (%f)", prev.ProtocolID, prev.Score, cur.ProtocolID, cur.Score)
		}
		if prev.Score == cur.Score && prev.Confidence < cur.Confidence {
			t.Errorf("confidence tie-break violated at %d", i)
		}
		if prev.Score == cur.Score && prev.Confidence == cur.Confidence && prev.ProtocolID > cur.ProtocolID {
			t.Errorf("id tie-break violated at %d", i)
		}
	}
}

func TestEngine_Recommend_MaxResults(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	e := newTestEngine(t, cat)

	scores, err := e.Recommend(testContext(), 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("len(scores) = %d, want 2", len(scores))
	}

	// Zero falls back to the configured cap, not zero results.
	scores, err = e.Recommend(testContext(), 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(scores) == 0 {
		t.Error("maxResults 0 returned no results")
	}
}

// A barbell-only protocol must score lower on content for a bodyweight-only
// user, scaled by the equipment penalty.
func TestEngine_Recommend_EquipmentPenalty(t *testing.T) {
	cat := testCatalog(t, strengthProtocol("p1"))
	e := newTestEngine(t, cat)

	equipped := testContext()
	bare := testContext()
	bare.Profile.Equipment = []models.Equipment{models.EquipmentBodyweight}

	withEq, err := e.Recommend(equipped, 1)
	if err != nil {
		t.Fatal(err)
	}
	withoutEq, err := e.Recommend(bare, 1)
	if err != nil {
		t.Fatal(err)
	}

	eqContent := withEq[0].SubScores["content"]
	bareContent := withoutEq[0].SubScores["content"]
	if bareContent >= eqContent {
		t.Errorf("content sub-score without equipment (%f) not below with equipment (%f)", bareContent, eqContent)
	}
	for _, r := range withoutEq[0].Reasons {
		if r == "all required equipment available" {
			t.Error("reasons claim equipment is available for a bodyweight-only user")
		}
	}
}

type fakeFeedbackSource struct {
	entries []models.UserFeedback
	metrics map[string]models.ProtocolPerformanceMetrics
	users   []string
}

func (f *fakeFeedbackSource) TotalFeedbacks() int { return len(f.entries) }

func (f *fakeFeedbackSource) Recent(n int) []models.UserFeedback {
	if n >= len(f.entries) {
		return f.entries
	}
	return f.entries[len(f.entries)-n:]
}

func (f *fakeFeedbackSource) MetricsOf(protocolID string) (models.ProtocolPerformanceMetrics, bool) {
	m, ok := f.metrics[protocolID]
	return m, ok
}

func (f *fakeFeedbackSource) AllMetrics() []models.ProtocolPerformanceMetrics {
	out := make([]models.ProtocolPerformanceMetrics, 0, len(f.metrics))
	for _, m := range f.metrics {
		out = append(out, m)
	}
	return out
}

func (f *fakeFeedbackSource) UserIDs() []string { return f.users }

type fakePersonalization struct {
	factors map[string]map[string]float64
}

func (f *fakePersonalization) FactorsFor(userID string) map[string]float64 {
	return f.factors[userID]
}

func (f *fakePersonalization) InsightFor(userID string) models.UserInsight {
	return models.UserInsight{UserID: userID, Factors: f.factors[userID]}
}

func successfulEntries(n int) []models.UserFeedback {
	entries := make([]models.UserFeedback, n)
	for i := range entries {
		entries[i] = models.UserFeedback{
			UserID: "u", ProtocolID: "p",
			Rating: 5, Effectiveness: 9, Difficulty: 5, Enjoyment: 7, Completed: true,
		}
	}
	return entries
}

func TestEngine_AdaptWeights_Gating(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())

	t.Run("no source", func(t *testing.T) {
		e := newTestEngine(t, cat)
		before := e.Weights()
		after, changed := e.AdaptWeights()
		if changed || after != before {
			t.Errorf("AdaptWeights() = %+v changed=%v, want unchanged", after, changed)
		}
	})

	t.Run("below minimum", func(t *testing.T) {
		fs := &fakeFeedbackSource{entries: successfulEntries(49)}
		e := newTestEngine(t, cat, WithFeedbackSource(fs))
		if _, changed := e.AdaptWeights(); changed {
			t.Error("AdaptWeights() ran below the feedback minimum")
		}
	})

	t.Run("no successful entries", func(t *testing.T) {
		entries := successfulEntries(60)
		for i := range entries {
			entries[i].Rating = 2
			entries[i].Effectiveness = 3
		}
		fs := &fakeFeedbackSource{entries: entries}
		e := newTestEngine(t, cat, WithFeedbackSource(fs))
		if _, changed := e.AdaptWeights(); changed {
			t.Error("AdaptWeights() updated weights with no successful entries")
		}
	})
}

func TestEngine_AdaptWeights_ClampInvariant(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	fs := &fakeFeedbackSource{entries: successfulEntries(120)}
	e := newTestEngine(t, cat, WithFeedbackSource(fs))

	for i := 0; i < 25; i++ {
		w, changed := e.AdaptWeights()
		if !changed {
			t.Fatalf("run %d: AdaptWeights() did not run", i)
		}
		if w.Content < 0.1 || w.Content > 0.4 {
			t.Errorf("run %d: content weight %f out of [0.1,0.4]", i, w.Content)
		}
		if w.Collaborative < 0.1 || w.Collaborative > 0.4 {
			t.Errorf("run %d: collaborative weight %f out of [0.1,0.4]", i, w.Collaborative)
		}
		if w.DomainSpecific < 0.3 || w.DomainSpecific > 0.6 {
			t.Errorf("run %d: domain weight %f out of [0.3,0.6]", i, w.DomainSpecific)
		}
		if w.Progress < 0.05 || w.Progress > 0.2 {
			t.Errorf("run %d: progress weight %f out of [0.05,0.2]", i, w.Progress)
		}
	}
}

func TestEngine_PredictSatisfaction(t *testing.T) {
	cat := testCatalog(t, strengthProtocol("p1"))

	t.Run("unknown protocol", func(t *testing.T) {
		e := newTestEngine(t, cat)
		if _, err := e.PredictSatisfaction("u1", "missing"); !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("no data baseline", func(t *testing.T) {
		e := newTestEngine(t, cat)
		pred, err := e.PredictSatisfaction("u1", "p1")
		if err != nil {
			t.Fatal(err)
		}
		if pred.PredictedRating != baselineRating {
			t.Errorf("rating = %f, want baseline %f", pred.PredictedRating, baselineRating)
		}
		if pred.Confidence != baseConfidence {
			t.Errorf("confidence = %f, want %f", pred.Confidence, baseConfidence)
		}
	})

	t.Run("metrics blend", func(t *testing.T) {
		fs := &fakeFeedbackSource{metrics: map[string]models.ProtocolPerformanceMetrics{
			"p1": {ProtocolID: "p1", AvgRating: 4.7, TotalFeedbacks: 10},
		}}
		e := newTestEngine(t, cat, WithFeedbackSource(fs))

		pred, err := e.PredictSatisfaction("u1", "p1")
		if err != nil {
			t.Fatal(err)
		}
		want := 4.7*0.6 + baselineRating*0.4
		if math.Abs(pred.PredictedRating-want) > 1e-9 {
			t.Errorf("rating = %f, want %f", pred.PredictedRating, want)
		}
		if math.Abs(pred.Confidence-(baseConfidence+0.2)) > 1e-9 {
			t.Errorf("confidence = %f, want %f", pred.Confidence, baseConfidence+0.2)
		}
	})

	t.Run("personalization multipliers and clamps", func(t *testing.T) {
		fs := &fakeFeedbackSource{metrics: map[string]models.ProtocolPerformanceMetrics{
			"p1": {ProtocolID: "p1", AvgRating: 4.7, TotalFeedbacks: 10},
		}}
		ps := &fakePersonalization{factors: map[string]map[string]float64{
			"u1": {"effectiveness-focused": 1.3, "high-completion": 1.15},
		}}
		e := newTestEngine(t, cat, WithFeedbackSource(fs), WithPersonalization(ps))

		pred, err := e.PredictSatisfaction("u1", "p1")
		if err != nil {
			t.Fatal(err)
		}
		if pred.PredictedRating != 5 {
			t.Errorf("rating = %f, want clamped 5", pred.PredictedRating)
		}
		if math.Abs(pred.Confidence-0.9) > 1e-9 {
			t.Errorf("confidence = %f, want 0.9", pred.Confidence)
		}
		// Factor names come back alphabetically after the metrics factor.
		want := []string{"community-rating-history", "effectiveness-focused", "high-completion"}
		if !reflect.DeepEqual(pred.Factors, want) {
			t.Errorf("factors = %v, want %v", pred.Factors, want)
		}
	})
}

func TestEngine_Export(t *testing.T) {
	cat := testCatalog(t, strengthProtocol("p1"))
	fs := &fakeFeedbackSource{
		entries: successfulEntries(3),
		metrics: map[string]models.ProtocolPerformanceMetrics{
			"p1": {ProtocolID: "p1", AvgRating: 4.5, TotalFeedbacks: 3},
		},
		users: []string{"u2", "u1"},
	}
	ps := &fakePersonalization{factors: map[string]map[string]float64{}}
	fixed := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	e := newTestEngine(t, cat,
		WithFeedbackSource(fs),
		WithPersonalization(ps),
		WithClock(func() time.Time { return fixed }),
	)

	snap := e.Export()
	if snap.TotalFeedbacks != 3 {
		t.Errorf("TotalFeedbacks = %d, want 3", snap.TotalFeedbacks)
	}
	if len(snap.ProtocolPerformance) != 1 {
		t.Errorf("len(ProtocolPerformance) = %d, want 1", len(snap.ProtocolPerformance))
	}
	if snap.Weights != e.Weights() {
		t.Errorf("Weights = %+v, want current engine weights", snap.Weights)
	}
	if len(snap.UserInsights) != 2 || snap.UserInsights[0].UserID != "u1" {
		t.Errorf("UserInsights = %+v, want sorted insights for u1,u2", snap.UserInsights)
	}
	if !snap.GeneratedAt.Equal(fixed) {
		t.Errorf("GeneratedAt = %s, want %s", snap.GeneratedAt, fixed)
	}
}

// countingNeighbors counts snapshot and estimate calls to verify the
// engine reads one frozen view per scoring pass.
type countingNeighbors struct {
	snapshots int
	estimates int
}

func (c *countingNeighbors) Snapshot() strategies.NeighborEstimator {
	c.snapshots++
	return countingEstimator{c}
}

type countingEstimator struct {
	parent *countingNeighbors
}

func (c countingEstimator) EstimateRating(string, string) (float64, bool) {
	c.parent.estimates++
	return 4, true
}

func TestEngine_Recommend_PersonalizationBoost(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	cold := newTestEngine(t, cat)
	warm := newTestEngine(t, cat, WithPersonalization(&fakePersonalization{
		factors: map[string]map[string]float64{
			"u1": {"prefers-high-difficulty": 1.2, "effectiveness-focused": 1.3},
		},
	}))

	base, err := cold.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	boosted, err := warm.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if reflect.DeepEqual(base, boosted) {
		t.Fatal("learned factors had no effect on scoring")
	}

	baseByID := make(map[string]models.RecommendationScore, len(base))
	for _, s := range base {
		baseByID[s.ProtocolID] = s
	}
	// Factor product 1.3*1.2 applies to every blended score, re-clamped.
	for _, s := range boosted {
		want := baseByID[s.ProtocolID].Score * 1.3 * 1.2
		if want > 1 {
			want = 1
		}
		if math.Abs(s.Score-want) > 1e-9 {
			t.Errorf("protocol %s score = %f, want %f", s.ProtocolID, s.Score, want)
		}
	}
}

func TestEngine_Recommend_FactorsBelowGateNoEffect(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	cold := newTestEngine(t, cat)
	gated := newTestEngine(t, cat, WithPersonalization(&fakePersonalization{
		factors: map[string]map[string]float64{},
	}))

	base, err := cold.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	same, err := gated.Recommend(testContext(), 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !reflect.DeepEqual(base, same) {
		t.Error("empty factor map changed the ranking")
	}
}

func TestEngine_Recommend_SingleNeighborSnapshot(t *testing.T) {
	cat := catalog.NewWithDefaults(zerolog.Nop())
	neighbors := &countingNeighbors{}
	e := newTestEngine(t, cat, WithNeighbors(neighbors))

	results, err := e.Recommend(testContext(), cat.Len())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(results) != cat.Len() {
		t.Fatalf("len(results) = %d, want %d", len(results), cat.Len())
	}
	if neighbors.snapshots != 1 {
		t.Errorf("snapshots = %d, want 1 per scoring call", neighbors.snapshots)
	}
	if neighbors.estimates != cat.Len() {
		t.Errorf("estimates = %d, want one per protocol (%d)", neighbors.estimates, cat.Len())
	}
}
