// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package feedback

import (
	"math"
	"sort"

	"github.com/gmaxing/engine/internal/recommend/strategies"
)

// Neighbors estimates how a user would rate a protocol from similar users'
// recorded feedback (user-based collaborative filtering over the log).
//
// For a target user u and protocol p:
//
//	estimate(u, p) = sum_{v in N(u,p)} sim(u, v) * r(v, p) / sum sim(u, v)
//
// where N(u,p) is the top-k users most similar to u who have rated p.
// Similarity is cosine over mean-centered rating vectors, so a contrarian
// rater scores negative rather than spuriously high (raw ratings are all
// positive, raw cosine cannot tell agreement from disagreement). Fully
// deterministic: ties break on user id.
type Neighbors struct {
	store *Store
	k     int
}

// DefaultNeighborK is the neighbor count used when none is configured.
const DefaultNeighborK = 10

// NewNeighbors creates a neighbor-lookup over the feedback store.
func NewNeighbors(store *Store, k int) *Neighbors {
	if k <= 0 {
		k = DefaultNeighborK
	}
	return &Neighbors{store: store, k: k}
}

// Snapshot materializes the rating vectors from the current log. The
// returned estimator never touches the store again, so one scoring pass
// over many protocols reads a single consistent log state regardless of
// concurrent Record calls.
func (n *Neighbors) Snapshot() strategies.NeighborEstimator {
	return &ratingSnapshot{vectors: n.ratingVectors(), k: n.k}
}

// EstimateRating estimates against a fresh snapshot. Callers scoring more
// than one protocol should take one Snapshot and reuse it.
func (n *Neighbors) EstimateRating(userID, protocolID string) (float64, bool) {
	return n.Snapshot().EstimateRating(userID, protocolID)
}

// ratedNeighbor pairs a candidate neighbor with its similarity and rating.
type ratedNeighbor struct {
	userID     string
	similarity float64
	rating     float64
}

// ratingSnapshot is a frozen view of the per-user rating vectors.
type ratingSnapshot struct {
	vectors map[string]map[string]float64
	k       int
}

// EstimateRating returns the estimated rating (1-5 scale) for the user and
// protocol. The second return is false when no other user has rated the
// protocol, in which case callers should fall back to a neutral score.
func (s *ratingSnapshot) EstimateRating(userID, protocolID string) (float64, bool) {
	var raters []ratedNeighbor
	target := centered(s.vectors[userID])
	for other, ratings := range s.vectors {
		if other == userID {
			continue
		}
		rating, rated := ratings[protocolID]
		if !rated {
			continue
		}
		raters = append(raters, ratedNeighbor{
			userID:     other,
			similarity: cosineOverRatings(target, centered(ratings)),
			rating:     rating,
		})
	}
	if len(raters) == 0 {
		return 0, false
	}

	// Map iteration order is random; fix the order before any summation so
	// float rounding cannot vary between calls on the same log.
	sort.Slice(raters, func(i, j int) bool {
		return raters[i].userID < raters[j].userID
	})

	var aligned []ratedNeighbor
	for _, r := range raters {
		if r.similarity > 0 {
			aligned = append(aligned, r)
		}
	}
	if len(aligned) == 0 {
		// Cold target user, or no positively-similar rater: fall back to
		// the plain mean over everyone who rated the protocol.
		var plain float64
		for _, r := range raters {
			plain += r.rating
		}
		return plain / float64(len(raters)), true
	}

	sort.SliceStable(aligned, func(i, j int) bool {
		return aligned[i].similarity > aligned[j].similarity
	})
	if len(aligned) > s.k {
		aligned = aligned[:s.k]
	}

	var weighted, simSum float64
	for _, r := range aligned {
		weighted += r.similarity * r.rating
		simSum += r.similarity
	}
	return weighted / simSum, true
}

// centered shifts a rating vector by the user's own mean, leaving relative
// preference. A user who rates everything the same centers to all zeros.
func centered(v map[string]float64) map[string]float64 {
	if len(v) == 0 {
		return nil
	}
	var sum float64
	for _, r := range v {
		sum += r
	}
	mean := sum / float64(len(v))
	out := make(map[string]float64, len(v))
	for id, r := range v {
		out[id] = r - mean
	}
	return out
}

// ratingVectors builds each user's protocol->mean-rating vector from the
// current log.
func (n *Neighbors) ratingVectors() map[string]map[string]float64 {
	type accum struct {
		sum   float64
		count int
	}
	acc := make(map[string]map[string]*accum)
	for _, fb := range n.store.All() {
		byProtocol, ok := acc[fb.UserID]
		if !ok {
			byProtocol = make(map[string]*accum)
			acc[fb.UserID] = byProtocol
		}
		a, ok := byProtocol[fb.ProtocolID]
		if !ok {
			a = &accum{}
			byProtocol[fb.ProtocolID] = a
		}
		a.sum += float64(fb.Rating)
		a.count++
	}

	vectors := make(map[string]map[string]float64, len(acc))
	for userID, byProtocol := range acc {
		v := make(map[string]float64, len(byProtocol))
		for protocolID, a := range byProtocol {
			v[protocolID] = a.sum / float64(a.count)
		}
		vectors[userID] = v
	}
	return vectors
}

// cosineOverRatings computes cosine similarity between two sparse rating
// vectors. Users with no co-rated protocols score 0.
func cosineOverRatings(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for id, ra := range a {
		normA += ra * ra
		if rb, ok := b[id]; ok {
			dot += ra * rb
		}
	}
	for _, rb := range b {
		normB += rb * rb
	}
	if dot == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
