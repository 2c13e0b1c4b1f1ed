// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package forecast

import (
	"sort"
	"time"

	"github.com/gmaxing/engine/internal/models"
)

// Churn rule thresholds. Only paying users past the inactivity gate are
// flagged at all; the remaining rules refine the reasons.
const (
	inactivityGateDays      = 14
	prolongedInactivityDays = 30
	shortSessionMinutes     = 10
	lowEngagementScore      = 30
)

// Churn risk reasons, stable strings for downstream display and alerting.
const (
	ReasonProlongedInactivity = "prolonged inactivity"
	ReasonShortSessions       = "short average sessions"
	ReasonNoProtocolUsage     = "no protocol usage"
	ReasonLowEngagement       = "low engagement score"
)

// ChurnRisk flags paying users at risk of disengaging: inactive for more
// than the gate period with nonzero historical spend. Risk is the inverse
// of the engagement score, clamped to [0,100]. Results are sorted by risk
// descending (ties by user id) and truncated to topN; topN <= 0 returns
// all flagged users.
func ChurnRisk(users []models.UserActivity, topN int, now time.Time) []models.ChurnRiskEntry {
	var entries []models.ChurnRiskEntry
	for i := range users {
		u := &users[i]
		inactive := now.Sub(u.LastActiveAt)
		if inactive <= inactivityGateDays*24*time.Hour || u.TotalSpent <= 0 {
			continue
		}

		risk := 100 - u.EngagementScore
		if risk < 0 {
			risk = 0
		}
		if risk > 100 {
			risk = 100
		}

		var reasons []string
		if inactive > prolongedInactivityDays*24*time.Hour {
			reasons = append(reasons, ReasonProlongedInactivity)
		}
		if u.AvgSessionMinutes > 0 && u.AvgSessionMinutes < shortSessionMinutes {
			reasons = append(reasons, ReasonShortSessions)
		}
		if u.ProtocolsUsed == 0 {
			reasons = append(reasons, ReasonNoProtocolUsage)
		}
		if u.EngagementScore < lowEngagementScore {
			reasons = append(reasons, ReasonLowEngagement)
		}

		entries = append(entries, models.ChurnRiskEntry{
			UserID:    u.UserID,
			RiskScore: risk,
			Reasons:   reasons,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RiskScore != entries[j].RiskScore {
			return entries[i].RiskScore > entries[j].RiskScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
