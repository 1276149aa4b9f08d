// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"sort"

	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/reconcile"
	"github.com/huguryildiz/senior-design-jury/rubric"
)

// statusIncluded reports whether a reconciled status contributes to
// aggregation. The default filter admits both submitted states; the
// stricter final-only filter admits all_submitted alone.
func statusIncluded(status string, finalOnly bool) bool {
	if finalOnly {
		return status == models.StatusAllSubmitted
	}
	return status == models.StatusGroupSubmitted || status == models.StatusAllSubmitted
}

// ComputeGroupRankings aggregates reconciled records into per-group
// statistics and an overall ranking.
//
// The overall average is the mean of each contributing record's total
// score, not the sum of per-criterion means. The two agree while totals
// are linear, but computing it as specified keeps the number honest if
// criteria weights ever stop being additive.
func ComputeGroupRankings(records []models.EvaluationRecord, rb *rubric.Rubric, finalOnly bool) []models.GroupStats {
	merged := reconcile.Reconcile(records)

	totalsByGroup := make(map[string][]float64)
	scoresByGroup := make(map[string]map[string][]float64)
	for _, st := range merged {
		if !statusIncluded(st.Status, finalOnly) || st.Record == nil {
			continue
		}
		total := 0.0
		for _, c := range rb.Criteria {
			v := st.Record.Scores[c.ID]
			if v == nil {
				continue
			}
			total += *v
			if scoresByGroup[st.GroupID] == nil {
				scoresByGroup[st.GroupID] = make(map[string][]float64)
			}
			scoresByGroup[st.GroupID][c.ID] = append(scoresByGroup[st.GroupID][c.ID], *v)
		}
		totalsByGroup[st.GroupID] = append(totalsByGroup[st.GroupID], total)
	}

	stats := make([]models.GroupStats, 0, len(rb.Groups))
	for _, g := range rb.Groups {
		gs := models.GroupStats{
			GroupID:        g.ID,
			Name:           g.Name,
			OverallAverage: mean(totalsByGroup[g.ID]),
			Submissions:    len(totalsByGroup[g.ID]),
		}
		for _, c := range rb.Criteria {
			values := scoresByGroup[g.ID][c.ID]
			cs := models.CriterionStats{
				CriterionID: c.ID,
				Label:       c.Label,
				Mean:        mean(values),
				Count:       len(values),
			}
			if len(values) > 0 {
				cs.Min = values[0]
				cs.Max = values[0]
				for _, v := range values[1:] {
					cs.Min = math.Min(cs.Min, v)
					cs.Max = math.Max(cs.Max, v)
				}
			}
			gs.Criteria = append(gs.Criteria, cs)
		}
		stats = append(stats, gs)
	}

	// Descending overall average; equal averages order by ascending
	// group id so repeated runs always agree.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].OverallAverage != stats[j].OverallAverage {
			return stats[i].OverallAverage > stats[j].OverallAverage
		}
		return stats[i].GroupID < stats[j].GroupID
	})
	for i := range stats {
		stats[i].Rank = i + 1 // 1-indexed ranking
	}

	return stats
}

// ComputeJurorStats derives per-identity completion and consistency
// statistics. Completion counts filled criteria across all groups against
// the full groups × criteria grid; mean and standard deviation of the
// per-group totals flag unusually lenient or strict scorers.
func ComputeJurorStats(records []models.EvaluationRecord, rb *rubric.Rubric, finalOnly bool) []models.JurorStats {
	merged := reconcile.Reconcile(records)

	identities := make(map[string]bool)
	for key := range merged {
		identities[key.IdentityID] = true
	}

	stats := make([]models.JurorStats, 0, len(identities))
	for identityID := range identities {
		states := reconcile.ForIdentity(records, rb, identityID)

		var totals []float64
		finalized := 0
		for _, st := range states {
			if st.Status == models.StatusAllSubmitted {
				finalized++
			}
			if !statusIncluded(st.Status, finalOnly) || st.Record == nil {
				continue
			}
			total := 0.0
			for _, c := range rb.Criteria {
				if v := st.Record.Scores[c.ID]; v != nil {
					total += *v
				}
			}
			totals = append(totals, total)
		}

		stats = append(stats, models.JurorStats{
			IdentityID: identityID,
			Completion: completionFor(states, rb),
			Mean:       mean(totals),
			StdDev:     stddev(totals),
			Finalized:  finalized,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].IdentityID < stats[j].IdentityID
	})
	return stats
}

// completionFor is filled-criterion count across all groups divided by
// the groups × criteria grid size.
func completionFor(states []models.ReconciledState, rb *rubric.Rubric) float64 {
	grid := len(rb.Groups) * len(rb.Criteria)
	if grid == 0 {
		return 0.0
	}
	filled := 0
	for _, st := range states {
		if st.Record == nil {
			continue
		}
		for _, c := range rb.Criteria {
			if v := st.Record.Scores[c.ID]; v != nil {
				filled++
			}
		}
	}
	return float64(filled) / float64(grid)
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev calculates the population standard deviation
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}
