// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/rubric"
)

// Priority orders statuses for tie-breaking during reconciliation.
// Unknown statuses rank below everything so a corrupt value can never
// beat a well-formed record.
func Priority(status string) int {
	switch status {
	case models.StatusAllSubmitted:
		return 3
	case models.StatusGroupSubmitted:
		return 2
	case models.StatusInProgress:
		return 1
	case models.StatusNotStarted:
		return 0
	default:
		return -1
	}
}

// Known reports whether status is one of the four lifecycle states.
func Known(status string) bool {
	return Priority(status) >= 0
}

// Complete reports whether every criterion in the rubric carries a
// non-empty score.
func Complete(scores models.ScoreMap, criteria []rubric.Criterion) bool {
	for _, c := range criteria {
		if v, ok := scores[c.ID]; !ok || v == nil {
			return false
		}
	}
	return len(criteria) > 0
}

// StampFor returns the status a writer should stamp on its next append
// given the current local scores for one group. The engine never upgrades
// a status on its own; stamping is strictly the writer's job.
//
//	no score filled     → not_started
//	some scores filled  → in_progress
//	all scores filled   → group_submitted
//
// all_submitted is never returned here: it is only reached through the
// distinct finalize action, which stamps every group in one batch.
func StampFor(scores models.ScoreMap, criteria []rubric.Criterion) string {
	if scores.Filled() == 0 {
		return models.StatusNotStarted
	}
	if Complete(scores, criteria) {
		return models.StatusGroupSubmitted
	}
	return models.StatusInProgress
}

// ReopenTarget returns the status a reopened record downgrades to.
// Clearing nothing keeps the scores complete, so the record lands on
// group_submitted; a partially cleared record lands on in_progress.
func ReopenTarget(scores models.ScoreMap, criteria []rubric.Criterion) string {
	if Complete(scores, criteria) {
		return models.StatusGroupSubmitted
	}
	return models.StatusInProgress
}

// CanFinalize reports whether an identity's reconciled states cover every
// group in the rubric with a complete score set. The finalize action must
// refuse otherwise; completeness is checked here, not re-derived from the
// stamped statuses, so a stale stamp cannot sneak an incomplete group
// through.
func CanFinalize(states map[string]models.ReconciledState, rb *rubric.Rubric) bool {
	for _, g := range rb.Groups {
		st, ok := states[g.ID]
		if !ok || st.Record == nil {
			return false
		}
		if !Complete(st.Record.Scores, rb.Criteria) {
			return false
		}
	}
	return len(rb.Groups) > 0
}
