// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"strconv"
	"time"

	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/rubric"
	"github.com/huguryildiz/senior-design-jury/submission"
)

// Key identifies one juror's evaluation of one group.
type Key struct {
	IdentityID string
	GroupID    string
}

// candidate is a record admitted to the merge, with its timestamp parsed
// once up front.
type candidate struct {
	rec models.EvaluationRecord
	at  time.Time
}

// Reconcile merges raw log records into one canonical record per
// (identity, group) key. The merge is a pure max-like reduction:
// idempotent, commutative, and associative, so any ordering, duplication,
// or subset of the same writes converges to the same winner.
//
// Within a key:
//  1. the strictly later recorded_at wins
//  2. on an exact timestamp tie, the higher status priority wins
//  3. any remaining tie falls back to the lexically greater record id,
//     which is state-independent and therefore deterministic
//
// Records that cannot participate are excluded from candidacy entirely:
// an unparseable recorded_at, or a score set with no non-empty entry
// (which covers both the "navigated but never typed" case and a scores
// column that failed to parse). Exclusion matters: a contentless record
// must never be able to beat a more complete one.
func Reconcile(records []models.EvaluationRecord) map[Key]models.ReconciledState {
	winners := make(map[Key]candidate)
	for _, rec := range records {
		at, err := ParseTimestamp(rec.RecordedAt)
		if err != nil {
			continue
		}
		if rec.Scores.Filled() == 0 {
			continue
		}
		c := candidate{rec: rec, at: at}
		key := Key{IdentityID: rec.IdentityID, GroupID: rec.GroupID}
		if cur, ok := winners[key]; !ok || beats(c, cur) {
			winners[key] = c
		}
	}

	states := make(map[Key]models.ReconciledState, len(winners))
	for key, c := range winners {
		rec := c.rec
		states[key] = models.ReconciledState{
			IdentityID: key.IdentityID,
			GroupID:    key.GroupID,
			Status:     rec.Status,
			Record:     &rec,
		}
	}
	return states
}

// beats reports whether a wins over b under the merge rule.
func beats(a, b candidate) bool {
	if !a.at.Equal(b.at) {
		return a.at.After(b.at)
	}
	pa, pb := submission.Priority(a.rec.Status), submission.Priority(b.rec.Status)
	if pa != pb {
		return pa > pb
	}
	return a.rec.ID > b.rec.ID
}

// ParseTimestamp parses a client-supplied recorded_at value: RFC 3339
// (with or without fractional seconds), or a decimal integer of unix
// milliseconds. Anything else is a malformed record.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// ForIdentity reconciles records and returns one state per rubric group
// for the given identity, in rubric order, filling not_started for groups
// with no surviving candidate.
func ForIdentity(records []models.EvaluationRecord, rb *rubric.Rubric, identityID string) []models.ReconciledState {
	merged := Reconcile(records)
	states := make([]models.ReconciledState, 0, len(rb.Groups))
	for _, g := range rb.Groups {
		if st, ok := merged[Key{IdentityID: identityID, GroupID: g.ID}]; ok {
			states = append(states, st)
			continue
		}
		states = append(states, models.ReconciledState{
			IdentityID: identityID,
			GroupID:    g.ID,
			Status:     models.StatusNotStarted,
		})
	}
	return states
}

// ByGroup indexes an identity's reconciled states by group id.
func ByGroup(states []models.ReconciledState) map[string]models.ReconciledState {
	byGroup := make(map[string]models.ReconciledState, len(states))
	for _, st := range states {
		byGroup[st.GroupID] = st
	}
	return byGroup
}
