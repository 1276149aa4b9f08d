// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Submission status constants, in increasing completeness order
const (
	StatusNotStarted     = "not_started"
	StatusInProgress     = "in_progress"
	StatusGroupSubmitted = "group_submitted"
	StatusAllSubmitted   = "all_submitted"
)

/// Editing flag values. The flag is orthogonal to status: it answers
// "is this currently open for revision", not "how complete is it".
const (
	EditingNone   = ""
	EditingActive = "editing"
)

// Request types

type IssuePinRequest struct {
	DisplayName  string `json:"display_name"`
	Organization string `json:"organization"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin"`
}

type AppendRequest struct {
	Records []EvaluationRecord `json:"records"`
}

// Response types

type CheckIdentityResponse struct {
	Exists bool `json:"exists"`
}

type IssuePinResponse struct {
	IdentityID string `json:"identity_id"`
	Pin        string `json:"pin"`
}

type VerifyPinResponse struct {
	Valid        bool   `json:"valid"`
	Locked       bool   `json:"locked"`
	AttemptsLeft int    `json:"attempts_left"`
	SessionToken string `json:"session_token,omitempty"`
}

type ResetCredentialResponse struct {
	OK       bool `json:"ok"`
	Reopened int  `json:"reopened"`
}

type AppendResponse struct {
	Accepted int `json:"accepted"`
}

type ListRecordsResponse struct {
	Records    []ReconciledState `json:"records"`
	Completion float64           `json:"completion"`
}

type FinalizedCountResponse struct {
	Count int `json:"count"`
}

type FinalizeResponse struct {
	Finalized int `json:"finalized"`
}

type ReopenResponse struct {
	Reopened int `json:"reopened"`
}

type ExportResponse struct {
	View    string             `json:"view"`
	Records []EvaluationRecord `json:"records"`
}

type ResultsResponse struct {
	FinalOnly bool         `json:"final_only"`
	Groups    []GroupStats `json:"groups"`
	Jurors    []JurorStats `json:"jurors"`
}

// Domain types

type Identity struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Organization string `json:"organization"`
}

type Credential struct {
	IdentityID     string    `json:"identity_id"`
	DisplayName    string    `json:"display_name"`
	Organization   string    `json:"organization"`
	Pin            string    `json:"-"` // Never expose in JSON
	FailedAttempts int       `json:"failed_attempts"`
	Locked         bool      `json:"locked"`
	CreatedAt      time.Time `json:"created_at"`
}

// ScoreMap maps criterion id to a score. A nil entry is an empty
// (not yet filled) criterion, distinct from a zero score.
type ScoreMap map[string]*float64

// Filled reports how many criteria carry a non-empty score.
func (m ScoreMap) Filled() int {
	n := 0
	for _, v := range m {
		if v != nil {
			n++
		}
	}
	return n
}

// EvaluationRecord is one immutable append to the record log: a snapshot
// of one juror's scores for one group at one point in time. RecordedAt is
// the client clock as written, kept as a string so a malformed value can
// travel through the log without breaking queries; reconciliation parses
// it and excludes records it cannot parse.
type EvaluationRecord struct {
	ID          string   `json:"id"`
	IdentityID  string   `json:"identity_id"`
	GroupID     string   `json:"group_id"`
	RecordedAt  string   `json:"recorded_at"`
	Scores      ScoreMap `json:"scores"`
	Comment     string   `json:"comment,omitempty"`
	Status      string   `json:"status"`
	EditingFlag string   `json:"editing_flag,omitempty"`
}

// ReconciledState is the derived canonical state for one (identity, group)
// key. It is computed fresh on every read and never stored. Record is nil
// when Status is StatusNotStarted.
type ReconciledState struct {
	IdentityID string            `json:"identity_id"`
	GroupID    string            `json:"group_id"`
	Status     string            `json:"status"`
	Record     *EvaluationRecord `json:"record,omitempty"`
}

// Aggregation types

type CriterionStats struct {
	CriterionID string  `json:"criterion_id"`
	Label       string  `json:"label"`
	Mean        float64 `json:"mean"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Count       int     `json:"count"`
}

type GroupStats struct {
	GroupID        string           `json:"group_id"`
	Name           string           `json:"name"`
	OverallAverage float64          `json:"overall_average"`
	Submissions    int              `json:"submissions"`
	Criteria       []CriterionStats `json:"criteria"`
	Rank           int              `json:"rank"` // 1-indexed ranking
}

type JurorStats struct {
	IdentityID  string  `json:"identity_id"`
	DisplayName string  `json:"display_name,omitempty"`
	Completion  float64 `json:"completion"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Finalized   int     `json:"finalized"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
