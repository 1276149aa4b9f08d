// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - IssuePinRequest: display_name, organization
  - VerifyPinRequest: pin
  - AppendRequest: records (array of EvaluationRecord)

# Response Types

Types for JSON responses:

  - CheckIdentityResponse: exists
  - IssuePinResponse: identity_id, pin (returned exactly once)
  - VerifyPinResponse: valid, locked, attempts_left, session_token
  - ResetCredentialResponse: ok, reopened
  - AppendResponse: accepted
  - ListRecordsResponse: records, completion
  - FinalizedCountResponse: count
  - ExportResponse: view, records
  - ResultsResponse: final_only, groups, jurors
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Identity: juror identified by a deterministic name+organization hash
  - Credential: PIN, failure counter, and lock state for one identity
  - EvaluationRecord: one immutable append to the record log
  - ScoreMap: criterion id → score, nil meaning not yet filled
  - ReconciledState: derived canonical record per (identity, group) key
  - GroupStats, CriterionStats, JurorStats: aggregation output

# Constants

Submission status values, in increasing completeness order:

	StatusNotStarted     = "not_started"
	StatusInProgress     = "in_progress"
	StatusGroupSubmitted = "group_submitted"
	StatusAllSubmitted   = "all_submitted"

Editing flag values:

	EditingNone   = ""
	EditingActive = "editing"
*/
package models
