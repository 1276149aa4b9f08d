// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/huguryildiz/senior-design-jury/cliparse"
	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/middleware"
	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/reconcile"
	"github.com/huguryildiz/senior-design-jury/rubric"
	"github.com/huguryildiz/senior-design-jury/submission"
)

// SessionTokenHeader carries the token issued by a successful PIN check.
const SessionTokenHeader = "X-Session-Token"

type RecordHandler struct {
	db  *sql.DB
	log *db.RecordLog
	rb  *rubric.Rubric
	cfg cliparse.Config
}

func NewRecordHandler(conn *sql.DB, log *db.RecordLog, rb *rubric.Rubric, cfg cliparse.Config) *RecordHandler {
	return &RecordHandler{db: conn, log: log, rb: rb, cfg: cfg}
}

// requireSession validates the session token and returns the identity it
// is scoped to. Writes the error response itself on failure.
func requireSession(conn *sql.DB, w http.ResponseWriter, r *http.Request) (string, bool) {
	token := r.Header.Get(SessionTokenHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Session-Token header required")
		return "", false
	}

	var identityID string
	var expiresAt time.Time
	err := conn.QueryRow(`
		SELECT identity_id, expires_at FROM session WHERE token = $1
	`, token).Scan(&identityID, &expiresAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return "", false
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}
	if time.Now().After(expiresAt) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session expired")
		return "", false
	}
	return identityID, true
}

// requireOwnSession additionally checks that the session belongs to the
// identity named in the path.
func requireOwnSession(conn *sql.DB, w http.ResponseWriter, r *http.Request) (string, bool) {
	identityID := r.PathValue("id")
	if identityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity id is required")
		return "", false
	}
	sessionIdentity, ok := requireSession(conn, w, r)
	if !ok {
		return "", false
	}
	if sessionIdentity != identityID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Session is scoped to a different identity")
		return "", false
	}
	return identityID, true
}

// Append handles POST /records
// The write side of the log: validates, assigns ids, appends. There is no
// upsert and no conflict check - duplicates and stale snapshots are the
// reconciliation engine's problem, which is what lets clients write
// fire-and-forget.
func (h *RecordHandler) Append(w http.ResponseWriter, r *http.Request) {
	sessionIdentity, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	var req models.AppendRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Records) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "records cannot be empty")
		return
	}

	for i := range req.Records {
		rec := &req.Records[i]
		if rec.IdentityID != sessionIdentity {
			middleware.ErrorResponse(w, http.StatusForbidden, "records must belong to the session identity")
			return
		}
		if !h.rb.HasGroup(rec.GroupID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown group_id: "+rec.GroupID)
			return
		}
		if !submission.Known(rec.Status) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown status: "+rec.Status)
			return
		}
		for criterionID, score := range rec.Scores {
			c, ok := h.rb.Criterion(criterionID)
			if !ok {
				middleware.ErrorResponse(w, http.StatusBadRequest, "unknown criterion: "+criterionID)
				return
			}
			if score != nil && (*score < 0 || *score > c.MaxScore) {
				middleware.ErrorResponse(w, http.StatusBadRequest, "score for "+criterionID+" out of range")
				return
			}
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
	}

	if err := h.log.Append(req.Records); err != nil {
		slog.Error("failed to append records", "error", err, "identity_id", sessionIdentity)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to append records")
		return
	}

	slog.Info("records appended", "identity_id", sessionIdentity, "count", len(req.Records))

	middleware.JSONResponse(w, http.StatusAccepted, models.AppendResponse{
		Accepted: len(req.Records),
	})
}

// ListMyRecords handles GET /jurors/:id/records
// Returns the reconciled state per group for the session's identity.
func (h *RecordHandler) ListMyRecords(w http.ResponseWriter, r *http.Request) {
	identityID, ok := requireOwnSession(h.db, w, r)
	if !ok {
		return
	}

	records, err := h.log.Query(db.Filter{IdentityID: identityID})
	if err != nil {
		slog.Error("failed to query records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not load records")
		return
	}

	states := reconcile.ForIdentity(records, h.rb, identityID)

	middleware.JSONResponse(w, http.StatusOK, models.ListRecordsResponse{
		Records:    states,
		Completion: completionFor(states, h.rb),
	})
}

// CountFinalized handles GET /jurors/:id/finalized-count
func (h *RecordHandler) CountFinalized(w http.ResponseWriter, r *http.Request) {
	identityID, ok := requireOwnSession(h.db, w, r)
	if !ok {
		return
	}

	records, err := h.log.Query(db.Filter{IdentityID: identityID})
	if err != nil {
		slog.Error("failed to query records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not load records")
		return
	}

	count := 0
	for _, st := range reconcile.ForIdentity(records, h.rb, identityID) {
		if st.Status == models.StatusAllSubmitted {
			count++
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalizedCountResponse{Count: count})
}

// Finalize handles POST /jurors/:id/finalize
// Stamps every group's current record as all_submitted in one batch.
// Refused unless every group is complete; completeness is re-derived from
// the reconciled scores, not trusted from the stamped statuses.
func (h *RecordHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	identityID, ok := requireOwnSession(h.db, w, r)
	if !ok {
		return
	}

	records, err := h.log.Query(db.Filter{IdentityID: identityID})
	if err != nil {
		slog.Error("failed to query records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not load records")
		return
	}

	states := reconcile.ForIdentity(records, h.rb, identityID)
	if !submission.CanFinalize(reconcile.ByGroup(states), h.rb) {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot finalize: not every group is fully scored")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	batch := make([]models.EvaluationRecord, 0, len(states))
	for _, st := range states {
		rec := *st.Record
		rec.ID = uuid.NewString()
		rec.RecordedAt = now
		rec.Status = models.StatusAllSubmitted
		rec.EditingFlag = models.EditingNone
		batch = append(batch, rec)
	}

	if err := h.log.Append(batch); err != nil {
		slog.Error("failed to append finalize batch", "error", err, "identity_id", identityID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize")
		return
	}

	slog.Info("records finalized", "identity_id", identityID, "count", len(batch))

	middleware.JSONResponse(w, http.StatusOK, models.FinalizeResponse{Finalized: len(batch)})
}

// Reopen handles POST /jurors/:id/reopen
// Self-service "edit my scores": downgrades the identity's finalized
// records and marks them editing, without touching the credential.
func (h *RecordHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	identityID, ok := requireOwnSession(h.db, w, r)
	if !ok {
		return
	}

	reopened, err := reopenRecords(h.log, h.rb, identityID)
	if err != nil {
		slog.Error("failed to reopen records", "error", err, "identity_id", identityID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reopen records")
		return
	}

	slog.Info("records reopened", "identity_id", identityID, "count", reopened)

	middleware.JSONResponse(w, http.StatusOK, models.ReopenResponse{Reopened: reopened})
}

// reopenRecords appends a downgraded, editing-flagged copy of each of the
// identity's reconciled records. The log is append-only, so "setting the
// editing flag on recent records" means writing new ones; the prior
// all_submitted history stays visible in the log.
func reopenRecords(log *db.RecordLog, rb *rubric.Rubric, identityID string) (int, error) {
	records, err := log.Query(db.Filter{IdentityID: identityID})
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	var batch []models.EvaluationRecord
	for _, st := range reconcile.ForIdentity(records, rb, identityID) {
		if st.Record == nil {
			continue
		}
		rec := *st.Record
		rec.ID = uuid.NewString()
		rec.RecordedAt = now
		rec.Status = submission.ReopenTarget(rec.Scores, rb.Criteria)
		rec.EditingFlag = models.EditingActive
		batch = append(batch, rec)
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if err := log.Append(batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}
