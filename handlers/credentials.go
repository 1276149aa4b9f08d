// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/huguryildiz/senior-design-jury/auth"
	"github.com/huguryildiz/senior-design-jury/cliparse"
	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/identity"
	"github.com/huguryildiz/senior-design-jury/middleware"
	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/rubric"
)

// AdminSecretHeader carries the administrator secret for reset/export.
const AdminSecretHeader = "X-Admin-Secret"

type CredentialHandler struct {
	db  *sql.DB
	log *db.RecordLog
	rb  *rubric.Rubric
	cfg cliparse.Config
}

func NewCredentialHandler(conn *sql.DB, log *db.RecordLog, rb *rubric.Rubric, cfg cliparse.Config) *CredentialHandler {
	return &CredentialHandler{db: conn, log: log, rb: rb, cfg: cfg}
}

// CheckIdentity handles GET /jurors/:id
func (h *CredentialHandler) CheckIdentity(w http.ResponseWriter, r *http.Request) {
	identityID := r.PathValue("id")
	if identityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM credential WHERE identity_id = $1)
	`, identityID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check credential", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckIdentityResponse{Exists: exists})
}

// IssuePin handles POST /jurors/:id/pin
// Creates the credential on first contact. The PIN is returned exactly
// once; the system has no way to resend it.
func (h *CredentialHandler) IssuePin(w http.ResponseWriter, r *http.Request) {
	identityID := r.PathValue("id")
	if identityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity id is required")
		return
	}

	var req models.IssuePinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.DisplayName == "" || req.Organization == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name and organization are required")
		return
	}

	// The id is derived, never chosen. Recompute it and refuse a mismatch
	// so a client bug cannot attach a credential to someone else's id.
	if resolved := identity.Resolve(req.DisplayName, req.Organization); resolved != identityID {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "identity id does not match display_name and organization")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM credential WHERE identity_id = $1)
	`, identityID).Scan(&exists)
	if err != nil {
		slog.Error("failed to check credential", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "PIN already issued for this identity")
		return
	}

	pin, err := auth.GeneratePIN()
	if err != nil {
		slog.Error("failed to generate pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue PIN")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO credential (identity_id, display_name, organization, pin, failed_attempts, locked, created_at)
		VALUES ($1, $2, $3, $4, 0, FALSE, $5)
	`, identityID, req.DisplayName, req.Organization, pin, time.Now())
	if err != nil {
		slog.Error("failed to insert credential", "error", err, "identity_id", identityID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue PIN")
		return
	}

	slog.Info("pin issued", "identity_id", identityID, "organization", req.Organization)

	middleware.JSONResponse(w, http.StatusCreated, models.IssuePinResponse{
		IdentityID: identityID,
		Pin:        pin,
	})
}

// VerifyPin handles POST /jurors/:id/verify
func (h *CredentialHandler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	identityID := r.PathValue("id")
	if identityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity id is required")
		return
	}

	var req models.VerifyPinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !auth.ValidPINFormat(req.Pin) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pin must be exactly 4 digits")
		return
	}

	var stored string
	var failedAttempts int
	var locked bool
	err := h.db.QueryRow(`
		SELECT pin, failed_attempts, locked FROM credential WHERE identity_id = $1
	`, identityID).Scan(&stored, &failedAttempts, &locked)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No credential for this identity")
		return
	}
	if err != nil {
		slog.Error("failed to query credential", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Locked credentials short-circuit: no counter movement, no hints,
	// until an administrator resets.
	if locked {
		middleware.JSONResponse(w, http.StatusOK, models.VerifyPinResponse{
			Valid:        false,
			Locked:       true,
			AttemptsLeft: 0,
		})
		return
	}

	if !auth.PINMatches(stored, req.Pin) {
		failedAttempts++
		nowLocked := failedAttempts >= auth.MaxPINAttempts
		_, err = h.db.Exec(`
			UPDATE credential SET failed_attempts = $1, locked = $2 WHERE identity_id = $3
		`, failedAttempts, nowLocked, identityID)
		if err != nil {
			slog.Error("failed to record failed attempt", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if nowLocked {
			slog.Warn("credential locked", "identity_id", identityID)
		}

		middleware.JSONResponse(w, http.StatusOK, models.VerifyPinResponse{
			Valid:        false,
			Locked:       nowLocked,
			AttemptsLeft: auth.MaxPINAttempts - failedAttempts,
		})
		return
	}

	// Match: clear the failure counter and open a session.
	_, err = h.db.Exec(`
		UPDATE credential SET failed_attempts = 0 WHERE identity_id = $1
	`, identityID)
	if err != nil {
		slog.Error("failed to reset attempt counter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to open session")
		return
	}

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO session (token, identity_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, token, identityID, now.Add(h.cfg.SessionTTL), now)
	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to open session")
		return
	}

	slog.Info("pin verified", "identity_id", identityID)

	middleware.JSONResponse(w, http.StatusOK, models.VerifyPinResponse{
		Valid:        true,
		Locked:       false,
		AttemptsLeft: auth.MaxPINAttempts,
		SessionToken: token,
	})
}

// ResetCredential handles POST /jurors/:id/reset
// Administrator-only. Clears the lockout and reopens the identity's
// records so downstream consumers see the edit window.
func (h *CredentialHandler) ResetCredential(w http.ResponseWriter, r *http.Request) {
	identityID := r.PathValue("id")
	if identityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity id is required")
		return
	}

	if err := auth.CheckSecret(r.Header.Get(AdminSecretHeader), h.cfg.AdminSecret); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin secret")
		return
	}

	res, err := h.db.Exec(`
		UPDATE credential SET failed_attempts = 0, locked = FALSE WHERE identity_id = $1
	`, identityID)
	if err != nil {
		slog.Error("failed to reset credential", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No credential for this identity")
		return
	}

	reopened, err := reopenRecords(h.log, h.rb, identityID)
	if err != nil {
		slog.Error("failed to reopen records", "error", err, "identity_id", identityID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reopen records")
		return
	}

	slog.Info("credential reset", "identity_id", identityID, "reopened", reopened)

	middleware.JSONResponse(w, http.StatusOK, models.ResetCredentialResponse{
		OK:       true,
		Reopened: reopened,
	})
}
