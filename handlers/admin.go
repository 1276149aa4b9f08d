// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"github.com/huguryildiz/senior-design-jury/auth"
	"github.com/huguryildiz/senior-design-jury/cliparse"
	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/middleware"
	"github.com/huguryildiz/senior-design-jury/models"
	"github.com/huguryildiz/senior-design-jury/reconcile"
	"github.com/huguryildiz/senior-design-jury/rubric"
)

type AdminHandler struct {
	db  *sql.DB
	log *db.RecordLog
	rb  *rubric.Rubric
	cfg cliparse.Config
}

func NewAdminHandler(conn *sql.DB, log *db.RecordLog, rb *rubric.Rubric, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: conn, log: log, rb: rb, cfg: cfg}
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.CheckSecret(r.Header.Get(AdminSecretHeader), h.cfg.AdminSecret); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin secret")
		return false
	}
	return true
}

// ExportAll handles GET /export?view=raw|reconciled
// Administrative reporting across all identities. "raw" returns the log
// as appended; "reconciled" returns one winning record per key.
func (h *AdminHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	view := r.URL.Query().Get("view")
	if view == "" {
		view = "raw"
	}
	if view != "raw" && view != "reconciled" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "view must be raw or reconciled")
		return
	}

	records, err := h.log.Query(db.Filter{})
	if err != nil {
		slog.Error("failed to query record log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not load records")
		return
	}

	if view == "reconciled" {
		merged := reconcile.Reconcile(records)
		records = records[:0]
		for _, st := range merged {
			records = append(records, *st.Record)
		}
		sort.Slice(records, func(i, j int) bool {
			if records[i].IdentityID != records[j].IdentityID {
				return records[i].IdentityID < records[j].IdentityID
			}
			return records[i].GroupID < records[j].GroupID
		})
	}

	if records == nil {
		records = []models.EvaluationRecord{}
	}

	slog.Info("export served", "view", view, "count", len(records))

	middleware.JSONResponse(w, http.StatusOK, models.ExportResponse{
		View:    view,
		Records: records,
	})
}

// GetResults handles GET /results?final_only=true
// Group rankings plus juror consistency statistics for the admin
// dashboard. final_only restricts input to all_submitted records.
func (h *AdminHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	finalOnly := r.URL.Query().Get("final_only") == "true"

	records, err := h.log.Query(db.Filter{})
	if err != nil {
		slog.Error("failed to query record log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not load records")
		return
	}

	groups := ComputeGroupRankings(records, h.rb, finalOnly)
	jurors := ComputeJurorStats(records, h.rb, finalOnly)

	// Attach display names where a credential exists; an identity that
	// appended records without ever getting a PIN stays id-only.
	for i := range jurors {
		var name string
		err := h.db.QueryRow(`
			SELECT display_name FROM credential WHERE identity_id = $1
		`, jurors[i].IdentityID).Scan(&name)
		if err == nil {
			jurors[i].DisplayName = name
		} else if err != sql.ErrNoRows {
			slog.Error("failed to query credential name", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		FinalOnly: finalOnly,
		Groups:    groups,
		Jurors:    jurors,
	})
}

// GetRubric handles GET /rubric
// Reference data for clients rendering the scoring form.
func (h *AdminHandler) GetRubric(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.rb)
}
