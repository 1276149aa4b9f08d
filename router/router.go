// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/huguryildiz/senior-design-jury/cliparse"
	"github.com/huguryildiz/senior-design-jury/db"
	"github.com/huguryildiz/senior-design-jury/handlers"
	"github.com/huguryildiz/senior-design-jury/middleware"
	"github.com/huguryildiz/senior-design-jury/rubric"
)

func NewRouter(conn *sql.DB, rb *rubric.Rubric, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	log := db.NewRecordLog(conn)

	// Initialize handlers
	credentialHandler := handlers.NewCredentialHandler(conn, log, rb, cfg)
	recordHandler := handlers.NewRecordHandler(conn, log, rb, cfg)
	adminHandler := handlers.NewAdminHandler(conn, log, rb, cfg)

	// Every route except the health check sits behind the deploy key.
	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithDeployKey(cfg.DeployKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity and credential gate
	mux.HandleFunc("GET /jurors/{id}", guard(credentialHandler.CheckIdentity))
	mux.HandleFunc("POST /jurors/{id}/pin", guard(credentialHandler.IssuePin))
	mux.HandleFunc("POST /jurors/{id}/verify", guard(credentialHandler.VerifyPin))
	mux.HandleFunc("POST /jurors/{id}/reset", guard(credentialHandler.ResetCredential))

	// Record operations (session-scoped)
	mux.HandleFunc("POST /records", guard(recordHandler.Append))
	mux.HandleFunc("GET /jurors/{id}/records", guard(recordHandler.ListMyRecords))
	mux.HandleFunc("GET /jurors/{id}/finalized-count", guard(recordHandler.CountFinalized))
	mux.HandleFunc("POST /jurors/{id}/finalize", guard(recordHandler.Finalize))
	mux.HandleFunc("POST /jurors/{id}/reopen", guard(recordHandler.Reopen))

	// Administrative reporting
	mux.HandleFunc("GET /export", guard(adminHandler.ExportAll))
	mux.HandleFunc("GET /results", guard(adminHandler.GetResults))

	// Reference data
	mux.HandleFunc("GET /rubric", guard(adminHandler.GetRubric))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jury-server API v1"))
	})

	return mux
}
