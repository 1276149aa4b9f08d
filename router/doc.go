// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method-and-pattern syntax on the standard ServeMux.
Every route except GET /health is wrapped in request logging and the
shared deployment-key check.

	GET  /health                       liveness, no deploy key
	GET  /jurors/{id}                  credential existence
	POST /jurors/{id}/pin              first-contact PIN issuance
	POST /jurors/{id}/verify           PIN check, session token on success
	POST /jurors/{id}/reset            admin lockout reset + reopen
	POST /records                      append evaluation records
	GET  /jurors/{id}/records          reconciled per-group state
	GET  /jurors/{id}/finalized-count  all_submitted group count
	POST /jurors/{id}/finalize         batch all_submitted stamp
	POST /jurors/{id}/reopen           self-service edit window
	GET  /export                       admin raw/reconciled export
	GET  /results                      admin rankings + juror stats
	GET  /rubric                       groups and criteria reference data
*/
package router
