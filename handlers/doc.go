// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handler Groups

  - CredentialHandler: identity existence, PIN issuance, PIN verification
    with attempt lockout, administrative reset (credentials.go)
  - RecordHandler: record append, reconciled per-juror reads, finalize,
    self-service reopen (records.go)
  - AdminHandler: raw/reconciled export, group rankings and juror
    statistics, rubric reference data (admin.go)

# Aggregation

rankings.go holds the aggregation and ranking engine: per-group
per-criterion mean/min/max, overall averages as the mean of record
totals, deterministic descending ranking with ascending group-id
tie-break, and per-juror completion/consistency statistics. It consumes
reconciled state only - raw log rows never reach aggregation.

# Authentication

Three layers, checked in this order where applicable:

  - X-Deploy-Key: shared deployment secret, enforced in the router
    middleware for every route but /health
  - X-Session-Token: per-identity session from PIN verification, required
    for record reads and writes
  - X-Admin-Secret: administrator secret for reset, export, and results
*/
package handlers
