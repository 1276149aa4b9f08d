// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides database setup and the append-only record log.

# Drivers

Open selects the driver from configuration:

  - "postgres": github.com/lib/pq
  - "sqlite":   modernc.org/sqlite (pure Go, also used by the test suite)

Queries stick to SQL both engines accept, including $1 placeholders,
which sqlite treats as named parameters.

# Schema

CreateSchema creates three tables, idempotently:

  - credential: one row per identity (PIN, failure counter, lock state)
  - session: short-lived tokens from successful PIN verification
  - evaluation_record: the append-only log

# Record Log Contract

RecordLog models the log store at its interface: Append and Query only.
Rows in evaluation_record are immutable. The log accumulates every write
from every session, including duplicates and stale snapshots, and the
reconciliation engine derives the canonical state on read. Nothing in
this package ever updates or deletes a record row.

recorded_at is stored as the raw client-supplied string and scores as a
JSON text column, so a malformed record survives storage and query and is
dealt with at reconciliation time.
*/
package db
