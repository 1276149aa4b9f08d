// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile merges the append-only record log into canonical state.

Clients are uncoordinated writers: multiple tabs and devices for the same
juror append against the same log with no locking, no acknowledgment, and
no server-side serialization point. The log therefore accumulates
duplicates, stale snapshots, and reordered writes. This package derives
the single current record per (identity, group) key from that noise,
fresh on every read.

# Merge Rule

Within a key, the winner is chosen by a max-like reduction:

 1. later recorded_at wins
 2. exact timestamp tie: higher status priority wins
    (all_submitted > group_submitted > in_progress)
 3. remaining tie: lexically greater record id wins

The reduction is idempotent, commutative, and associative, so re-running
it on any subset or ordering of the records yields the same winner - the
entire safety argument for uncoordinated writers rests on this.

# Candidacy

Records with an unparseable recorded_at or with no non-empty score are
excluded before the merge. They can never win, never tie-break, and never
crash a read; a key with no surviving candidate simply reconciles to
not_started.
*/
package reconcile
