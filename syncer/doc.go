// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncer schedules client-side writes to the record log.

A client session is a single-threaded editor producing rapid local edits.
The scheduler coalesces them two ways:

  - a debounce window turns a burst of keystrokes into one append
  - a periodic background sync re-appends the full current state at a
    fixed interval, whether or not the debounce fired

The debounce is a soft cancellation mechanism, not a guarantee: closing a
tab mid-window loses the pending write, and nobody finds out, because
appends are fire-and-forget. Correctness never depends on any single
append landing - the periodic full re-append plus the reconciliation
engine's order-independent merge give eventual convergence across any
number of uncoordinated sessions.

	s := syncer.New(log, 0, 0) // default debounce and interval
	go s.Run(ctx)
	s.Update(record)           // on every local edit
*/
package syncer
