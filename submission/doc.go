// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission implements the record lifecycle state machine.

# States

In increasing completeness order:

	not_started → in_progress → group_submitted → all_submitted

Transitions are triggered by the writer, which decides what status to
stamp before appending. The reconciliation engine only classifies what it
reads; it never upgrades or downgrades a status on its own.

  - not_started → in_progress: any criterion score becomes non-empty
  - in_progress → group_submitted: every criterion is filled
  - group_submitted → in_progress: clearing any score downgrades the next
    stamp
  - group_submitted → all_submitted: the distinct finalize action stamps
    every group in one batch, after a completeness check across all groups
  - all_submitted → in_progress/group_submitted: reopen, by administrative
    credential reset or the juror's own edit action

# Editing Flag

Reopening additionally sets editing_flag = "editing" on the appended
records. The flag is deliberately orthogonal to status: status answers
"how complete was the last write", the flag answers "is this currently
open for revision", and the two can disagree during a reopen window.

# Priority

Priority orders statuses for exact-timestamp tie-breaking during
reconciliation: all_submitted (3) > group_submitted (2) > in_progress (1)
> not_started (0). Unknown statuses rank below all of these.
*/
package submission
