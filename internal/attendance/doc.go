// Package attendance holds the state and rules of the monthly attendance grid.
//
// # Overview
//
// A Sheet is the in-memory model behind the grid: one row per active
// employee, one column per day of the active month. Each cell is Unmarked,
// Present or Absent. The Sheet owns everything scoped to the month it shows:
//
//   - Matrix: sparse per-employee day→status rows
//   - Remarks: free-text note per employee
//   - Totals: present/absent counts reported by the server
//   - PendingRecords: remote record ids, which lock rows until selected
//   - Gate: the selection set that unlocks rows for edit and save
//   - Painter: drag and range-fill gesture state
//
// Switching month discards all of it and returns a LoadTicket.
//
// # Loads
//
// Every month change or reload bumps a generation counter. A Reconciler
// fetch carries the ticket it was issued with and ApplyLoad discards any
// result whose ticket is no longer current, so a slow response for a
// previous month can never overwrite the month on screen. An empty
// snapshot means the month holds no data and clears every row.
//
// # Writes
//
// PlanSave and PlanMarkAllPresent validate against the current state and
// return value plans. Batcher runs per-employee writes concurrently and
// reports every outcome; Bulk runs one call per (day, branch) in order.
// FinishSave and FinishMarkAll turn the reports into notices and return the
// ticket for the follow-up reload.
//
// # Concurrency
//
// Sheet is not safe for concurrent use. The UI calls it only from its event
// loop. Reconciler, Batcher and Bulk touch no Sheet state and may run on any
// goroutine.
package attendance
