// Package state shares the employee and branch directory between the
// background poller and the UI.
//
// # Overview
//
// The directory is owned by an external service and refreshed periodically.
// The poller writes it into a Store; the UI reads immutable Snapshots on its
// own tick and hands the roster to the attendance sheet when Revision
// changes.
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ ListEmployees()│            │                  │
//	│ ListBranches() │            │                  │
//	│      ↓         │            │                  │
//	│ store.Update() │───────────→│ store.Snapshot() │
//	│      ↓         │  (mutex)   │      ↓           │
//	│  repeat...     │            │ sheet.SetRoster  │
//	└────────────────┘            └──────────────────┘
//
// # Update Semantics
//
// A successful Update replaces both slices, clears LastError and resets
// ConsecutiveFailures. A failed Update keeps the previous directory and
// records the error, so the grid keeps working against the last known
// roster while the header shows the offline badge.
//
// Store is the only structure in foreman touched by more than one
// goroutine. Attendance state itself lives on the UI event loop.
//
// The zero value is ready to use.
package state
