// Package ui provides the terminal attendance grid for foreman.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns an attendance.Sheet and is the
// only code that mutates it: every key press, mouse event and completed
// remote call arrives as a message in Update. Loads, saves and the bulk
// "mark all present" sequence run as tea.Cmds and hand their results back as
// loadMsg, saveMsg and bulkMsg.
//
// # Layout
//
//   - Header: company, month, read-only indicator, branch filter, selection
//     count, in-flight work and the directory poll state
//   - Command bar: key hints
//   - Grid: one row per visible employee, one column per day, then totals
//   - Status line: the latest notice, or a legend once it expires
//
// # Gestures
//
// A left press on a day cell starts a drag that paints the toggled status of
// that cell across the row as the pointer moves. Shift+press fills from the
// last anchor. The keyboard offers the same gestures: space toggles, v starts
// and ends a paint, f fills to the anchor.
//
// # Directory
//
// The employee and branch directory is read from state.Store on every tick.
// New revisions replace the sheet roster; the first one also reloads the
// month.
//
// # Themes
//
// Nightfox, Kanagawa and Slate color the cells; T cycles between them and the
// choice is written to the preferences file together with the branch filter.
package ui
