// Package devserver is an in-memory stand-in for the factory attendance API.
//
// It serves the same routes the factory client calls, validates request
// bodies with the wire types' validator tags and keeps everything in a
// mutex-guarded Store. `foreman devserver` runs it against a seeded demo
// directory so the TUI can be exercised without the real backend.
//
// DELETE /api/companies/{company}/attendance?year=&month= drops a month's
// records, which is how a "cleared" month is produced for manual testing.
package devserver
