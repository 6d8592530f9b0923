// Package app is the composition root for foreman.
//
// # Overview
//
// Run wires configuration, logging, preferences, the attendance API client,
// the directory poller and the UI, then blocks in the TUI until the user
// quits or the context is cancelled. Dump and Serve are the headless
// entry points behind the dump and devserver subcommands.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml, .env and FOREMAN_* vars
//	       ├─────> logging.New()        JSON log file (the TUI owns the terminal)
//	       ├─────> prefs.Load()         Theme and branch filter
//	       ├─────> factory.NewClient()  Attendance/directory HTTP client
//	       ├─────> Poller.Refresh()     First directory fetch
//	       ├─────> Poller.Start()       Background directory refresh
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Polling Behavior
//
// The poller refreshes employees and branches into a state.Store every 30
// seconds by default. After a failure the delay doubles per consecutive
// failure, capped at five minutes, and the previous directory stays in the
// store. Month data is not polled; it is read on month change, after each
// save and on demand.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable or invalid configuration, a
// log file that cannot be opened, an unusable API base URL.
//
// Recoverable errors (logged, the UI keeps running): directory poll failures,
// month load failures, failed writes.
package app
