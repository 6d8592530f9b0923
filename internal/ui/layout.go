package ui

import "time"

// Grid geometry, in terminal cells.
const (
	// headerLines is the number of lines above the grid's day header.
	headerLines = 2

	// gutterWidth holds the selection and lock markers.
	gutterWidth = 3

	// nameColumnWidth is the width of the employee name column.
	nameColumnWidth = 18

	// totalsColumnWidth is the width of the present/absent totals column.
	totalsColumnWidth = 10

	// footerLines is the number of lines below the grid.
	footerLines = 1

	// helpModalWidth is the width of the help overlay.
	helpModalWidth = 44
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutWideWidth is the minimum width for three-cell day columns.
	LayoutWideWidth = 132
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read into the log view.
	LogTailLines = 500
)

// Timing constants.
const (
	// NoticeTTL is how long a notice stays on the status line.
	NoticeTTL = 8 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
