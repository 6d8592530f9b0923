// Package logtail reads the tail of foreman's structured log file for the
// in-app log overlay.
//
// Read extracts the last N lines with a ring buffer in a single pass, so
// memory stays O(N) regardless of file size. Parse decodes the zerolog JSON
// lines written by internal/logging and Format renders them as compact
// one-line text:
//
//	lines, err := logtail.ReadEntries(cfg.LogFile, 400)
//	for _, e := range lines {
//		fmt.Println(logtail.Format(e, time.Local))
//	}
//
// Lines that are not JSON (a panic trace, for instance) are kept verbatim.
package logtail
