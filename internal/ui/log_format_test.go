package ui

import (
	"strings"
	"testing"

	"github.com/five82/foreman/internal/logtail"
)

func TestFormatLogEntries(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	if got := formatLogEntries(nil, styles); got != nil {
		t.Fatalf("formatLogEntries(nil) = %v, want nil", got)
	}

	entries := []logtail.Entry{
		logtail.Parse(`{"level":"warn","message":"attendance write failed","employee":"e2"}`),
		logtail.Parse("plain text line"),
	}
	lines := formatLogEntries(entries, styles)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "attendance write failed") || !strings.Contains(lines[0], "employee=e2") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "plain text line") {
		t.Fatalf("line 1 = %q", lines[1])
	}
}

func TestLevelStyle(t *testing.T) {
	styles := GetTheme("Slate").Styles()
	if got, want := levelStyle("ERROR", styles).GetForeground(), styles.DangerText.GetForeground(); got != want {
		t.Fatalf("error foreground = %v, want %v", got, want)
	}
	if got, want := levelStyle("warn", styles).GetForeground(), styles.WarningText.GetForeground(); got != want {
		t.Fatalf("warn foreground = %v, want %v", got, want)
	}
	if got, want := levelStyle("", styles).GetForeground(), styles.Text.GetForeground(); got != want {
		t.Fatalf("default foreground = %v, want %v", got, want)
	}
}
