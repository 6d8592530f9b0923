package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Str("employee", "e1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"employee":"e1"`) {
		t.Fatalf("output = %q, want warn line with fields", out)
	}
}

func TestNew_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "foreman.log")
	log, closer, err := New(path, "info")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"app":"foreman"`) {
		t.Fatalf("log file = %q, want app field", data)
	}
}

func TestNew_EmptyPathFails(t *testing.T) {
	if _, _, err := New("  ", "info"); err == nil {
		t.Fatalf("New(empty) returned nil error")
	}
}
