package attendance

import (
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2025, time.April, 30},
		{2025, time.January, 31},
		{2025, time.December, 31},
		{1900, time.February, 28},
		{2000, time.February, 29},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestDaysIn_MatchesCalendarForEveryMonth(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			last := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
			if got := DaysIn(year, month); got != last {
				t.Fatalf("DaysIn(%d, %s) = %d, want %d", year, month, got, last)
			}
		}
	}
}

func TestMonthContext_IsFuture(t *testing.T) {
	c := NewMonthContext(fixedNow)
	if c.IsFuture() {
		t.Fatalf("current month reported as future")
	}

	tests := []struct {
		name  string
		month Month
		want  bool
	}{
		{"previous", may2025, false},
		{"current", june2025, false},
		{"next", july2025, true},
		{"next year january", Month{Year: 2026, Month: time.January}, true},
		{"last year december", Month{Year: 2024, Month: time.December}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.set(tt.month)
			if got := c.IsFuture(); got != tt.want {
				t.Fatalf("IsFuture(%s) = %v, want %v", tt.month.Key(), got, tt.want)
			}
		})
	}
}

func TestMonthContext_TicketsAreGenerationTagged(t *testing.T) {
	c := NewMonthContext(fixedNow)
	first := c.set(may2025)
	if !c.Current(first) {
		t.Fatalf("fresh ticket not current")
	}
	second := c.next()
	if c.Current(first) {
		t.Fatalf("superseded ticket still current")
	}
	if second.Generation <= first.Generation {
		t.Fatalf("generation did not increase: %d -> %d", first.Generation, second.Generation)
	}
	third := c.set(june2025)
	if c.Current(second) || !c.Current(third) {
		t.Fatalf("month change did not supersede previous ticket")
	}
}

func TestMonth_ShiftAndFormat(t *testing.T) {
	m := Month{Year: 2025, Month: time.January}
	if got := m.Shift(-1); got != (Month{Year: 2024, Month: time.December}) {
		t.Fatalf("Shift(-1) = %+v, want Dec 2024", got)
	}
	if got := m.Shift(13); got != (Month{Year: 2026, Month: time.February}) {
		t.Fatalf("Shift(13) = %+v, want Feb 2026", got)
	}
	if m.Key() != "2025-01" || m.Label() != "Jan 2025" {
		t.Fatalf("Key/Label = %q/%q", m.Key(), m.Label())
	}
	parsed, err := ParseMonth("2024-02")
	if err != nil || parsed != (Month{Year: 2024, Month: time.February}) {
		t.Fatalf("ParseMonth = %+v, %v", parsed, err)
	}
	if _, err := ParseMonth("2024/02"); err == nil {
		t.Fatalf("ParseMonth accepted malformed key")
	}
}
