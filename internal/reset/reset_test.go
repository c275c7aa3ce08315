package reset

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, value string, loc *time.Location) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", value, err)
	}
	return parsed
}

func TestEligible_CooldownBoundary(t *testing.T) {
	loc := time.FixedZone("TEST", -5*3600)
	completed := mustParse(t, "2024-01-15T23:59:00", loc)

	tests := []struct {
		name string
		now  string
		want bool
	}{
		{"immediately after completion", "2024-01-15T23:59:01", false},
		{"one millisecond before midnight", "2024-01-15T23:59:59", false},
		{"exactly at midnight", "2024-01-16T00:00:00", true},
		{"well after midnight", "2024-01-16T08:00:00", true},
		{"next evening", "2024-01-16T23:00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := mustParse(t, tt.now, loc)
			if got := Eligible(&completed, now); got != tt.want {
				t.Errorf("Eligible(%s, %s) = %v, want %v", completed, now, got, tt.want)
			}
		})
	}

	// Sub-second precision: one nanosecond before midnight is still cooling.
	almostMidnight := mustParse(t, "2024-01-16T00:00:00", loc).Add(-time.Nanosecond)
	if Eligible(&completed, almostMidnight) {
		t.Error("Eligible() should be false one nanosecond before local midnight")
	}
}

func TestEligible_NilRecord(t *testing.T) {
	now := time.Now()
	if !Eligible(nil, now) {
		t.Error("Eligible(nil) should be true: no record means no cooldown")
	}
}

func TestEligible_EarlyMorningCompletion(t *testing.T) {
	// Completing at 00:05 starts a fresh cooldown lasting until the NEXT
	// midnight, not the one five minutes earlier.
	loc := time.UTC
	completed := mustParse(t, "2024-01-16T00:05:00", loc)

	sameDay := mustParse(t, "2024-01-16T23:59:00", loc)
	if Eligible(&completed, sameDay) {
		t.Error("completion at 00:05 should cool down until the following midnight")
	}

	nextDay := mustParse(t, "2024-01-17T00:00:00", loc)
	if !Eligible(&completed, nextDay) {
		t.Error("completion at 00:05 should be eligible at the following midnight")
	}
}

func TestNextRollover_MonthAndYearBoundaries(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		completed string
		want      string
	}{
		{"2024-01-31T12:00:00", "2024-02-01T00:00:00"},
		{"2024-02-28T12:00:00", "2024-02-29T00:00:00"}, // leap year
		{"2024-12-31T23:59:59", "2025-01-01T00:00:00"},
	}

	for _, tt := range tests {
		completed := mustParse(t, tt.completed, loc)
		want := mustParse(t, tt.want, loc)
		if got := NextRollover(completed); !got.Equal(want) {
			t.Errorf("NextRollover(%s) = %s, want %s", completed, got, want)
		}
	}
}

func TestNextRollover_UsesCompletionLocation(t *testing.T) {
	// Midnight is the device's local midnight, not UTC midnight.
	loc := time.FixedZone("UTC+9", 9*3600)
	completed := mustParse(t, "2024-03-01T20:00:00", loc)

	rollover := NextRollover(completed)
	if rollover.Hour() != 0 || rollover.Minute() != 0 {
		t.Errorf("NextRollover() = %s, want local midnight", rollover)
	}
	if rollover.Location() != loc {
		t.Errorf("NextRollover() location = %v, want %v", rollover.Location(), loc)
	}
}

func TestRemaining(t *testing.T) {
	loc := time.UTC
	completed := mustParse(t, "2024-03-01T08:00:00", loc)
	now := mustParse(t, "2024-03-01T08:00:00", loc)

	got := Remaining(&completed, now)
	want := 16 * time.Hour
	if got != want {
		t.Errorf("Remaining() = %v, want %v", got, want)
	}

	after := mustParse(t, "2024-03-02T00:00:01", loc)
	if got := Remaining(&completed, after); got != 0 {
		t.Errorf("Remaining() after rollover = %v, want 0", got)
	}

	if got := Remaining(nil, now); got != 0 {
		t.Errorf("Remaining(nil) = %v, want 0", got)
	}
}

func TestUntilNextMidnight(t *testing.T) {
	loc := time.UTC
	now := mustParse(t, "2024-03-01T23:00:00", loc)

	if got := UntilNextMidnight(now); got != time.Hour {
		t.Errorf("UntilNextMidnight() = %v, want 1h", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{-time.Minute, "now"},
		{30 * time.Second, "0h 1m"}, // rounds up, never shows 0h 0m while cooling
		{time.Minute, "0h 1m"},
		{16 * time.Hour, "16h 0m"},
		{15*time.Hour + 59*time.Minute + time.Second, "16h 0m"},
		{23*time.Hour + 59*time.Minute, "23h 59m"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
