package expiration

import (
	"testing"
	"time"
)

// Fixed clock: mid-afternoon so midnight normalization matters.
var now = time.Date(2025, 6, 10, 15, 30, 0, 0, time.Local)

func date(daysFromNow int) string {
	return now.AddDate(0, 0, daysFromNow).Format(DateLayout)
}

func TestClassifyNoDate(t *testing.T) {
	r := Classify("", 3, now)
	if r.Status != StatusSafe {
		t.Errorf("expected safe for missing date, got %q", r.Status)
	}
	if r.DaysUntil != nil {
		t.Errorf("expected nil day count for missing date, got %d", *r.DaysUntil)
	}
}

func TestClassifyMalformedDate(t *testing.T) {
	for _, bad := range []string{"tomorrow", "2025-13-40", "06/10/2025", "2025-6-1x"} {
		r := Classify(bad, 3, now)
		if r.Status != StatusSafe || r.DaysUntil != nil {
			t.Errorf("Classify(%q) = %+v, want safe with nil days", bad, r)
		}
	}
}

func TestClassifyExpiredYesterday(t *testing.T) {
	r := Classify(date(-1), 3, now)
	if r.Status != StatusExpired {
		t.Errorf("expected expired, got %q", r.Status)
	}
	if r.DaysUntil == nil || *r.DaysUntil != -1 {
		t.Errorf("expected days -1, got %v", r.DaysUntil)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	const warning = 3
	tests := []struct {
		days   int
		status string
	}{
		{-5, StatusExpired},
		{-1, StatusExpired},
		{0, StatusExpiring},
		{1, StatusExpiring},
		{warning, StatusExpiring},     // exactly at the window edge
		{warning + 1, StatusSafe},     // one day further out
		{warning + 30, StatusSafe},
	}
	for _, tt := range tests {
		r := Classify(date(tt.days), warning, now)
		if r.Status != tt.status {
			t.Errorf("Classify(+%d days, %d) = %q, want %q", tt.days, warning, r.Status, tt.status)
		}
		if r.DaysUntil == nil || *r.DaysUntil != tt.days {
			t.Errorf("Classify(+%d days) day count = %v, want %d", tt.days, r.DaysUntil, tt.days)
		}
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// The same calendar date must classify identically at 00:01 and 23:59.
	early := time.Date(2025, 6, 10, 0, 1, 0, 0, time.Local)
	late := time.Date(2025, 6, 10, 23, 59, 0, 0, time.Local)

	for _, clock := range []time.Time{early, late} {
		r := Classify("2025-06-12", 3, clock)
		if r.DaysUntil == nil || *r.DaysUntil != 2 {
			t.Errorf("at %v expected 2 days until, got %v", clock, r.DaysUntil)
		}
	}
}

func TestDisplayText(t *testing.T) {
	intp := func(n int) *int { return &n }
	tests := []struct {
		days *int
		want string
	}{
		{nil, "No expiration"},
		{intp(-3), "Expired 3 days ago"},
		{intp(-1), "Expired 1 day ago"},
		{intp(0), "Expires today"},
		{intp(1), "Expires tomorrow"},
		{intp(6), "Expires in 6 days"},
	}
	for _, tt := range tests {
		if got := DisplayText(tt.days); got != tt.want {
			t.Errorf("DisplayText(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
