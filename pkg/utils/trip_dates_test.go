package utils

import (
	"testing"
	"time"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"four night stay", "2024-07-01", "2024-07-05", 4},
		{"single night", "2024-07-01", "2024-07-02", 1},
		{"same date", "2024-07-01", "2024-07-01", 0},
		{"reversed order still positive", "2024-07-05", "2024-07-01", 4},
		{"empty check-in", "", "2024-07-05", 0},
		{"empty check-out", "2024-07-01", "", 0},
		{"unparseable date", "not-a-date", "2024-07-05", 0},
		{"across month boundary", "2024-01-30", "2024-02-02", 3},
		{"leap day span", "2024-02-28", "2024-03-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights(%q, %q) = %d, want %d", tt.checkIn, tt.checkOut, got, tt.want)
			}
		})
	}
}

func TestTripEndDate(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	// Inclusive counting: a 1-day trip ends on its start day
	if got := TripEndDate(start, 1); !got.Equal(start) {
		t.Errorf("TripEndDate(start, 1) = %v, want %v", got, start)
	}

	want := time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC)
	if got := TripEndDate(start, 7); !got.Equal(want) {
		t.Errorf("TripEndDate(start, 7) = %v, want %v", got, want)
	}

	// Degenerate durations clamp to 1
	if got := TripEndDate(start, 0); !got.Equal(start) {
		t.Errorf("TripEndDate(start, 0) = %v, want %v", got, start)
	}
	if got := TripEndDate(start, -3); !got.Equal(start) {
		t.Errorf("TripEndDate(start, -3) = %v, want %v", got, start)
	}
}

func TestResolveDurationDays(t *testing.T) {
	if got := ResolveDurationDays(map[string]interface{}{"duration_days": 5.0}); got != 5 {
		t.Errorf("duration_days = %d, want 5", got)
	}
	if got := ResolveDurationDays(map[string]interface{}{"durationDays": 3.0}); got != 3 {
		t.Errorf("durationDays = %d, want 3", got)
	}
	if got := ResolveDurationDays(map[string]interface{}{"duration": "4"}); got != 4 {
		t.Errorf("duration string = %d, want 4", got)
	}
	if got := ResolveDurationDays(nil); got != 1 {
		t.Errorf("nil attrs = %d, want 1", got)
	}
	if got := ResolveDurationDays(map[string]interface{}{"duration": -2.0}); got != 1 {
		t.Errorf("negative duration = %d, want 1", got)
	}
}
