package utils

import (
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates across the API.
const DateLayout = "2006-01-02"

// durationAliases are the historical field names for a trip's length in days.
var durationAliases = []string{"duration_days", "durationDays", "duration"}

// Nights returns the number of nights between two calendar dates, rounding
// partial days up. An empty date on either side yields 0. Ordering is the
// caller's problem; the distance is always non-negative.
func Nights(checkIn, checkOut string) int {
	if checkIn == "" || checkOut == "" {
		return 0
	}
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return 0
	}

	days := out.Sub(in).Hours() / 24
	return int(math.Ceil(math.Abs(days)))
}

// TripEndDate returns the last day of a trip using inclusive day counting:
// a 1-day trip ends on the day it starts.
func TripEndDate(start time.Time, durationDays int) time.Time {
	if durationDays < 1 {
		durationDays = 1
	}
	return start.AddDate(0, 0, durationDays-1)
}

// ResolveDurationDays reads a trip's duration from a raw document through the
// duration alias chain. Defaults to 1 when nothing usable is present.
func ResolveDurationDays(attrs map[string]interface{}) int {
	if days, ok := resolveNumberField(attrs, durationAliases); ok {
		return int(days)
	}
	return 1
}
