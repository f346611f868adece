package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// Nairobi CBD to Jomo Kenyatta International Airport, roughly 13.5 km
	got := HaversineDistance(-1.2864, 36.8172, -1.3192, 36.9278)
	if math.Abs(got-13.5) > 1.5 {
		t.Errorf("Nairobi CBD to JKIA = %.2f km, want ~13.5", got)
	}

	if got := HaversineDistance(-1.2864, 36.8172, -1.2864, 36.8172); got != 0 {
		t.Errorf("identical points = %v, want 0", got)
	}
}

func TestIsWithinRadius(t *testing.T) {
	if !IsWithinRadius(-1.2864, 36.8172, -1.3192, 36.9278, 20) {
		t.Error("points ~13.5 km apart should be within a 20 km radius")
	}
	if IsWithinRadius(-1.2864, 36.8172, -1.3192, 36.9278, 5) {
		t.Error("points ~13.5 km apart should not be within a 5 km radius")
	}
}
