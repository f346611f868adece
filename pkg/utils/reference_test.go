package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateBookingReferenceFormat(t *testing.T) {
	ref, err := GenerateBookingReference("WND")
	if err != nil {
		t.Fatalf("GenerateBookingReference() error = %v", err)
	}

	parts := strings.Split(ref, "-")
	if len(parts) != 3 {
		t.Fatalf("reference %q should have 3 dash-separated parts", ref)
	}
	if parts[0] != "WND" {
		t.Errorf("prefix = %q, want WND", parts[0])
	}
	if parts[1] != time.Now().UTC().Format("20060102") {
		t.Errorf("date part = %q, want today's date", parts[1])
	}
	if len(parts[2]) != 6 {
		t.Errorf("suffix %q should be 6 characters", parts[2])
	}
	for _, ch := range parts[2] {
		if !strings.ContainsRune(referenceAlphabet, ch) {
			t.Errorf("suffix character %q not in reference alphabet", ch)
		}
	}
}

func TestGenerateBookingReferenceDefaultPrefix(t *testing.T) {
	ref, err := GenerateBookingReference("")
	if err != nil {
		t.Fatalf("GenerateBookingReference() error = %v", err)
	}
	if !strings.HasPrefix(ref, "WND-") {
		t.Errorf("reference %q should use the default prefix", ref)
	}
}

func TestGenerateBookingReferenceUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := GenerateBookingReference("WND")
		if err != nil {
			t.Fatalf("GenerateBookingReference() error = %v", err)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q after %d generations", ref, i)
		}
		seen[ref] = true
	}
}
