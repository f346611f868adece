package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

// referenceAlphabet omits ambiguous characters (0/O, 1/I/L) so the code
// survives being read over the phone.
const referenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateBookingReference returns a human-readable booking reference:
// a prefix, the booking date, and a random suffix.
func GenerateBookingReference(prefix string) (string, error) {
	if prefix == "" {
		prefix = "WND"
	}

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %v", err)
	}
	for i, b := range suffix {
		suffix[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), string(suffix)), nil
}
