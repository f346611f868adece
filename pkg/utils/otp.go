package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPExpiration is how long a verification or reset code stays valid.
const OTPExpiration = 15 * time.Minute

// GenerateOTP returns a random 6-digit one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %v", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendPasswordResetOTP delivers the code by email, and by SMS when a
// phone number is on file.
func SendPasswordResetOTP(email, phone, otp string) error {
	if err := SendPasswordResetEmail(email, otp); err != nil {
		return fmt.Errorf("failed to send OTP via email: %v", err)
	}

	if phone != "" {
		if err := SendPasswordResetSMS(phone, otp); err != nil {
			return fmt.Errorf("failed to send OTP via SMS: %v", err)
		}
	}

	return nil
}
