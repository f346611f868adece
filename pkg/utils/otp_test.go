package utils

import "testing"

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("OTP %q has length %d, want 6", otp, len(otp))
		}
		for _, ch := range otp {
			if ch < '0' || ch > '9' {
				t.Fatalf("OTP %q contains non-digit %q", otp, ch)
			}
		}
		seen[otp] = true
	}
	if len(seen) < 2 {
		t.Error("50 generated OTPs were all identical")
	}
}
