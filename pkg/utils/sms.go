package utils

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	username = os.Getenv("AT_USERNAME")
	apiKey   = os.Getenv("AT_API_KEY")
)

func sendSMS(message string, recipients []string) error {
	if username == "" {
		return fmt.Errorf("africa's talking username not set")
	}

	if apiKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	baseURL := "https://api.africastalking.com/version1/messaging"
	log.Printf("Sending SMS to recipients: %v", recipients)

	// Prepare the form data
	data := url.Values{}
	data.Set("username", username)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	// Create the request
	req, err := http.NewRequest("POST", baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", apiKey)
	req.Header.Set("Accept", "application/json")

	// Send the request
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	// Check response status
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	log.Printf("Successfully sent SMS to recipients")
	return nil
}

// SendBookingConfirmationSMS notifies the main booker that the booking was
// received.
func SendBookingConfirmationSMS(phone, reference, itemTitle string) error {
	msg := fmt.Sprintf("Wanderly: your booking %s for %s has been received. We will notify you once it is confirmed.",
		reference, itemTitle)

	return sendSMS(msg, []string{phone})
}

// SendBookingStatusSMS notifies the main booker of a status change.
func SendBookingStatusSMS(phone, reference, status string) error {
	msg := fmt.Sprintf("Wanderly: booking %s is now %s. Log in to see the details.", reference, status)
	return sendSMS(msg, []string{phone})
}

// SendPasswordResetSMS sends the reset code over SMS when a phone number is
// on file.
func SendPasswordResetSMS(phone, otp string) error {
	msg := fmt.Sprintf("Wanderly: your password reset code is %s. It expires in 15 minutes.", otp)
	return sendSMS(msg, []string{phone})
}
