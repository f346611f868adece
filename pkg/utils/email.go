package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "Wanderly Travel"
	baseURL       = os.Getenv("BASE_URL")
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1E88E5; margin: 0;">Wanderly</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 Wanderly Travel. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "Wanderly-Mailer"
	headers["List-Unsubscribe"] = fmt.Sprintf("<%s>", emailFrom)

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// SendEmailVerificationOTP emails the account verification code
func SendEmailVerificationOTP(email, otp string) error {
	subject := "Verify Your Email - Wanderly"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Verify Your Email</h1>
					<p>Hello,</p>
					<p>Welcome to Wanderly! Use the code below to verify your email address:</p>
					<div style="text-align: center; margin: 30px 0;">
						<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1E88E5;">%s</span>
					</div>
					<p>This code expires in 15 minutes.</p>
					<p>Best regards,<br>The Wanderly Team</p>
				</div>`+emailFooter,
		otp)

	return sendEmail([]string{email}, subject, body)
}

// SendPasswordResetEmail emails the password reset code
func SendPasswordResetEmail(email, otp string) error {
	subject := "Password Reset Code - Wanderly"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Password Reset</h1>
					<p>Hello,</p>
					<p>We received a request to reset your password. Use the code below to continue:</p>
					<div style="text-align: center; margin: 30px 0;">
						<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1E88E5;">%s</span>
					</div>
					<p>If you did not request a password reset, you can safely ignore this email.</p>
					<p>Best regards,<br>The Wanderly Team</p>
				</div>`+emailFooter,
		otp)

	return sendEmail([]string{email}, subject, body)
}

// SendBookingConfirmationEmail emails the booking reference after a
// successful submit
func SendBookingConfirmationEmail(email, travelerName, reference, itemTitle, startDate string, total float64) error {
	subject := "Booking Received - Wanderly"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Received</h1>
					<p>Hello %s,</p>
					<p>We have received your booking for <strong>%s</strong> starting <strong>%s</strong>.</p>
					<p>Your booking reference is <strong>%s</strong>. Total: <strong>%.2f</strong>.</p>
					<p>We will email you again once the booking is confirmed.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings" style="background-color: #1E88E5; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View My Bookings</a>
					</div>
					<p>Best regards,<br>The Wanderly Team</p>
				</div>`+emailFooter,
		travelerName, itemTitle, startDate, reference, total, baseURL)

	return sendEmail([]string{email}, subject, body)
}

// SendBookingStatusEmail emails the booking owner after an admin status change
func SendBookingStatusEmail(email, travelerName, reference, status string) error {
	subject := "Booking Update - Wanderly"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Update</h1>
					<p>Hello %s,</p>
					<p>Your booking <strong>%s</strong> is now <strong>%s</strong>.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings" style="background-color: #1E88E5; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View My Bookings</a>
					</div>
					<p>Best regards,<br>The Wanderly Team</p>
				</div>`+emailFooter,
		travelerName, reference, status, baseURL)

	return sendEmail([]string{email}, subject, body)
}

// SendContactAcknowledgementEmail confirms receipt of a contact form message
func SendContactAcknowledgementEmail(email, name string) error {
	subject := "We Received Your Message - Wanderly"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Thanks for Reaching Out</h1>
					<p>Hello %s,</p>
					<p>We received your message and our team will get back to you within two business days.</p>
					<p>Best regards,<br>The Wanderly Team</p>
				</div>`+emailFooter,
		name)

	return sendEmail([]string{email}, subject, body)
}
