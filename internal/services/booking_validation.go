package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wanderly/wanderly-backend/internal/models"
	"github.com/wanderly/wanderly-backend/pkg/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[1-9]\d{1,14}$`)
)

// normalizePhone strips the separators people type into phone numbers before
// the pattern match.
func normalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// ValidEmail reports whether the address passes the RFC-lite check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidPhone reports whether the number, after normalization, is a plausible
// international phone number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(normalizePhone(phone))
}

// oldEnough reports whether the date of birth is at least minYears in the
// past. The comparison never mutates its inputs.
func oldEnough(dateOfBirth string, minYears int, now time.Time) bool {
	dob, err := time.Parse(utils.DateLayout, dateOfBirth)
	if err != nil {
		return false
	}
	cutoff := now.AddDate(-minYears, 0, 0)
	return !dob.After(cutoff)
}

// ValidateBookingDraft checks a draft before submit and returns a map of
// error messages keyed by field (participant fields use
// "participants.<i>.<field>" keys). An empty map means the draft is valid.
// Validation failures are data, not errors; nothing here ever panics on
// user input.
func ValidateBookingDraft(draft *BookingDraft, maxParticipants int) map[string]string {
	errs := make(map[string]string)
	now := time.Now()

	if strings.TrimSpace(draft.StartDate) == "" {
		errs["startDate"] = "Start date is required"
	} else if _, err := time.Parse(utils.DateLayout, draft.StartDate); err != nil {
		errs["startDate"] = "Start date is invalid"
	}

	if draft.ItemType == models.ItemTypeHotel {
		if strings.TrimSpace(draft.EndDate) == "" {
			errs["endDate"] = "Check-out date is required"
		} else if _, err := time.Parse(utils.DateLayout, draft.EndDate); err != nil {
			errs["endDate"] = "Check-out date is invalid"
		} else if _, ok := errs["startDate"]; !ok && draft.EndDate <= draft.StartDate {
			errs["endDate"] = "Check-out must be after check-in"
		}
	}

	if !draft.AgreedToTerms {
		errs["terms"] = "You must agree to the terms and conditions"
	}

	if draft.ItemType == models.ItemTypeTrip {
		if strings.TrimSpace(draft.EmergencyContactName) == "" {
			errs["emergencyContactName"] = "Emergency contact name is required"
		}
		if strings.TrimSpace(draft.EmergencyContactPhone) == "" {
			errs["emergencyContactPhone"] = "Emergency contact phone is required"
		} else if !ValidPhone(draft.EmergencyContactPhone) {
			errs["emergencyContactPhone"] = "Emergency contact phone is invalid"
		}

		validateParticipants(draft.Participants(), errs, now)
	}

	if maxParticipants > 0 && len(draft.Slots) > maxParticipants {
		errs["participantCount"] = fmt.Sprintf("A maximum of %d participants is allowed", maxParticipants)
	}

	return errs
}

func validateParticipants(participants []models.Participant, errs map[string]string, now time.Time) {
	mainBookers := 0
	for i, p := range participants {
		key := func(field string) string { return fmt.Sprintf("participants.%d.%s", i, field) }

		if len(strings.TrimSpace(p.FirstName)) < 2 {
			errs[key("firstName")] = "First name must be at least 2 characters"
		}
		if len(strings.TrimSpace(p.LastName)) < 2 {
			errs[key("lastName")] = "Last name must be at least 2 characters"
		}

		if strings.TrimSpace(p.Email) == "" {
			errs[key("email")] = "Email is required"
		} else if !ValidEmail(p.Email) {
			errs[key("email")] = "Email is invalid"
		}

		if strings.TrimSpace(p.Phone) == "" {
			errs[key("phone")] = "Phone number is required"
		} else if !ValidPhone(p.Phone) {
			errs[key("phone")] = "Phone number is invalid"
		}

		if strings.TrimSpace(p.DateOfBirth) == "" {
			errs[key("dateOfBirth")] = "Date of birth is required"
		} else if !oldEnough(p.DateOfBirth, 1, now) {
			errs[key("dateOfBirth")] = "Participant must be at least 1 year old"
		}

		if strings.TrimSpace(p.Nationality) == "" {
			errs[key("nationality")] = "Nationality is required"
		}

		if p.IsMainBooker {
			mainBookers++
		}
	}

	if mainBookers != 1 {
		errs["mainBooker"] = "Exactly one participant must be the main booker"
	}
}
