package services

import (
	"testing"
	"time"

	"github.com/wanderly/wanderly-backend/internal/models"
)

func validTripDraft() *BookingDraft {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.StartDate = "2030-07-01"
	draft.AgreedToTerms = true
	draft.EmergencyContactName = "Grace Okello"
	draft.EmergencyContactPhone = "+254700000000"
	draft.SetParticipant(0, models.Participant{
		FirstName:   "Amina",
		LastName:    "Okello",
		Email:       "amina@example.com",
		Phone:       "+254712345678",
		DateOfBirth: "1990-04-12",
		Nationality: "Kenyan",
	})
	return draft
}

func validHotelDraft() *BookingDraft {
	draft := NewBookingDraft("d2", 7, models.ItemTypeHotel, 1)
	draft.StartDate = "2030-07-01"
	draft.EndDate = "2030-07-05"
	draft.AgreedToTerms = true
	return draft
}

func TestValidateBookingDraftValidTrip(t *testing.T) {
	errs := ValidateBookingDraft(validTripDraft(), 10)
	if len(errs) != 0 {
		t.Errorf("valid trip draft produced errors: %v", errs)
	}
}

func TestValidateBookingDraftValidHotel(t *testing.T) {
	errs := ValidateBookingDraft(validHotelDraft(), 4)
	if len(errs) != 0 {
		t.Errorf("valid hotel draft produced errors: %v", errs)
	}
}

func TestValidateBookingDraftDates(t *testing.T) {
	draft := validHotelDraft()
	draft.StartDate = ""
	errs := ValidateBookingDraft(draft, 4)
	if _, ok := errs["startDate"]; !ok {
		t.Error("missing start date should be flagged")
	}

	draft = validHotelDraft()
	draft.EndDate = ""
	errs = ValidateBookingDraft(draft, 4)
	if _, ok := errs["endDate"]; !ok {
		t.Error("missing check-out should be flagged for hotels")
	}

	draft = validHotelDraft()
	draft.EndDate = "2030-06-30"
	errs = ValidateBookingDraft(draft, 4)
	if _, ok := errs["endDate"]; !ok {
		t.Error("check-out before check-in should be flagged")
	}

	draft = validHotelDraft()
	draft.StartDate = "01/07/2030"
	errs = ValidateBookingDraft(draft, 4)
	if _, ok := errs["startDate"]; !ok {
		t.Error("wrong date format should be flagged")
	}
}

func TestValidateBookingDraftTerms(t *testing.T) {
	draft := validTripDraft()
	draft.AgreedToTerms = false
	errs := ValidateBookingDraft(draft, 10)
	if _, ok := errs["terms"]; !ok {
		t.Error("unchecked terms should be flagged")
	}
}

func TestValidateBookingDraftEmergencyContact(t *testing.T) {
	draft := validTripDraft()
	draft.EmergencyContactName = ""
	draft.EmergencyContactPhone = "0712"
	errs := ValidateBookingDraft(draft, 10)

	if _, ok := errs["emergencyContactName"]; !ok {
		t.Error("missing emergency contact name should be flagged")
	}
	if _, ok := errs["emergencyContactPhone"]; !ok {
		t.Error("bad emergency contact phone should be flagged")
	}

	// Hotels carry no participant form, so no emergency contact either
	hotel := validHotelDraft()
	errs = ValidateBookingDraft(hotel, 4)
	if _, ok := errs["emergencyContactName"]; ok {
		t.Error("hotel drafts should not require an emergency contact")
	}
}

func TestValidateBookingDraftParticipantFields(t *testing.T) {
	draft := validTripDraft()
	draft.SetParticipantCount(2)
	draft.SetParticipant(1, models.Participant{
		FirstName:   "K",
		LastName:    "",
		Email:       "not-an-email",
		Phone:       "abc",
		DateOfBirth: "tomorrow",
		Nationality: "",
	})

	errs := ValidateBookingDraft(draft, 10)
	for _, key := range []string{
		"participants.1.firstName",
		"participants.1.lastName",
		"participants.1.email",
		"participants.1.phone",
		"participants.1.dateOfBirth",
		"participants.1.nationality",
	} {
		if _, ok := errs[key]; !ok {
			t.Errorf("expected error under key %q, got %v", key, errs)
		}
	}

	// Slot 0 is untouched and must stay clean
	if _, ok := errs["participants.0.firstName"]; ok {
		t.Error("valid participant should not be flagged")
	}
}

func TestValidateBookingDraftAgeFloor(t *testing.T) {
	draft := validTripDraft()
	newborn := time.Now().AddDate(0, -6, 0).Format("2006-01-02")
	draft.SetParticipant(0, models.Participant{
		FirstName:   "Baby",
		LastName:    "Okello",
		Email:       "baby@example.com",
		Phone:       "+254712345678",
		DateOfBirth: newborn,
		Nationality: "Kenyan",
	})

	errs := ValidateBookingDraft(draft, 10)
	if _, ok := errs["participants.0.dateOfBirth"]; !ok {
		t.Error("participant younger than 1 year should be flagged")
	}

	exactlyOne := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	draft.SetParticipant(0, models.Participant{
		FirstName:   "Amina",
		LastName:    "Okello",
		Email:       "amina@example.com",
		Phone:       "+254712345678",
		DateOfBirth: exactlyOne,
		Nationality: "Kenyan",
	})
	errs = ValidateBookingDraft(draft, 10)
	if _, ok := errs["participants.0.dateOfBirth"]; ok {
		t.Error("participant exactly 1 year old should pass")
	}
}

func TestValidateBookingDraftMainBooker(t *testing.T) {
	draft := validTripDraft()
	draft.Slots[0].IsMainBooker = false

	errs := ValidateBookingDraft(draft, 10)
	if _, ok := errs["mainBooker"]; !ok {
		t.Error("zero main bookers should be flagged")
	}

	draft = validTripDraft()
	draft.SetParticipantCount(2)
	draft.SetParticipant(1, models.Participant{
		FirstName:   "Kofi",
		LastName:    "Mensah",
		Email:       "kofi@example.com",
		Phone:       "+233201234567",
		DateOfBirth: "1985-01-20",
		Nationality: "Ghanaian",
	})
	draft.Slots[1].IsMainBooker = true // bypass SetMainBooker to fake a double flag

	errs = ValidateBookingDraft(draft, 10)
	if _, ok := errs["mainBooker"]; !ok {
		t.Error("two main bookers should be flagged")
	}
}

func TestValidateBookingDraftParticipantCeiling(t *testing.T) {
	draft := validTripDraft()
	draft.SetParticipantCount(5)

	errs := ValidateBookingDraft(draft, 4)
	if _, ok := errs["participantCount"]; !ok {
		t.Error("exceeding max participants should be flagged")
	}

	errs = ValidateBookingDraft(validTripDraft(), 1)
	if _, ok := errs["participantCount"]; ok {
		t.Error("count at the ceiling should pass")
	}
}

func TestValidPhoneNormalization(t *testing.T) {
	valid := []string{"+254 712 345 678", "(254) 712-345678", "254712345678"}
	for _, phone := range valid {
		if !ValidPhone(phone) {
			t.Errorf("ValidPhone(%q) = false, want true", phone)
		}
	}

	invalid := []string{"", "0", "0712345678", "abc", "+0123"}
	for _, phone := range invalid {
		if ValidPhone(phone) {
			t.Errorf("ValidPhone(%q) = true, want false", phone)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"amina@example.com", "a.b+c@sub.domain.org"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plain", "missing@tld", "two@@signs.com", "spa ce@x.com"}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = true, want false", email)
		}
	}
}
