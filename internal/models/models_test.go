package models

import (
	"testing"

	"gorm.io/datatypes"
)

func TestTripPerPersonPrice(t *testing.T) {
	// Typed column wins
	trip := Trip{Price: 300}
	if got := trip.PerPersonPrice(); got != 300 {
		t.Errorf("typed price = %v, want 300", got)
	}

	// Legacy document fallback through the alias chain
	trip = Trip{Attributes: datatypes.JSON(`{"pricePerNight": 220}`)}
	if got := trip.PerPersonPrice(); got != 220 {
		t.Errorf("legacy price = %v, want 220", got)
	}

	// Nothing usable anywhere
	trip = Trip{}
	if got := trip.PerPersonPrice(); got != 150 {
		t.Errorf("default price = %v, want 150", got)
	}

	// Malformed bag decodes to nil and falls back cleanly
	trip = Trip{Attributes: datatypes.JSON(`{broken`)}
	if got := trip.PerPersonPrice(); got != 150 {
		t.Errorf("malformed bag price = %v, want 150", got)
	}
}

func TestTripDuration(t *testing.T) {
	trip := Trip{DurationDays: 7}
	if got := trip.Duration(); got != 7 {
		t.Errorf("typed duration = %d, want 7", got)
	}

	trip = Trip{Attributes: datatypes.JSON(`{"duration_days": 5}`)}
	if got := trip.Duration(); got != 5 {
		t.Errorf("legacy duration = %d, want 5", got)
	}

	trip = Trip{}
	if got := trip.Duration(); got != 1 {
		t.Errorf("default duration = %d, want 1", got)
	}
}

func TestHotelNightlyPriceStarFallback(t *testing.T) {
	// Document price wins over the star column
	hotel := Hotel{StarRating: 5, Attributes: datatypes.JSON(`{"price": 90}`)}
	if got := hotel.NightlyPrice(); got != 90 {
		t.Errorf("document price = %v, want 90", got)
	}

	// No document price: column star rating feeds the heuristic
	hotel = Hotel{StarRating: 4}
	if got := hotel.NightlyPrice(); got != 200 {
		t.Errorf("star column fallback = %v, want 200", got)
	}

	// Document star rating is not overwritten by the column
	hotel = Hotel{StarRating: 5, Attributes: datatypes.JSON(`{"star_rating": 3}`)}
	if got := hotel.NightlyPrice(); got != 150 {
		t.Errorf("document star rating = %v, want 150", got)
	}

	// Alias spellings count as a document star rating too
	hotel = Hotel{StarRating: 5, Attributes: datatypes.JSON(`{"stars": 3}`)}
	if got := hotel.NightlyPrice(); got != 150 {
		t.Errorf("document stars alias = %v, want 150", got)
	}
	hotel = Hotel{StarRating: 5, Attributes: datatypes.JSON(`{"starRating": 2}`)}
	if got := hotel.NightlyPrice(); got != 100 {
		t.Errorf("document starRating alias = %v, want 100", got)
	}
}

func TestHotelRoomPrice(t *testing.T) {
	hotel := Hotel{
		Attributes: datatypes.JSON(`{"price": 100}`),
		RoomTypes:  datatypes.JSON(`[{"name": "Deluxe King", "key": "deluxe-king"}]`),
	}

	if got := hotel.RoomPrice("deluxe-king"); got != 150 {
		t.Errorf("deluxe room = %v, want 150", got)
	}
	if got := hotel.RoomPrice("missing"); got != hotel.NightlyPrice() {
		t.Errorf("unknown room = %v, want base %v", got, hotel.NightlyPrice())
	}
}

func TestParticipantCompletion(t *testing.T) {
	p := Participant{}
	if got := p.Completion(); got != 0 {
		t.Errorf("empty completion = %v, want 0", got)
	}

	p = Participant{FirstName: "Amina", LastName: "Okello", Email: "a@b.co"}
	if got := p.Completion(); got != 0.5 {
		t.Errorf("half completion = %v, want 0.5", got)
	}

	// Whitespace-only fields do not count
	p = Participant{FirstName: "  ", LastName: "Okello"}
	if got := p.Completion(); got != 1.0/6.0 {
		t.Errorf("whitespace completion = %v, want 1/6", got)
	}
}

func TestBookingParticipantList(t *testing.T) {
	booking := Booking{Participants: datatypes.JSON(
		`[{"firstName": "Amina", "isMainBooker": true}, {"firstName": "Kofi"}]`)}

	participants := booking.ParticipantList()
	if len(participants) != 2 {
		t.Fatalf("len = %d, want 2", len(participants))
	}

	main := booking.MainBooker()
	if main == nil || main.FirstName != "Amina" {
		t.Errorf("MainBooker() = %+v, want Amina", main)
	}

	// Hotel bookings carry no participant document
	empty := Booking{}
	if empty.MainBooker() != nil {
		t.Error("empty booking should have no main booker")
	}
	if len(empty.ParticipantList()) != 0 {
		t.Error("empty booking should have no participants")
	}
}

func TestStatusValidators(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
		if !ValidBookingStatus(s) {
			t.Errorf("ValidBookingStatus(%q) = false", s)
		}
	}
	if ValidBookingStatus("archived") {
		t.Error("unknown booking status accepted")
	}

	for _, s := range []string{"pending", "paid", "refunded", "failed"} {
		if !ValidPaymentStatus(s) {
			t.Errorf("ValidPaymentStatus(%q) = false", s)
		}
	}
	if ValidPaymentStatus("chargeback") {
		t.Error("unknown payment status accepted")
	}
}
