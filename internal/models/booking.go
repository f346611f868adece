package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// ItemType distinguishes what a booking is for.
type ItemType string

const (
	ItemTypeTrip  ItemType = "trip"
	ItemTypeHotel ItemType = "hotel"
)

// ParticipantRequiredFields is the number of fields a participant must fill
// before their slot counts as complete.
const ParticipantRequiredFields = 6

// Participant is one traveler on a trip booking. Participants are persisted
// as a JSON document on the booking row, denormalized at submit time.
type Participant struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DateOfBirth  string `json:"dateOfBirth"`
	Nationality  string `json:"nationality"`
	IsMainBooker bool   `json:"isMainBooker"`
}

// Completion returns the fraction of required fields filled in, for the
// progress UI. Derived only, never stored.
func (p *Participant) Completion() float64 {
	filled := 0
	for _, v := range []string{p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Nationality} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	return float64(filled) / float64(ParticipantRequiredFields)
}

type Booking struct {
	gorm.Model
	Reference string `json:"reference" gorm:"uniqueIndex;size:64"`
	// RequestID is the client-generated idempotency key for the submit.
	RequestID string `json:"requestId" gorm:"uniqueIndex;size:64"`

	UserID uint `json:"userId" gorm:"not null;index"`
	User   User `json:"user"`

	ItemType ItemType `json:"itemType" gorm:"not null;index"`
	TripID   *uint    `json:"tripId,omitempty" gorm:"index"`
	Trip     *Trip    `json:"trip,omitempty" gorm:"foreignKey:TripID"`
	HotelID  *uint    `json:"hotelId,omitempty" gorm:"index"`
	Hotel    *Hotel   `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`

	// Snapshot of the item at submit time; the catalog may change afterwards.
	ItemTitle   string  `json:"itemTitle"`
	UnitPrice   float64 `json:"unitPrice"`
	RoomTypeKey string  `json:"roomTypeKey,omitempty"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Nights    int        `json:"nights"`

	ParticipantCount int            `json:"participantCount" gorm:"default:1"`
	Participants     datatypes.JSON `json:"participants,omitempty"`

	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`

	TotalPrice    float64       `json:"totalPrice"`
	Status        BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// ParticipantList decodes the persisted participant document.
func (b *Booking) ParticipantList() []Participant {
	var participants []Participant
	if len(b.Participants) > 0 {
		_ = json.Unmarshal(b.Participants, &participants)
	}
	return participants
}

// MainBooker returns the designated primary contact, or nil for hotel
// bookings that carry no participant document.
func (b *Booking) MainBooker() *Participant {
	participants := b.ParticipantList()
	for i := range participants {
		if participants[i].IsMainBooker {
			return &participants[i]
		}
	}
	return nil
}

// ValidBookingStatus reports whether s is one of the admin-settable states.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}
