package models

import (
	"encoding/json"
	"time"

	"github.com/wanderly/wanderly-backend/pkg/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ItineraryDay is one entry of a trip's day-by-day schedule, stored as a JSON
// document on the trip row.
type ItineraryDay struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

type Trip struct {
	gorm.Model
	Slug            string     `json:"slug" gorm:"uniqueIndex;not null"`
	Title           string     `json:"title" gorm:"not null"`
	Destination     string     `json:"destination" gorm:"not null"`
	Description     string     `json:"description" gorm:"type:text"`
	CategoryID      *uint      `json:"categoryId,omitempty" gorm:"index"`
	Category        *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	DurationDays    int        `json:"durationDays" gorm:"default:1"`
	MaxParticipants int        `json:"maxParticipants" gorm:"default:10"`
	Price           float64    `json:"price"`
	NextDeparture   *time.Time `json:"nextDeparture,omitempty"`
	IsPublished     bool       `json:"isPublished" gorm:"default:true"`

	Itinerary datatypes.JSON `json:"itinerary,omitempty"`
	Photos    datatypes.JSON `json:"photos,omitempty"`

	// Attributes carries the raw legacy document imported from the old
	// store; field names in it are inconsistent (snake_case and camelCase
	// variants of the same concept) and must only be read through the
	// alias resolvers.
	Attributes datatypes.JSON `json:"-"`
}

// TableName specifies the table name
func (Trip) TableName() string {
	return "trips"
}

// AttributeMap decodes the raw legacy document. A missing or malformed bag
// decodes to nil, which the resolvers treat as "no legacy fields".
func (t *Trip) AttributeMap() map[string]interface{} {
	return decodeAttributes(t.Attributes)
}

// PerPersonPrice resolves the trip's canonical per-person price. The typed
// column wins; legacy documents fall through the alias chain.
func (t *Trip) PerPersonPrice() float64 {
	if t.Price > 0 {
		return t.Price
	}
	return utils.ResolvePrice(t.AttributeMap())
}

// Duration resolves the trip length in days, defaulting to 1.
func (t *Trip) Duration() int {
	if t.DurationDays > 0 {
		return t.DurationDays
	}
	return utils.ResolveDurationDays(t.AttributeMap())
}

// PhotoURLs decodes the stored photo list.
func (t *Trip) PhotoURLs() []string {
	return decodePhotos(t.Photos)
}

// ItineraryDays decodes the stored day-by-day schedule.
func (t *Trip) ItineraryDays() []ItineraryDay {
	var days []ItineraryDay
	if len(t.Itinerary) > 0 {
		_ = json.Unmarshal(t.Itinerary, &days)
	}
	return days
}

func decodeAttributes(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil
	}
	return attrs
}

func decodePhotos(raw datatypes.JSON) []string {
	var photos []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &photos)
	}
	return photos
}
