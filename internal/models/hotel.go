package models

import (
	"encoding/json"

	"github.com/wanderly/wanderly-backend/pkg/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model
	Slug        string  `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string  `json:"name" gorm:"not null"`
	City        string  `json:"city" gorm:"index"`
	Country     string  `json:"country"`
	Address     string  `json:"address"`
	StarRating  int     `json:"starRating"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description" gorm:"type:text"`
	MaxGuests   int     `json:"maxGuests" gorm:"default:4"`
	IsPublished bool    `json:"isPublished" gorm:"default:true"`

	// RoomTypes holds the hotel's room sub-documents (name, price, capacity,
	// feature list) exactly as they arrive from the legacy store.
	RoomTypes datatypes.JSON `json:"roomTypes,omitempty"`
	Photos    datatypes.JSON `json:"photos,omitempty"`

	// Attributes is the raw legacy document; read it through the alias
	// resolvers only.
	Attributes datatypes.JSON `json:"-"`
}

// TableName specifies the table name
func (Hotel) TableName() string {
	return "hotels"
}

func (h *Hotel) AttributeMap() map[string]interface{} {
	return decodeAttributes(h.Attributes)
}

// RoomRecords decodes the room-type sub-documents.
func (h *Hotel) RoomRecords() []utils.RoomRecord {
	var rooms []utils.RoomRecord
	if len(h.RoomTypes) > 0 {
		_ = json.Unmarshal(h.RoomTypes, &rooms)
	}
	return rooms
}

// PhotoURLs decodes the stored photo list.
func (h *Hotel) PhotoURLs() []string {
	return decodePhotos(h.Photos)
}

// priceAttributes is the legacy document with the star-rating column patched
// in as a fallback when the document itself carries no rating.
func (h *Hotel) priceAttributes() map[string]interface{} {
	attrs := h.AttributeMap()
	if h.StarRating <= 0 {
		return attrs
	}
	if attrs == nil {
		attrs = make(map[string]interface{}, 1)
	}
	if !utils.HasStarField(attrs) {
		attrs["star_rating"] = float64(h.StarRating)
	}
	return attrs
}

// NightlyPrice resolves the hotel's canonical base price.
func (h *Hotel) NightlyPrice() float64 {
	return utils.ResolvePrice(h.priceAttributes())
}

// RoomPrice resolves the nightly price for one of the hotel's room types,
// falling back to NightlyPrice for unknown keys.
func (h *Hotel) RoomPrice(roomKey string) float64 {
	return utils.ResolveRoomPrice(h.priceAttributes(), h.RoomRecords(), roomKey)
}
