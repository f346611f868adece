package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultNightlyPrice is used when an item carries no usable price field
	DefaultNightlyPrice = 150.0
	// StarRatingMultiplier derives a nightly price from a hotel's star rating
	StarRatingMultiplier = 50.0
)

// priceAliases are the historical field names a price may be stored under,
// in resolution order. Legacy documents mix snake_case and camelCase.
var priceAliases = []string{"price_per_night", "pricePerNight", "price", "basePrice", "rate", "cost"}

// starAliases are the historical field names for a hotel's star rating.
var starAliases = []string{"star_rating", "starRating", "stars"}

// roomKeywordMultipliers derive a room price from the base price when the
// room record has no explicit price of its own.
var roomKeywordMultipliers = []struct {
	Keyword    string
	Multiplier float64
}{
	{"suite", 2.5},
	{"deluxe", 1.5},
	{"standard", 0.8},
	{"single", 0.7},
}

// asPositiveNumber converts a raw document value to a finite positive float.
// Zero, negative, NaN and unparseable values count as absent so the caller
// falls through to the next alias.
func asPositiveNumber(v interface{}) (float64, bool) {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case uint:
		n = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, false
	}
	return n, true
}

// resolveNumberField walks an alias chain over a raw document and returns the
// first usable positive number.
func resolveNumberField(attrs map[string]interface{}, aliases []string) (float64, bool) {
	if attrs == nil {
		return 0, false
	}
	for _, key := range aliases {
		if v, ok := attrs[key]; ok {
			if n, valid := asPositiveNumber(v); valid {
				return n, true
			}
		}
	}
	return 0, false
}

// ResolvePrice returns the canonical nightly/per-person price for a raw item
// document. Resolution order: price alias chain, star-rating heuristic,
// fixed default. The result is always finite and positive.
func ResolvePrice(attrs map[string]interface{}) float64 {
	if price, ok := resolveNumberField(attrs, priceAliases); ok {
		return price
	}
	if stars, ok := resolveNumberField(attrs, starAliases); ok {
		return stars * StarRatingMultiplier
	}
	return DefaultNightlyPrice
}

// HasStarField reports whether the document already carries a star rating
// under any of its historical names. Callers patching a typed column into a
// legacy bag must not shadow a rating the document brought with it.
func HasStarField(attrs map[string]interface{}) bool {
	for _, key := range starAliases {
		if _, ok := attrs[key]; ok {
			return true
		}
	}
	return false
}

// RoomRecord is a room-type sub-document as stored on a hotel. Legacy
// documents carry the room's price at the top level under any of the price
// aliases, so decoding keeps the raw sub-record alongside the typed fields.
type RoomRecord struct {
	Name     string                 `json:"name"`
	Key      string                 `json:"key,omitempty"`
	Capacity int                    `json:"capacity,omitempty"`
	Features []string               `json:"features,omitempty"`
	Attrs    map[string]interface{} `json:"attrs,omitempty"`

	fields map[string]interface{}
}

type roomRecordFields struct {
	Name     string                 `json:"name"`
	Key      string                 `json:"key,omitempty"`
	Capacity int                    `json:"capacity,omitempty"`
	Features []string               `json:"features,omitempty"`
	Attrs    map[string]interface{} `json:"attrs,omitempty"`
}

func (r *RoomRecord) UnmarshalJSON(data []byte) error {
	var typed roomRecordFields
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Name = typed.Name
	r.Key = typed.Key
	r.Capacity = typed.Capacity
	r.Features = typed.Features
	r.Attrs = typed.Attrs
	r.fields = raw
	return nil
}

// MarshalJSON writes the raw sub-record back out so top-level legacy fields
// survive a decode/encode round trip.
func (r RoomRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.fields)+5)
	for k, v := range r.fields {
		out[k] = v
	}
	out["name"] = r.Name
	if r.Key != "" {
		out["key"] = r.Key
	}
	if r.Capacity != 0 {
		out["capacity"] = r.Capacity
	}
	if len(r.Features) > 0 {
		out["features"] = r.Features
	}
	if len(r.Attrs) > 0 {
		out["attrs"] = r.Attrs
	}
	return json.Marshal(out)
}

// ResolveRoomPrice returns the nightly price for one of an item's room types.
// The alias chain is retried against the room's own attributes first; if the
// room has no explicit price, the base price is scaled by a keyword multiplier
// taken from the room name. An unknown room key resolves to the base price
// exactly.
func ResolveRoomPrice(attrs map[string]interface{}, rooms []RoomRecord, roomKey string) float64 {
	basePrice := ResolvePrice(attrs)

	var room *RoomRecord
	for i := range rooms {
		if roomMatches(&rooms[i], roomKey) {
			room = &rooms[i]
			break
		}
	}
	if room == nil {
		return basePrice
	}

	// The room's own top-level fields first, then its nested attrs bag
	if price, ok := resolveNumberField(room.fields, priceAliases); ok {
		return price
	}
	if price, ok := resolveNumberField(room.Attrs, priceAliases); ok {
		return price
	}

	name := strings.ToLower(room.Name)
	for _, km := range roomKeywordMultipliers {
		if strings.Contains(name, km.Keyword) {
			return basePrice * km.Multiplier
		}
	}
	return basePrice
}

func roomMatches(room *RoomRecord, key string) bool {
	if key == "" {
		return false
	}
	return strings.EqualFold(room.Key, key) || strings.EqualFold(room.Name, key)
}
