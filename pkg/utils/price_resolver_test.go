package utils

import (
	"encoding/json"
	"math"
	"testing"
)

func TestResolvePriceAliasOrder(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]interface{}
		want  float64
	}{
		{
			name:  "snake_case per-night field wins",
			attrs: map[string]interface{}{"price_per_night": 120.0, "price": 80.0},
			want:  120,
		},
		{
			name:  "camelCase variant",
			attrs: map[string]interface{}{"pricePerNight": 95.0},
			want:  95,
		},
		{
			name:  "plain price",
			attrs: map[string]interface{}{"price": 60.0},
			want:  60,
		},
		{
			name:  "basePrice then rate then cost",
			attrs: map[string]interface{}{"cost": 30.0, "rate": 45.0},
			want:  45,
		},
		{
			name:  "numeric string parses",
			attrs: map[string]interface{}{"price": "75.50"},
			want:  75.5,
		},
		{
			name:  "integer value",
			attrs: map[string]interface{}{"price": 200},
			want:  200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePrice(tt.attrs); got != tt.want {
				t.Errorf("ResolvePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePriceStarFallback(t *testing.T) {
	attrs := map[string]interface{}{"star_rating": 4.0}
	if got := ResolvePrice(attrs); got != 200 {
		t.Errorf("4-star fallback = %v, want 200", got)
	}

	attrs = map[string]interface{}{"stars": 3.0, "price": "not-a-number"}
	if got := ResolvePrice(attrs); got != 150 {
		t.Errorf("3-star fallback = %v, want 150", got)
	}
}

func TestResolvePriceDefault(t *testing.T) {
	cases := []map[string]interface{}{
		nil,
		{},
		{"unrelated": "field"},
		{"price": 0.0},
		{"price": -20.0},
		{"price": math.NaN()},
		{"price": math.Inf(1)},
		{"price": "garbage"},
	}

	for _, attrs := range cases {
		if got := ResolvePrice(attrs); got != DefaultNightlyPrice {
			t.Errorf("ResolvePrice(%v) = %v, want default %v", attrs, got, DefaultNightlyPrice)
		}
	}
}

func TestResolveRoomPriceExplicit(t *testing.T) {
	attrs := map[string]interface{}{"price": 100.0}
	rooms := []RoomRecord{
		{Name: "Garden View", Key: "garden", Attrs: map[string]interface{}{"price": 130.0}},
	}

	if got := ResolveRoomPrice(attrs, rooms, "garden"); got != 130 {
		t.Errorf("explicit room price = %v, want 130", got)
	}
}

func TestResolveRoomPriceTopLevelField(t *testing.T) {
	// Legacy room sub-records carry their price beside name/key, not in a
	// nested bag. The alias chain runs over those fields too.
	var rooms []RoomRecord
	if err := json.Unmarshal([]byte(
		`[{"name": "Deluxe King", "key": "deluxe-king", "price": 130},
		  {"name": "Garden View", "key": "garden", "price_per_night": 180}]`), &rooms); err != nil {
		t.Fatalf("unmarshal rooms: %v", err)
	}

	attrs := map[string]interface{}{"price": 100.0}
	if got := ResolveRoomPrice(attrs, rooms, "deluxe-king"); got != 130 {
		t.Errorf("top-level room price = %v, want 130 (not the keyword multiplier)", got)
	}
	if got := ResolveRoomPrice(attrs, rooms, "garden"); got != 180 {
		t.Errorf("snake_case room price = %v, want 180", got)
	}
}

func TestRoomRecordRoundTripKeepsTopLevelPrice(t *testing.T) {
	var rooms []RoomRecord
	if err := json.Unmarshal([]byte(`[{"name": "Deluxe King", "key": "deluxe-king", "price": 130}]`), &rooms); err != nil {
		t.Fatalf("unmarshal rooms: %v", err)
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		t.Fatalf("marshal rooms: %v", err)
	}

	var again []RoomRecord
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("re-unmarshal rooms: %v", err)
	}

	attrs := map[string]interface{}{"price": 100.0}
	if got := ResolveRoomPrice(attrs, again, "deluxe-king"); got != 130 {
		t.Errorf("room price after round trip = %v, want 130", got)
	}
}

func TestResolveRoomPriceKeywordMultipliers(t *testing.T) {
	attrs := map[string]interface{}{"price": 100.0}
	rooms := []RoomRecord{
		{Name: "Deluxe King", Key: "deluxe-king"},
		{Name: "Presidential Suite", Key: "suite"},
		{Name: "Standard Twin", Key: "standard-twin"},
		{Name: "Single Room", Key: "single"},
		{Name: "Ocean View", Key: "ocean"},
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"deluxe-king", 150},
		{"suite", 250},
		{"standard-twin", 80},
		{"single", 70},
		{"ocean", 100},
	}

	for _, tt := range tests {
		if got := ResolveRoomPrice(attrs, rooms, tt.key); got != tt.want {
			t.Errorf("ResolveRoomPrice(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestResolveRoomPriceUnknownKeyEqualsBase(t *testing.T) {
	attrs := map[string]interface{}{"price": 100.0}
	rooms := []RoomRecord{{Name: "Deluxe King", Key: "deluxe-king"}}

	base := ResolvePrice(attrs)
	if got := ResolveRoomPrice(attrs, rooms, "no-such-room"); got != base {
		t.Errorf("unknown room key = %v, want base %v", got, base)
	}
	if got := ResolveRoomPrice(attrs, rooms, ""); got != base {
		t.Errorf("empty room key = %v, want base %v", got, base)
	}
}

func TestResolveRoomPriceMatchesByName(t *testing.T) {
	attrs := map[string]interface{}{"price": 100.0}
	rooms := []RoomRecord{{Name: "Deluxe King"}}

	if got := ResolveRoomPrice(attrs, rooms, "deluxe king"); got != 150 {
		t.Errorf("case-insensitive name match = %v, want 150", got)
	}
}
