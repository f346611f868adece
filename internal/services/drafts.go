package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wanderly/wanderly-backend/internal/models"
)

// DraftTTL is how long an untouched booking draft survives. Drafts are
// transient by construction: navigating away simply lets the key expire.
const DraftTTL = 30 * time.Minute

// DraftSlot is one participant slot in a draft, with its expand/collapse UI
// state carried alongside the participant fields.
type DraftSlot struct {
	models.Participant
	Expanded bool `json:"expanded"`
}

// BookingDraft is the in-progress booking state for one booking page session.
// It lives in Redis only and is deleted on successful submit.
type BookingDraft struct {
	ID       string          `json:"id"`
	UserID   uint            `json:"userId"`
	ItemType models.ItemType `json:"itemType"`
	ItemID   uint            `json:"itemId"`

	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	RoomTypeKey string `json:"roomTypeKey,omitempty"`

	Slots []DraftSlot `json:"slots"`

	AgreedToTerms         bool   `json:"agreedToTerms"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
}

// NewBookingDraft starts a draft with a single expanded slot that is the
// main booker.
func NewBookingDraft(id string, userID uint, itemType models.ItemType, itemID uint) *BookingDraft {
	return &BookingDraft{
		ID:       id,
		UserID:   userID,
		ItemType: itemType,
		ItemID:   itemID,
		Slots: []DraftSlot{
			{Participant: models.Participant{IsMainBooker: true}, Expanded: true},
		},
	}
}

// ParticipantCount returns the number of slots.
func (d *BookingDraft) ParticipantCount() int {
	return len(d.Slots)
}

// SetParticipantCount grows or shrinks the slot list. Growing appends empty,
// expanded, non-main-booker slots and never touches existing slot values.
// Shrinking truncates from the tail; if that removes the main booker, slot 0
// is promoted so the list never ends up without one.
func (d *BookingDraft) SetParticipantCount(n int) {
	if n < 1 {
		n = 1
	}

	for len(d.Slots) < n {
		d.Slots = append(d.Slots, DraftSlot{Expanded: true})
	}
	if len(d.Slots) > n {
		d.Slots = d.Slots[:n]
		if !d.hasMainBooker() {
			d.Slots[0].IsMainBooker = true
		}
	}
}

// SetMainBooker designates slot i as the primary contact. The whole list is
// rewritten so exactly one slot holds the flag afterwards.
func (d *BookingDraft) SetMainBooker(i int) error {
	if i < 0 || i >= len(d.Slots) {
		return fmt.Errorf("participant index %d out of range", i)
	}
	for idx := range d.Slots {
		d.Slots[idx].IsMainBooker = idx == i
	}
	return nil
}

// SetParticipant updates the fields of slot i, preserving its UI state.
func (d *BookingDraft) SetParticipant(i int, p models.Participant) error {
	if i < 0 || i >= len(d.Slots) {
		return fmt.Errorf("participant index %d out of range", i)
	}
	// The main-booker flag only moves through SetMainBooker.
	p.IsMainBooker = d.Slots[i].IsMainBooker
	d.Slots[i].Participant = p
	return nil
}

// ToggleSlot flips the expand/collapse state of slot i.
func (d *BookingDraft) ToggleSlot(i int) error {
	if i < 0 || i >= len(d.Slots) {
		return fmt.Errorf("participant index %d out of range", i)
	}
	d.Slots[i].Expanded = !d.Slots[i].Expanded
	return nil
}

// Completion returns the fill fraction for slot i, 0 for bad indexes.
func (d *BookingDraft) Completion(i int) float64 {
	if i < 0 || i >= len(d.Slots) {
		return 0
	}
	return d.Slots[i].Participant.Completion()
}

// Participants flattens the slots into the persisted participant shape.
func (d *BookingDraft) Participants() []models.Participant {
	participants := make([]models.Participant, len(d.Slots))
	for i := range d.Slots {
		participants[i] = d.Slots[i].Participant
	}
	return participants
}

func (d *BookingDraft) hasMainBooker() bool {
	for i := range d.Slots {
		if d.Slots[i].IsMainBooker {
			return true
		}
	}
	return false
}

// DraftStore persists booking drafts in Redis with a sliding TTL.
type DraftStore struct {
	rdb *redis.Client
}

func NewDraftStore(rdb *redis.Client) *DraftStore {
	return &DraftStore{rdb: rdb}
}

func draftKey(userID uint, draftID string) string {
	return fmt.Sprintf("booking:draft:%d:%s", userID, draftID)
}

// Save stores the draft and resets its TTL.
func (s *DraftStore) Save(ctx context.Context, draft *BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, draftKey(draft.UserID, draft.ID), data, DraftTTL).Err()
}

// Get loads a draft owned by the user. A missing key returns redis.Nil.
func (s *DraftStore) Get(ctx context.Context, userID uint, draftID string) (*BookingDraft, error) {
	data, err := s.rdb.Get(ctx, draftKey(userID, draftID)).Result()
	if err != nil {
		return nil, err
	}

	var draft BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Delete removes the draft, typically after a successful submit.
func (s *DraftStore) Delete(ctx context.Context, userID uint, draftID string) error {
	return s.rdb.Del(ctx, draftKey(userID, draftID)).Err()
}
