package services

import (
	"testing"

	"github.com/wanderly/wanderly-backend/internal/models"
)

func mainBookerCount(d *BookingDraft) int {
	count := 0
	for i := range d.Slots {
		if d.Slots[i].IsMainBooker {
			count++
		}
	}
	return count
}

func TestNewBookingDraftStartsWithMainBooker(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)

	if draft.ParticipantCount() != 1 {
		t.Fatalf("new draft has %d slots, want 1", draft.ParticipantCount())
	}
	if !draft.Slots[0].IsMainBooker {
		t.Error("first slot should be the main booker")
	}
	if !draft.Slots[0].Expanded {
		t.Error("first slot should start expanded")
	}
}

func TestSetParticipantCountGrowPreservesExisting(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.SetParticipant(0, models.Participant{FirstName: "Amina", LastName: "Okello"})

	draft.SetParticipantCount(3)

	if draft.ParticipantCount() != 3 {
		t.Fatalf("count = %d, want 3", draft.ParticipantCount())
	}
	if draft.Slots[0].FirstName != "Amina" {
		t.Error("growing must not touch existing slot values")
	}
	for i := 1; i < 3; i++ {
		if draft.Slots[i].IsMainBooker {
			t.Errorf("appended slot %d should not be main booker", i)
		}
		if !draft.Slots[i].Expanded {
			t.Errorf("appended slot %d should start expanded", i)
		}
		if draft.Slots[i].FirstName != "" {
			t.Errorf("appended slot %d should be empty", i)
		}
	}
}

func TestSetParticipantCountShrinkTruncates(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.SetParticipantCount(4)
	draft.SetParticipant(1, models.Participant{FirstName: "Kofi"})

	draft.SetParticipantCount(2)

	if draft.ParticipantCount() != 2 {
		t.Fatalf("count = %d, want 2", draft.ParticipantCount())
	}
	if draft.Slots[1].FirstName != "Kofi" {
		t.Error("shrinking must keep surviving slot values")
	}
}

func TestShrinkPromotesSlotZeroWhenMainBookerRemoved(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.SetParticipantCount(3)
	if err := draft.SetMainBooker(2); err != nil {
		t.Fatalf("SetMainBooker(2) error = %v", err)
	}

	draft.SetParticipantCount(2)

	if got := mainBookerCount(draft); got != 1 {
		t.Fatalf("main booker count after shrink = %d, want 1", got)
	}
	if !draft.Slots[0].IsMainBooker {
		t.Error("slot 0 should be promoted when the main booker is truncated")
	}
}

func TestSetMainBookerIsExclusive(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.SetParticipantCount(4)

	for _, i := range []int{2, 0, 3, 1} {
		if err := draft.SetMainBooker(i); err != nil {
			t.Fatalf("SetMainBooker(%d) error = %v", i, err)
		}
		if got := mainBookerCount(draft); got != 1 {
			t.Fatalf("after SetMainBooker(%d): %d main bookers, want 1", i, got)
		}
		if !draft.Slots[i].IsMainBooker {
			t.Fatalf("after SetMainBooker(%d): slot %d is not main booker", i, i)
		}
	}

	if err := draft.SetMainBooker(9); err == nil {
		t.Error("out-of-range index should error")
	}
	if err := draft.SetMainBooker(-1); err == nil {
		t.Error("negative index should error")
	}
}

func TestSetParticipantPreservesMainBookerFlag(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.SetParticipantCount(2)

	// The payload lies about being the main booker; the flag only moves
	// through SetMainBooker.
	if err := draft.SetParticipant(1, models.Participant{FirstName: "Kofi", IsMainBooker: true}); err != nil {
		t.Fatalf("SetParticipant error = %v", err)
	}
	if draft.Slots[1].IsMainBooker {
		t.Error("SetParticipant must not grant the main-booker flag")
	}
	if !draft.Slots[0].IsMainBooker {
		t.Error("slot 0 should still hold the flag")
	}

	if err := draft.SetParticipant(0, models.Participant{FirstName: "Amina"}); err != nil {
		t.Fatalf("SetParticipant error = %v", err)
	}
	if !draft.Slots[0].IsMainBooker {
		t.Error("SetParticipant must not strip the main-booker flag")
	}
}

func TestToggleSlot(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)

	if err := draft.ToggleSlot(0); err != nil {
		t.Fatalf("ToggleSlot error = %v", err)
	}
	if draft.Slots[0].Expanded {
		t.Error("slot should be collapsed after toggle")
	}
	if err := draft.ToggleSlot(0); err != nil {
		t.Fatalf("ToggleSlot error = %v", err)
	}
	if !draft.Slots[0].Expanded {
		t.Error("slot should be expanded after second toggle")
	}
	if err := draft.ToggleSlot(5); err == nil {
		t.Error("out-of-range toggle should error")
	}
}

func TestCompletionFraction(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)

	if got := draft.Completion(0); got != 0 {
		t.Errorf("empty slot completion = %v, want 0", got)
	}

	draft.SetParticipant(0, models.Participant{
		FirstName: "Amina",
		LastName:  "Okello",
		Email:     "amina@example.com",
	})
	if got := draft.Completion(0); got != 0.5 {
		t.Errorf("half-filled slot completion = %v, want 0.5", got)
	}

	draft.SetParticipant(0, models.Participant{
		FirstName:   "Amina",
		LastName:    "Okello",
		Email:       "amina@example.com",
		Phone:       "+254712345678",
		DateOfBirth: "1990-04-12",
		Nationality: "Kenyan",
	})
	if got := draft.Completion(0); got != 1 {
		t.Errorf("full slot completion = %v, want 1", got)
	}

	if got := draft.Completion(9); got != 0 {
		t.Errorf("out-of-range completion = %v, want 0", got)
	}
}

func TestParticipantsFlattensSlots(t *testing.T) {
	draft := NewBookingDraft("d1", 7, models.ItemTypeTrip, 1)
	draft.SetParticipantCount(2)
	draft.SetParticipant(0, models.Participant{FirstName: "Amina"})
	draft.SetParticipant(1, models.Participant{FirstName: "Kofi"})

	participants := draft.Participants()
	if len(participants) != 2 {
		t.Fatalf("len = %d, want 2", len(participants))
	}
	if participants[0].FirstName != "Amina" || participants[1].FirstName != "Kofi" {
		t.Error("Participants() should preserve slot order")
	}
	if !participants[0].IsMainBooker || participants[1].IsMainBooker {
		t.Error("Participants() should carry the main-booker flag through")
	}
}
