package club

import (
	"errors"
	"testing"
)

func seededSquad(t *testing.T) Squad {
	t.Helper()

	squad := NewSquad("squad-001", "club-001")
	var err error
	for i, cardID := range []string{"card-a", "card-b", "card-c"} {
		squad, err = squad.PlaceCard(i, cardID)
		if err != nil {
			t.Fatalf("place card at %d: %v", i, err)
		}
	}
	return squad
}

func TestSquad_PlaceThenRemoveRestoresVacancy(t *testing.T) {
	for i := 0; i < SquadSize; i++ {
		squad := NewSquad("squad-001", "club-001")

		placed, err := squad.PlaceCard(i, "card-x")
		if err != nil {
			t.Fatalf("place card at %d: %v", i, err)
		}
		if got, _ := placed.OccupantAt(i); got != "card-x" {
			t.Fatalf("slot %d occupant: got %q, want card-x", i, got)
		}

		removed, err := placed.RemoveCard(i)
		if err != nil {
			t.Fatalf("remove card at %d: %v", i, err)
		}
		if got, _ := removed.OccupantAt(i); got != "" {
			t.Fatalf("slot %d should be vacant after remove, got %q", i, got)
		}
	}
}

func TestSquad_PlaceCardOverwrites(t *testing.T) {
	squad := seededSquad(t)

	next, err := squad.PlaceCard(0, "card-z")
	if err != nil {
		t.Fatalf("place over occupied slot: %v", err)
	}
	if got, _ := next.OccupantAt(0); got != "card-z" {
		t.Fatalf("expected overwrite to card-z, got %q", got)
	}
	// The original value is untouched.
	if got, _ := squad.OccupantAt(0); got != "card-a" {
		t.Fatalf("original squad mutated: got %q", got)
	}
}

func TestSquad_ExchangeCardsIsSelfInverse(t *testing.T) {
	squad := seededSquad(t)

	swapped, err := squad.ExchangeCards(0, 2)
	if err != nil {
		t.Fatalf("exchange cards: %v", err)
	}
	if got, _ := swapped.OccupantAt(0); got != "card-c" {
		t.Fatalf("slot 0 after swap: got %q, want card-c", got)
	}
	if got, _ := swapped.OccupantAt(2); got != "card-a" {
		t.Fatalf("slot 2 after swap: got %q, want card-a", got)
	}

	restored, err := swapped.ExchangeCards(0, 2)
	if err != nil {
		t.Fatalf("exchange cards back: %v", err)
	}
	for i := range restored.Slots {
		if restored.Slots[i].OccupantCardID != squad.Slots[i].OccupantCardID {
			t.Fatalf("slot %d not restored: got %q, want %q",
				i, restored.Slots[i].OccupantCardID, squad.Slots[i].OccupantCardID)
		}
	}
}

func TestSquad_ExchangeSameSlotIsNoop(t *testing.T) {
	squad := seededSquad(t)

	for i := 0; i < SquadSize; i++ {
		next, err := squad.ExchangeCards(i, i)
		if err != nil {
			t.Fatalf("self exchange at %d: %v", i, err)
		}
		for j := range next.Slots {
			if next.Slots[j].OccupantCardID != squad.Slots[j].OccupantCardID {
				t.Fatalf("self exchange at %d changed slot %d", i, j)
			}
		}
	}
}

func TestSquad_RemoveVacantSlotIsNoop(t *testing.T) {
	squad := NewSquad("squad-001", "club-001")

	next, err := squad.RemoveCard(5)
	if err != nil {
		t.Fatalf("remove from vacant slot: %v", err)
	}
	if got, _ := next.OccupantAt(5); got != "" {
		t.Fatalf("slot 5 should stay vacant, got %q", got)
	}
}

func TestSquad_OutOfRangeIndexFailsFast(t *testing.T) {
	squad := seededSquad(t)

	for _, index := range []int{-1, SquadSize, 42} {
		if _, err := squad.PlaceCard(index, "card-x"); !errors.Is(err, ErrInvalidSlotIndex) {
			t.Fatalf("place at %d: expected ErrInvalidSlotIndex, got %v", index, err)
		}
		if _, err := squad.RemoveCard(index); !errors.Is(err, ErrInvalidSlotIndex) {
			t.Fatalf("remove at %d: expected ErrInvalidSlotIndex, got %v", index, err)
		}
		if _, err := squad.ExchangeCards(0, index); !errors.Is(err, ErrInvalidSlotIndex) {
			t.Fatalf("exchange with %d: expected ErrInvalidSlotIndex, got %v", index, err)
		}
		if _, err := squad.SetCaptain(index); !errors.Is(err, ErrInvalidSlotIndex) {
			t.Fatalf("set captain %d: expected ErrInvalidSlotIndex, got %v", index, err)
		}
	}
}

func TestSquad_CaptainMustBeOccupied(t *testing.T) {
	squad := seededSquad(t)

	if _, err := squad.SetCaptain(10); !errors.Is(err, ErrVacantCaptainSlot) {
		t.Fatalf("expected ErrVacantCaptainSlot, got %v", err)
	}

	withCaptain, err := squad.SetCaptain(1)
	if err != nil {
		t.Fatalf("set captain: %v", err)
	}
	if withCaptain.CaptainSlotIndex != 1 {
		t.Fatalf("captain index: got %d, want 1", withCaptain.CaptainSlotIndex)
	}

	// Removing the captain's card clears the selection.
	removed, err := withCaptain.RemoveCard(1)
	if err != nil {
		t.Fatalf("remove captain card: %v", err)
	}
	if removed.CaptainSlotIndex != CaptainUnset {
		t.Fatalf("captain index after removal: got %d, want unset", removed.CaptainSlotIndex)
	}
}

func TestSquad_SetFormationAndTactic(t *testing.T) {
	squad := seededSquad(t)

	next, err := squad.SetFormation(Formation433)
	if err != nil {
		t.Fatalf("set formation: %v", err)
	}
	if next.Formation != Formation433 {
		t.Fatalf("formation: got %s, want %s", next.Formation, Formation433)
	}

	next, err = next.SetTactic(TacticAttack)
	if err != nil {
		t.Fatalf("set tactic: %v", err)
	}
	if next.Tactic != TacticAttack {
		t.Fatalf("tactic: got %s, want %s", next.Tactic, TacticAttack)
	}

	if _, err := squad.SetFormation(Formation("3-3-5")); !errors.Is(err, ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation, got %v", err)
	}
	if _, err := squad.SetTactic(Tactic("yolo")); !errors.Is(err, ErrInvalidTactic) {
		t.Fatalf("expected ErrInvalidTactic, got %v", err)
	}
}

func TestDragState_ResolvesSwapPair(t *testing.T) {
	drag, err := BeginDrag(3)
	if err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	if _, _, ok := drag.Resolved(); ok {
		t.Fatal("drag without target should not resolve")
	}

	drag, err = drag.WithTarget(7)
	if err != nil {
		t.Fatalf("set drag target: %v", err)
	}

	source, target, ok := drag.Resolved()
	if !ok || source != 3 || target != 7 {
		t.Fatalf("resolved pair: got (%d,%d,%v), want (3,7,true)", source, target, ok)
	}

	cleared := drag.Clear()
	if cleared.Active() {
		t.Fatal("cleared drag should be inactive")
	}
}

func TestSquad_CodecRoundTrip(t *testing.T) {
	squad := seededSquad(t)
	squad, err := squad.SetFormation(Formation4231)
	if err != nil {
		t.Fatalf("set formation: %v", err)
	}
	squad, err = squad.SetTactic(TacticDefence)
	if err != nil {
		t.Fatalf("set tactic: %v", err)
	}
	squad, err = squad.SetCaptain(2)
	if err != nil {
		t.Fatalf("set captain: %v", err)
	}

	encoded, err := EncodeSquad(squad)
	if err != nil {
		t.Fatalf("encode squad: %v", err)
	}

	decoded, err := DecodeSquad(encoded)
	if err != nil {
		t.Fatalf("decode squad: %v", err)
	}

	if decoded.Formation != squad.Formation || decoded.Tactic != squad.Tactic {
		t.Fatalf("formation/tactic mismatch after round trip: %s/%s", decoded.Formation, decoded.Tactic)
	}
	if decoded.CaptainSlotIndex != squad.CaptainSlotIndex {
		t.Fatalf("captain index mismatch: got %d, want %d", decoded.CaptainSlotIndex, squad.CaptainSlotIndex)
	}
	for i := range squad.Slots {
		if decoded.Slots[i] != squad.Slots[i] {
			t.Fatalf("slot %d mismatch: got %+v, want %+v", i, decoded.Slots[i], squad.Slots[i])
		}
	}
}
