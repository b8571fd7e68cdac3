package club

import "fmt"

func validSlotIndex(index int) error {
	if index < 0 || index >= SquadSize {
		return fmt.Errorf("%w: got %d, want [0,%d]", ErrInvalidSlotIndex, index, SquadSize-1)
	}
	return nil
}

func (s Squad) cloneSlots() []SquadSlot {
	return append([]SquadSlot(nil), s.Slots...)
}

// PlaceCard puts cardID into the slot, overwriting any current occupant.
func (s Squad) PlaceCard(slotIndex int, cardID string) (Squad, error) {
	if err := validSlotIndex(slotIndex); err != nil {
		return Squad{}, err
	}
	if cardID == "" {
		return Squad{}, fmt.Errorf("card id is required")
	}

	next := s
	next.Slots = s.cloneSlots()
	next.Slots[slotIndex].OccupantCardID = cardID
	return next, nil
}

// RemoveCard clears the slot. Removing from a vacant slot is a no-op.
// If the removed slot carried the captain, the captain selection is
// cleared too so the captain invariant keeps holding.
func (s Squad) RemoveCard(slotIndex int) (Squad, error) {
	if err := validSlotIndex(slotIndex); err != nil {
		return Squad{}, err
	}

	next := s
	next.Slots = s.cloneSlots()
	next.Slots[slotIndex].OccupantCardID = ""
	if next.CaptainSlotIndex == slotIndex {
		next.CaptainSlotIndex = CaptainUnset
	}
	return next, nil
}

// ExchangeCards swaps the occupants of two slots atomically. Swapping a
// slot with itself is a no-op, and applying the same swap twice restores
// the original occupants.
func (s Squad) ExchangeCards(sourceIndex, targetIndex int) (Squad, error) {
	if err := validSlotIndex(sourceIndex); err != nil {
		return Squad{}, err
	}
	if err := validSlotIndex(targetIndex); err != nil {
		return Squad{}, err
	}
	if sourceIndex == targetIndex {
		return s, nil
	}

	next := s
	next.Slots = s.cloneSlots()
	next.Slots[sourceIndex].OccupantCardID, next.Slots[targetIndex].OccupantCardID =
		s.Slots[targetIndex].OccupantCardID, s.Slots[sourceIndex].OccupantCardID
	return next, nil
}

func (s Squad) SetFormation(formation Formation) (Squad, error) {
	if _, ok := AllFormations[formation]; !ok {
		return Squad{}, fmt.Errorf("%w: %s", ErrInvalidFormation, formation)
	}

	next := s
	next.Slots = s.cloneSlots()
	next.Formation = formation
	return next, nil
}

func (s Squad) SetTactic(tactic Tactic) (Squad, error) {
	if _, ok := AllTactics[tactic]; !ok {
		return Squad{}, fmt.Errorf("%w: %s", ErrInvalidTactic, tactic)
	}

	next := s
	next.Slots = s.cloneSlots()
	next.Tactic = tactic
	return next, nil
}

// SetCaptain promotes the occupant of slotIndex. The slot must be occupied,
// so a stored squad can never point its captain at a vacant slot.
func (s Squad) SetCaptain(slotIndex int) (Squad, error) {
	if err := validSlotIndex(slotIndex); err != nil {
		return Squad{}, err
	}
	if s.Slots[slotIndex].Vacant() {
		return Squad{}, fmt.Errorf("%w: index %d", ErrVacantCaptainSlot, slotIndex)
	}

	next := s
	next.Slots = s.cloneSlots()
	next.CaptainSlotIndex = slotIndex
	return next, nil
}

// OccupantAt reports the card at the slot, empty string when vacant.
func (s Squad) OccupantAt(slotIndex int) (string, error) {
	if err := validSlotIndex(slotIndex); err != nil {
		return "", err
	}
	return s.Slots[slotIndex].OccupantCardID, nil
}

// SlotOf finds the slot currently holding cardID, false when absent.
func (s Squad) SlotOf(cardID string) (int, bool) {
	for _, slot := range s.Slots {
		if !slot.Vacant() && slot.OccupantCardID == cardID {
			return slot.Index, true
		}
	}
	return 0, false
}
