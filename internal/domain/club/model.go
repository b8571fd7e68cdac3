package club

import (
	"errors"
	"fmt"
	"time"
)

const SquadSize = 11

// CaptainUnset is the sentinel for a squad without a chosen captain.
const CaptainUnset = -1

var (
	ErrInvalidSlotIndex  = errors.New("slot index out of range")
	ErrVacantCaptainSlot = errors.New("captain slot is vacant")
	ErrInvalidFormation  = errors.New("unknown formation")
	ErrInvalidTactic     = errors.New("unknown tactic")
)

// Formation is an enumerated tactical layout applied to a squad.
type Formation string

const (
	Formation442   Formation = "4-4-2"
	Formation424   Formation = "4-2-4"
	Formation4222  Formation = "4-2-2-2"
	Formation4312  Formation = "4-3-1-2"
	Formation433   Formation = "4-3-3"
	Formation4231  Formation = "4-2-3-1"
	Formation4321  Formation = "4-3-2-1"
	Formation532   Formation = "5-3-2"
	Formation451   Formation = "4-5-1"
	Formation4132  Formation = "4-1-3-2"
)

var AllFormations = map[Formation]struct{}{
	Formation442:  {},
	Formation424:  {},
	Formation4222: {},
	Formation4312: {},
	Formation433:  {},
	Formation4231: {},
	Formation4321: {},
	Formation532:  {},
	Formation451:  {},
	Formation4132: {},
}

// Tactic is an enumerated match strategy.
type Tactic string

const (
	TacticAttack   Tactic = "attack"
	TacticDefence  Tactic = "defence"
	TacticBalanced Tactic = "balanced"
)

var AllTactics = map[Tactic]struct{}{
	TacticAttack:   {},
	TacticDefence:  {},
	TacticBalanced: {},
}

// SquadSlot is one fixed position in the starting lineup. Index is the
// slot's identity and is never reassigned; an empty OccupantCardID marks
// a vacant slot.
type SquadSlot struct {
	Index          int
	OccupantCardID string
}

func (s SquadSlot) Vacant() bool {
	return s.OccupantCardID == ""
}

// Squad aggregates the 11 roster slots plus formation, tactic and captain.
// Squad values are immutable: every operation returns a fresh value with
// freshly allocated slots, so readers never observe a partial update.
type Squad struct {
	ID               string
	ClubID           string
	Formation        Formation
	Tactic           Tactic
	CaptainSlotIndex int
	Slots            []SquadSlot
	UpdatedAt        time.Time
}

// Club owns one squad and a collection of cards.
type Club struct {
	ID        string
	OwnerID   string
	Name      string
	Squad     Squad
	CreatedAt time.Time
}

// NewSquad builds an empty squad with the full contiguous slot range.
func NewSquad(id, clubID string) Squad {
	slots := make([]SquadSlot, SquadSize)
	for i := range slots {
		slots[i] = SquadSlot{Index: i}
	}

	return Squad{
		ID:               id,
		ClubID:           clubID,
		Formation:        Formation442,
		Tactic:           TacticBalanced,
		CaptainSlotIndex: CaptainUnset,
		Slots:            slots,
	}
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.ClubID == "" {
		return fmt.Errorf("club id is required")
	}
	if len(s.Slots) != SquadSize {
		return fmt.Errorf("squad must hold exactly %d slots, got %d", SquadSize, len(s.Slots))
	}
	for i, slot := range s.Slots {
		if slot.Index != i {
			return fmt.Errorf("slot index %d out of order at position %d", slot.Index, i)
		}
	}
	if _, ok := AllFormations[s.Formation]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidFormation, s.Formation)
	}
	if _, ok := AllTactics[s.Tactic]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidTactic, s.Tactic)
	}
	if s.CaptainSlotIndex != CaptainUnset {
		if s.CaptainSlotIndex < 0 || s.CaptainSlotIndex >= SquadSize {
			return fmt.Errorf("%w: captain index %d", ErrInvalidSlotIndex, s.CaptainSlotIndex)
		}
		if s.Slots[s.CaptainSlotIndex].Vacant() {
			return fmt.Errorf("%w: index %d", ErrVacantCaptainSlot, s.CaptainSlotIndex)
		}
	}

	return nil
}
