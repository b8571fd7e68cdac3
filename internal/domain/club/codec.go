package club

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
)

type squadDocument struct {
	ID               string         `json:"id"`
	ClubID           string         `json:"clubId"`
	Formation        string         `json:"formation"`
	Tactic           string         `json:"tactic"`
	CaptainSlotIndex int            `json:"captainSlotIndex"`
	Slots            []slotDocument `json:"slots"`
	UpdatedAtUTC     string         `json:"updatedAtUtc,omitempty"`
}

type slotDocument struct {
	Index          int    `json:"index"`
	OccupantCardID string `json:"occupantCardId,omitempty"`
}

// EncodeSquad renders the squad as its wire document.
func EncodeSquad(s Squad) ([]byte, error) {
	doc := squadDocument{
		ID:               s.ID,
		ClubID:           s.ClubID,
		Formation:        string(s.Formation),
		Tactic:           string(s.Tactic),
		CaptainSlotIndex: s.CaptainSlotIndex,
		Slots:            make([]slotDocument, 0, len(s.Slots)),
	}
	if !s.UpdatedAt.IsZero() {
		doc.UpdatedAtUTC = s.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	for _, slot := range s.Slots {
		doc.Slots = append(doc.Slots, slotDocument{
			Index:          slot.Index,
			OccupantCardID: slot.OccupantCardID,
		})
	}

	return sonic.ConfigDefault.Marshal(doc)
}

// DecodeSquad parses a wire document back into a squad and validates the
// slot invariants, so a round trip always yields an identical squad.
func DecodeSquad(data []byte) (Squad, error) {
	var doc squadDocument
	if err := sonic.ConfigDefault.Unmarshal(data, &doc); err != nil {
		return Squad{}, fmt.Errorf("unmarshal squad document: %w", err)
	}

	squad := Squad{
		ID:               doc.ID,
		ClubID:           doc.ClubID,
		Formation:        Formation(doc.Formation),
		Tactic:           Tactic(doc.Tactic),
		CaptainSlotIndex: doc.CaptainSlotIndex,
		Slots:            make([]SquadSlot, 0, len(doc.Slots)),
	}
	if doc.UpdatedAtUTC != "" {
		updatedAt, err := time.Parse(time.RFC3339Nano, doc.UpdatedAtUTC)
		if err != nil {
			return Squad{}, fmt.Errorf("parse squad updated at: %w", err)
		}
		squad.UpdatedAt = updatedAt
	}
	for _, slot := range doc.Slots {
		squad.Slots = append(squad.Slots, SquadSlot{
			Index:          slot.Index,
			OccupantCardID: slot.OccupantCardID,
		})
	}

	if err := squad.ValidateBasic(); err != nil {
		return Squad{}, fmt.Errorf("validate decoded squad: %w", err)
	}

	return squad, nil
}
