package postgres

import "time"

type clubTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	OwnerID   string     `db:"owner_id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type squadTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	ClubPublicID     string     `db:"club_public_id"`
	Formation        string     `db:"formation"`
	Tactic           string     `db:"tactic"`
	CaptainSlotIndex int        `db:"captain_slot_index"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type squadSlotRowModel struct {
	SlotIndex      int    `db:"slot_index"`
	OccupantCardID string `db:"occupant_card_id"`
}
