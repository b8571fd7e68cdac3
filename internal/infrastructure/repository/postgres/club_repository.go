package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalcard/console-api/internal/domain/club"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) GetByOwner(ctx context.Context, ownerID string) (club.Club, bool, error) {
	const clubQuery = `
SELECT id, public_id, owner_id, name, created_at, updated_at, deleted_at
FROM clubs
WHERE owner_id = $1
  AND deleted_at IS NULL`

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, clubQuery, ownerID); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by owner: %w", err)
	}

	return r.hydrateClub(ctx, row)
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	const clubQuery = `
SELECT id, public_id, owner_id, name, created_at, updated_at, deleted_at
FROM clubs
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, clubQuery, clubID); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club: %w", err)
	}

	return r.hydrateClub(ctx, row)
}

func (r *ClubRepository) hydrateClub(ctx context.Context, row clubTableModel) (club.Club, bool, error) {
	const squadQuery = `
SELECT id, public_id, club_public_id, formation, tactic, captain_slot_index, created_at, updated_at, deleted_at
FROM squads
WHERE club_public_id = $1
  AND deleted_at IS NULL`

	var squadRow squadTableModel
	if err := r.db.GetContext(ctx, &squadRow, squadQuery, row.PublicID); err != nil {
		return club.Club{}, false, fmt.Errorf("get squad for club %s: %w", row.PublicID, err)
	}

	const slotsQuery = `
SELECT slot_index, occupant_card_id
FROM squad_slots
WHERE squad_public_id = $1
ORDER BY slot_index`

	var slotRows []squadSlotRowModel
	if err := r.db.SelectContext(ctx, &slotRows, slotsQuery, squadRow.PublicID); err != nil {
		return club.Club{}, false, fmt.Errorf("list squad slots: %w", err)
	}

	slots := make([]club.SquadSlot, 0, len(slotRows))
	for _, s := range slotRows {
		slots = append(slots, club.SquadSlot{
			Index:          s.SlotIndex,
			OccupantCardID: s.OccupantCardID,
		})
	}

	return club.Club{
		ID:      row.PublicID,
		OwnerID: row.OwnerID,
		Name:    row.Name,
		Squad: club.Squad{
			ID:               squadRow.PublicID,
			ClubID:           squadRow.ClubPublicID,
			Formation:        club.Formation(squadRow.Formation),
			Tactic:           club.Tactic(squadRow.Tactic),
			CaptainSlotIndex: squadRow.CaptainSlotIndex,
			Slots:            slots,
			UpdatedAt:        squadRow.UpdatedAt,
		},
		CreatedAt: row.CreatedAt,
	}, true, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for club create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertClubQuery = `
INSERT INTO clubs (public_id, owner_id, name)
VALUES (:public_id, :owner_id, :name)`

	clubSQL, clubArgs, err := sqlx.Named(insertClubQuery, map[string]any{
		"public_id": c.ID,
		"owner_id":  c.OwnerID,
		"name":      c.Name,
	})
	if err != nil {
		return fmt.Errorf("bind insert club query: %w", err)
	}
	clubSQL = tx.Rebind(clubSQL)
	if _, err := tx.ExecContext(ctx, clubSQL, clubArgs...); err != nil {
		return fmt.Errorf("insert club: %w", err)
	}

	const insertSquadQuery = `
INSERT INTO squads (public_id, club_public_id, formation, tactic, captain_slot_index)
VALUES (:public_id, :club_public_id, :formation, :tactic, :captain_slot_index)`

	squadSQL, squadArgs, err := sqlx.Named(insertSquadQuery, map[string]any{
		"public_id":          c.Squad.ID,
		"club_public_id":     c.ID,
		"formation":          string(c.Squad.Formation),
		"tactic":             string(c.Squad.Tactic),
		"captain_slot_index": c.Squad.CaptainSlotIndex,
	})
	if err != nil {
		return fmt.Errorf("bind insert squad query: %w", err)
	}
	squadSQL = tx.Rebind(squadSQL)
	if _, err := tx.ExecContext(ctx, squadSQL, squadArgs...); err != nil {
		return fmt.Errorf("insert squad: %w", err)
	}

	if err := insertSlots(ctx, tx, c.Squad); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit club create tx: %w", err)
	}
	return nil
}

func (r *ClubRepository) UpdateSquad(ctx context.Context, squad club.Squad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for squad update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateSquadQuery = `
UPDATE squads
SET formation = :formation,
    tactic = :tactic,
    captain_slot_index = :captain_slot_index,
    updated_at = :updated_at
WHERE public_id = :public_id
  AND deleted_at IS NULL`

	squadSQL, squadArgs, err := sqlx.Named(updateSquadQuery, map[string]any{
		"public_id":          squad.ID,
		"formation":          string(squad.Formation),
		"tactic":             string(squad.Tactic),
		"captain_slot_index": squad.CaptainSlotIndex,
		"updated_at":         squad.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind update squad query: %w", err)
	}
	squadSQL = tx.Rebind(squadSQL)

	res, err := tx.ExecContext(ctx, squadSQL, squadArgs...)
	if err != nil {
		return fmt.Errorf("update squad: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update squad: squad %s not found", squad.ID)
	}

	const clearSlotsQuery = `
DELETE FROM squad_slots
WHERE squad_public_id = $1`
	if _, err := tx.ExecContext(ctx, clearSlotsQuery, squad.ID); err != nil {
		return fmt.Errorf("clear squad slots: %w", err)
	}

	if err := insertSlots(ctx, tx, squad); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit squad update tx: %w", err)
	}
	return nil
}

func insertSlots(ctx context.Context, tx *sqlx.Tx, squad club.Squad) error {
	const insertSlotQuery = `
INSERT INTO squad_slots (squad_public_id, slot_index, occupant_card_id)
VALUES (:squad_public_id, :slot_index, :occupant_card_id)`

	for _, slot := range squad.Slots {
		slotSQL, slotArgs, err := sqlx.Named(insertSlotQuery, map[string]any{
			"squad_public_id":  squad.ID,
			"slot_index":       slot.Index,
			"occupant_card_id": slot.OccupantCardID,
		})
		if err != nil {
			return fmt.Errorf("bind insert squad slot %d query: %w", slot.Index, err)
		}
		slotSQL = tx.Rebind(slotSQL)
		if _, err := tx.ExecContext(ctx, slotSQL, slotArgs...); err != nil {
			return fmt.Errorf("insert squad slot %d: %w", slot.Index, err)
		}
	}
	return nil
}
