package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/pagination"
	qb "github.com/goalcard/console-api/internal/platform/querybuilder"
)

type CardRepository struct {
	db *sqlx.DB
}

var cardSelectColumns = []string{
	"id",
	"public_id",
	"owner_id",
	"player_name",
	"quality",
	"stats",
	"token_id",
	"minted_at",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewCardRepository(db *sqlx.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) GetByID(ctx context.Context, cardID string) (card.Card, bool, error) {
	query, args, err := qb.Select(cardSelectColumns...).From("cards").
		Where(
			qb.Eq("public_id", cardID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return card.Card{}, false, fmt.Errorf("build select card query: %w", err)
	}

	var row cardTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return card.Card{}, false, nil
		}
		return card.Card{}, false, fmt.Errorf("get card: %w", err)
	}

	out, err := cardFromRow(row)
	if err != nil {
		return card.Card{}, false, err
	}
	return out, true, nil
}

func (r *CardRepository) GetByIDs(ctx context.Context, cardIDs []string) ([]card.Card, error) {
	if len(cardIDs) == 0 {
		return []card.Card{}, nil
	}

	query, args, err := qb.Select(cardSelectColumns...).From("cards").
		Where(
			qb.In("public_id", stringSliceToAny(cardIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select cards by ids query: %w", err)
	}

	var rows []cardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select cards by ids: %w", err)
	}

	return cardsFromRows(rows)
}

func (r *CardRepository) ListByOwner(ctx context.Context, ownerID string, page pagination.Page) ([]card.Card, int, error) {
	const countQuery = `
SELECT COUNT(*)
FROM cards
WHERE owner_id = $1
  AND deleted_at IS NULL`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, fmt.Errorf("count cards by owner: %w", err)
	}

	query, args, err := qb.Select(cardSelectColumns...).From("cards").
		Where(
			qb.Eq("owner_id", ownerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		Limit(page.Limit).
		Offset(page.Offset()).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select cards by owner query: %w", err)
	}

	var rows []cardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select cards by owner: %w", err)
	}

	cards, err := cardsFromRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

func (r *CardRepository) Create(ctx context.Context, c card.Card) error {
	stats, err := sonic.Marshal(c.Stats)
	if err != nil {
		return fmt.Errorf("encode card stats: %w", err)
	}

	const insertQuery = `
INSERT INTO cards (public_id, owner_id, player_name, quality, stats)
VALUES (:public_id, :owner_id, :player_name, :quality, :stats)`

	insertSQL, insertArgs, err := sqlx.Named(insertQuery, map[string]any{
		"public_id":   c.ID,
		"owner_id":    c.OwnerID,
		"player_name": c.PlayerName,
		"quality":     string(c.Quality),
		"stats":       stats,
	})
	if err != nil {
		return fmt.Errorf("bind insert card query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *CardRepository) TransferOwner(ctx context.Context, cardID, newOwnerID string) error {
	const updateQuery = `
UPDATE cards
SET owner_id = $1,
    updated_at = NOW()
WHERE public_id = $2
  AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, updateQuery, newOwnerID, cardID)
	if err != nil {
		return fmt.Errorf("transfer card owner: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("transfer card owner: card %s not found", cardID)
	}
	return nil
}

func (r *CardRepository) SetMinted(ctx context.Context, cardID string, tokenID int64) error {
	const updateQuery = `
UPDATE cards
SET token_id = $1,
    minted_at = NOW(),
    updated_at = NOW()
WHERE public_id = $2
  AND minted_at IS NULL
  AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, updateQuery, tokenID, cardID)
	if err != nil {
		return fmt.Errorf("mark card minted: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("mark card minted: card %s not found or already minted", cardID)
	}
	return nil
}

func cardFromRow(row cardTableModel) (card.Card, error) {
	stats := map[string]int64{}
	if len(row.Stats) > 0 {
		if err := sonic.Unmarshal(row.Stats, &stats); err != nil {
			return card.Card{}, fmt.Errorf("decode card %s stats: %w", row.PublicID, err)
		}
	}

	out := card.Card{
		ID:         row.PublicID,
		OwnerID:    row.OwnerID,
		PlayerName: row.PlayerName,
		Quality:    card.Quality(row.Quality),
		Stats:      stats,
		MintedAt:   row.MintedAt,
		CreatedAt:  row.CreatedAt,
	}
	if row.TokenID.Valid {
		out.TokenID = row.TokenID.Int64
	}
	return out, nil
}

func cardsFromRows(rows []cardTableModel) ([]card.Card, error) {
	out := make([]card.Card, 0, len(rows))
	for _, row := range rows {
		c, err := cardFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
