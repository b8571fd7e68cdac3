package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/domain/pagination"
	qb "github.com/goalcard/console-api/internal/platform/querybuilder"
)

type LotRepository struct {
	db *sqlx.DB
}

var lotSelectColumns = []string{
	"id",
	"public_id",
	"card_public_id",
	"seller_id",
	"winner_id",
	"start_price",
	"max_price",
	"current_price",
	"start_time",
	"end_time",
	"period",
	"status",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewLotRepository(db *sqlx.DB) *LotRepository {
	return &LotRepository{db: db}
}

func (r *LotRepository) GetByID(ctx context.Context, lotID string) (marketplace.Lot, bool, error) {
	query, args, err := qb.Select(lotSelectColumns...).From("lots").
		Where(
			qb.Eq("public_id", lotID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return marketplace.Lot{}, false, fmt.Errorf("build select lot query: %w", err)
	}

	var row lotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return marketplace.Lot{}, false, nil
		}
		return marketplace.Lot{}, false, fmt.Errorf("get lot: %w", err)
	}

	return lotFromRow(row), true, nil
}

func (r *LotRepository) GetActiveByCard(ctx context.Context, cardID string) (marketplace.Lot, bool, error) {
	query, args, err := qb.Select(lotSelectColumns...).From("lots").
		Where(
			qb.Eq("card_public_id", cardID),
			qb.In("status", []any{
				string(marketplace.StatusActive),
				string(marketplace.StatusHold),
			}),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return marketplace.Lot{}, false, fmt.Errorf("build select active lot by card query: %w", err)
	}

	var row lotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return marketplace.Lot{}, false, nil
		}
		return marketplace.Lot{}, false, fmt.Errorf("get active lot by card: %w", err)
	}

	return lotFromRow(row), true, nil
}

func (r *LotRepository) List(ctx context.Context, filter marketplace.ListFilter, page pagination.Page) ([]marketplace.Lot, int, error) {
	conditions := lotFilterConditions(filter)

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("lots").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count lots query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count lots: %w", err)
	}

	query, args, err := qb.Select(lotSelectColumns...).From("lots").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select lots query: %w", err)
	}

	var rows []lotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select lots: %w", err)
	}

	out := make([]marketplace.Lot, 0, len(rows))
	for _, row := range rows {
		out = append(out, lotFromRow(row))
	}
	return out, total, nil
}

func (r *LotRepository) ListActiveEndedBefore(ctx context.Context, deadline time.Time, limit int) ([]marketplace.Lot, error) {
	query, args, err := qb.Select(lotSelectColumns...).From("lots").
		Where(
			qb.In("status", []any{
				string(marketplace.StatusActive),
				string(marketplace.StatusHold),
			}),
			qb.Expr("end_time <= ?", deadline),
			qb.IsNull("deleted_at"),
		).
		OrderBy("end_time").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ended lots query: %w", err)
	}

	var rows []lotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ended lots: %w", err)
	}

	out := make([]marketplace.Lot, 0, len(rows))
	for _, row := range rows {
		out = append(out, lotFromRow(row))
	}
	return out, nil
}

func (r *LotRepository) Create(ctx context.Context, lot marketplace.Lot) error {
	const insertQuery = `
INSERT INTO lots (
    public_id,
    card_public_id,
    seller_id,
    start_price,
    max_price,
    current_price,
    start_time,
    end_time,
    period,
    status
) VALUES (
    :public_id,
    :card_public_id,
    :seller_id,
    :start_price,
    :max_price,
    :current_price,
    :start_time,
    :end_time,
    :period,
    :status
)`

	insertSQL, insertArgs, err := sqlx.Named(insertQuery, map[string]any{
		"public_id":      lot.ID,
		"card_public_id": lot.CardID,
		"seller_id":      lot.SellerID,
		"start_price":    lot.StartPrice,
		"max_price":      lot.MaxPrice,
		"current_price":  lot.CurrentPrice,
		"start_time":     lot.StartTime,
		"end_time":       lot.EndTime,
		"period":         lot.Period,
		"status":         string(lot.Status),
	})
	if err != nil {
		return fmt.Errorf("bind insert lot query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

func (r *LotRepository) Update(ctx context.Context, lot marketplace.Lot) error {
	const updateQuery = `
UPDATE lots
SET winner_id = :winner_id,
    current_price = :current_price,
    status = :status,
    updated_at = :updated_at
WHERE public_id = :public_id
  AND deleted_at IS NULL
  AND current_price <= :current_price
  AND status IN ('active', 'hold')`

	var winnerID sql.NullString
	if lot.WinnerID != "" {
		winnerID = sql.NullString{String: lot.WinnerID, Valid: true}
	}
	updateSQL, updateArgs, err := sqlx.Named(updateQuery, map[string]any{
		"public_id":     lot.ID,
		"winner_id":     winnerID,
		"current_price": lot.CurrentPrice,
		"status":        string(lot.Status),
		"updated_at":    lot.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind update lot query: %w", err)
	}
	updateSQL = r.db.Rebind(updateSQL)

	res, err := r.db.ExecContext(ctx, updateSQL, updateArgs...)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	// The price and status guards make the write conditional: a row a
	// concurrent request already raised or closed matches nothing.
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update lot: lot %s not found or already changed", lot.ID)
	}
	return nil
}

func (r *LotRepository) AppendBid(ctx context.Context, bid marketplace.Bid) error {
	insertSQL, insertArgs, err := qb.InsertModel("lot_bids", bidInsertModel{
		PublicID:    bid.ID,
		LotPublicID: bid.LotID,
		BidderID:    bid.BidderID,
		Amount:      bid.Amount,
		CreatedAt:   bid.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert bid query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (r *LotRepository) ListBids(ctx context.Context, lotID string) ([]marketplace.Bid, error) {
	const selectQuery = `
SELECT id, public_id, lot_public_id, bidder_id, amount, created_at
FROM lot_bids
WHERE lot_public_id = $1
ORDER BY id`

	var rows []bidTableModel
	if err := r.db.SelectContext(ctx, &rows, selectQuery, lotID); err != nil {
		return nil, fmt.Errorf("select bids: %w", err)
	}

	out := make([]marketplace.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, marketplace.Bid{
			ID:        row.PublicID,
			LotID:     row.LotPublicID,
			BidderID:  row.BidderID,
			Amount:    row.Amount,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func lotFilterConditions(filter marketplace.ListFilter) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}
	if filter.SellerID != "" {
		conditions = append(conditions, qb.Eq("seller_id", filter.SellerID))
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, qb.Expr("current_price >= ?", filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, qb.Expr("current_price <= ?", filter.MaxPrice))
	}
	return conditions
}
