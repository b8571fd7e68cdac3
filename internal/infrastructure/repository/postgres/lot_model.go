package postgres

import (
	"database/sql"
	"time"

	"github.com/goalcard/console-api/internal/domain/marketplace"
)

type lotTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	CardPublicID string         `db:"card_public_id"`
	SellerID     string         `db:"seller_id"`
	WinnerID     sql.NullString `db:"winner_id"`
	StartPrice   int64          `db:"start_price"`
	MaxPrice     int64          `db:"max_price"`
	CurrentPrice int64          `db:"current_price"`
	StartTime    time.Time      `db:"start_time"`
	EndTime      time.Time      `db:"end_time"`
	Period       int            `db:"period"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type bidTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	LotPublicID string    `db:"lot_public_id"`
	BidderID    string    `db:"bidder_id"`
	Amount      int64     `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
}

// bidInsertModel omits the serial id so the db assigns it.
type bidInsertModel struct {
	PublicID    string    `db:"public_id"`
	LotPublicID string    `db:"lot_public_id"`
	BidderID    string    `db:"bidder_id"`
	Amount      int64     `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
}

func lotFromRow(row lotTableModel) marketplace.Lot {
	lot := marketplace.Lot{
		ID:           row.PublicID,
		CardID:       row.CardPublicID,
		SellerID:     row.SellerID,
		StartPrice:   row.StartPrice,
		MaxPrice:     row.MaxPrice,
		CurrentPrice: row.CurrentPrice,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		Period:       row.Period,
		Status:       marketplace.Status(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.WinnerID.Valid {
		lot.WinnerID = row.WinnerID.String
	}
	return lot
}
