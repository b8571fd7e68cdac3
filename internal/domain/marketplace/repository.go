package marketplace

import (
	"context"
	"time"

	"github.com/goalcard/console-api/internal/domain/pagination"
)

// Repository exposes lot persistence operations.
type Repository interface {
	GetByID(ctx context.Context, lotID string) (Lot, bool, error)
	GetActiveByCard(ctx context.Context, cardID string) (Lot, bool, error)
	List(ctx context.Context, filter ListFilter, page pagination.Page) ([]Lot, int, error)
	ListActiveEndedBefore(ctx context.Context, deadline time.Time, limit int) ([]Lot, error)
	Create(ctx context.Context, lot Lot) error
	Update(ctx context.Context, lot Lot) error
	AppendBid(ctx context.Context, bid Bid) error
	ListBids(ctx context.Context, lotID string) ([]Bid, error)
}

// ListFilter narrows the lot listing. Zero values mean "no constraint".
type ListFilter struct {
	Status   Status
	SellerID string
	MinPrice int64
	MaxPrice int64
}
