package card

import (
	"context"

	"github.com/goalcard/console-api/internal/domain/pagination"
)

// Repository exposes card persistence operations.
type Repository interface {
	GetByID(ctx context.Context, cardID string) (Card, bool, error)
	GetByIDs(ctx context.Context, cardIDs []string) ([]Card, error)
	ListByOwner(ctx context.Context, ownerID string, page pagination.Page) ([]Card, int, error)
	Create(ctx context.Context, card Card) error
	TransferOwner(ctx context.Context, cardID, newOwnerID string) error
	SetMinted(ctx context.Context, cardID string, tokenID int64) error
}
