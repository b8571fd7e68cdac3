package club

import "context"

// Repository exposes club and squad persistence operations.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID string) (Club, bool, error)
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	Create(ctx context.Context, club Club) error
	UpdateSquad(ctx context.Context, squad Squad) error
}
