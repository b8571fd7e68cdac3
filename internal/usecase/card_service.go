package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/pagination"
)

type CardService struct {
	cardRepo card.Repository
}

func NewCardService(cardRepo card.Repository) *CardService {
	return &CardService{cardRepo: cardRepo}
}

// ListOwnerCards returns one page of the owner's collection plus the
// totals needed to render page controls.
func (s *CardService) ListOwnerCards(ctx context.Context, ownerID string, page pagination.Page) ([]card.Card, pagination.Totals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardService.ListOwnerCards")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, pagination.Totals{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	items, total, err := s.cardRepo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, pagination.Totals{}, fmt.Errorf("list cards by owner: %w", err)
	}

	return items, page.TotalsFor(total), nil
}

func (s *CardService) GetCard(ctx context.Context, cardID string) (card.Card, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CardService.GetCard")
	defer span.End()

	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return card.Card{}, fmt.Errorf("%w: card id is required", ErrInvalidInput)
	}

	item, exists, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return card.Card{}, fmt.Errorf("get card: %w", err)
	}
	if !exists {
		return card.Card{}, fmt.Errorf("%w: card=%s", ErrNotFound, cardID)
	}

	return item, nil
}
