package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/domain/pagination"
	cardmock "github.com/goalcard/console-api/internal/mocks/domain/card"
	marketplacemock "github.com/goalcard/console-api/internal/mocks/domain/marketplace"
	"github.com/stretchr/testify/mock"
)

func TestMarketplaceService_ListLots_RepoFailureUsingMockery(t *testing.T) {
	t.Parallel()

	lotRepo := marketplacemock.NewRepository(t)
	cardRepo := cardmock.NewRepository(t)
	service := NewMarketplaceService(lotRepo, cardRepo, nil, &sequenceIDGenerator{}, discardLogger())

	page, err := pagination.NewPage(1, 10)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	repoErr := errors.New("connection reset")
	lotRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v != nil }), marketplace.ListFilter{}, page).
		Return(nil, 0, repoErr).
		Once()

	_, err = service.ListLots(context.Background(), marketplace.ListFilter{}, page)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error surfaced, got %v", err)
	}
}

func TestMarketplaceService_GetLot_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	lotRepo := marketplacemock.NewRepository(t)
	cardRepo := cardmock.NewRepository(t)
	service := NewMarketplaceService(lotRepo, cardRepo, nil, &sequenceIDGenerator{}, discardLogger())

	lotRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "lot-missing").
		Return(marketplace.Lot{}, false, nil).
		Once()

	_, err := service.GetLot(context.Background(), "lot-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
