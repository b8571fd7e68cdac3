package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goalcard/console-api/internal/domain/card"
	cardmock "github.com/goalcard/console-api/internal/mocks/domain/card"
	"github.com/stretchr/testify/mock"
)

type stubChainGateway struct {
	auth       MintAuthorization
	approveErr error
	submitErr  error
	txHash     string
}

func (g stubChainGateway) RequestMintApproval(context.Context, string, string) (MintAuthorization, error) {
	return g.auth, g.approveErr
}

func (g stubChainGateway) SubmitMintTransaction(context.Context, string, MintAuthorization) (string, error) {
	return g.txHash, g.submitErr
}

func TestMintService_MintCard_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cardRepo := cardmock.NewRepository(t)

	gateway := stubChainGateway{
		auth: MintAuthorization{
			TokenID:         4711,
			ContractAddress: "0xCollectionContract",
			Password:        "a1b2c3",
			Signature:       "deadbeef",
		},
		txHash: "0xf00d",
	}
	service := NewMintService(cardRepo, gateway, discardLogger())

	cardRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "card-gk-0001").
		Return(card.Card{ID: "card-gk-0001", OwnerID: "mgr-demo-0001"}, true, nil).
		Once()
	cardRepo.
		On("SetMinted", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "card-gk-0001", int64(4711)).
		Return(nil).
		Once()

	receipt, err := service.MintCard(ctx, "mgr-demo-0001", "0xWallet", "card-gk-0001")
	if err != nil {
		t.Fatalf("mint card failed: %v", err)
	}
	if receipt.TokenID != 4711 {
		t.Fatalf("unexpected token id: %d", receipt.TokenID)
	}
	if receipt.TxHash != "0xf00d" {
		t.Fatalf("unexpected tx hash: %s", receipt.TxHash)
	}
}

func TestMintService_MintCard_WalletDeniedUsingMockery(t *testing.T) {
	t.Parallel()

	cardRepo := cardmock.NewRepository(t)
	gateway := stubChainGateway{approveErr: fmt.Errorf("request mint approval: %w", ErrWalletDenied)}
	service := NewMintService(cardRepo, gateway, discardLogger())

	cardRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "card-gk-0001").
		Return(card.Card{ID: "card-gk-0001", OwnerID: "mgr-demo-0001"}, true, nil).
		Once()

	_, err := service.MintCard(context.Background(), "mgr-demo-0001", "0xWallet", "card-gk-0001")
	if !errors.Is(err, ErrWalletDenied) {
		t.Fatalf("expected ErrWalletDenied, got %v", err)
	}
}

func TestMintService_MintCard_AlreadyMintedUsingMockery(t *testing.T) {
	t.Parallel()

	cardRepo := cardmock.NewRepository(t)
	service := NewMintService(cardRepo, stubChainGateway{}, discardLogger())

	mintedAt := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	cardRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "card-gk-0001").
		Return(card.Card{ID: "card-gk-0001", OwnerID: "mgr-demo-0001", TokenID: 99, MintedAt: &mintedAt}, true, nil).
		Once()

	_, err := service.MintCard(context.Background(), "mgr-demo-0001", "0xWallet", "card-gk-0001")
	if !errors.Is(err, ErrAlreadyMinted) {
		t.Fatalf("expected ErrAlreadyMinted, got %v", err)
	}
}
