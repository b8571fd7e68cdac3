package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goalcard/console-api/internal/domain/card"
)

// MintAuthorization is the one-time payload issued by the chain gateway
// for minting one card: the reserved token id plus the opaque password
// fragments the contract expects concatenated into the transaction data.
type MintAuthorization struct {
	TokenID         int64
	ContractAddress string
	Password        string
	Signature       string
}

// MintReceipt reports a submitted mint transaction.
type MintReceipt struct {
	TokenID int64  `json:"tokenId"`
	TxHash  string `json:"txHash"`
}

// ChainGateway is the boundary to the wallet/chain side. The console only
// builds and forwards opaque payloads; signing and broadcasting stay with
// the external provider.
type ChainGateway interface {
	RequestMintApproval(ctx context.Context, walletAddress, cardID string) (MintAuthorization, error)
	SubmitMintTransaction(ctx context.Context, walletAddress string, auth MintAuthorization) (string, error)
}

type MintService struct {
	cardRepo card.Repository
	gateway  ChainGateway
	logger   *slog.Logger
	now      func() time.Time
}

func NewMintService(cardRepo card.Repository, gateway ChainGateway, logger *slog.Logger) *MintService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MintService{
		cardRepo: cardRepo,
		gateway:  gateway,
		logger:   logger,
		now:      time.Now,
	}
}

// MintCard turns an owned card into an on-chain token. Failures from the
// wallet side surface as the usecase wallet sentinels; no retry happens
// here, the user re-initiates from a fresh gesture.
func (s *MintService) MintCard(ctx context.Context, ownerID, walletAddress, cardID string) (MintReceipt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MintService.MintCard")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	walletAddress = strings.TrimSpace(walletAddress)
	cardID = strings.TrimSpace(cardID)
	if ownerID == "" || cardID == "" {
		return MintReceipt{}, fmt.Errorf("%w: owner id and card id are required", ErrInvalidInput)
	}
	if walletAddress == "" {
		return MintReceipt{}, fmt.Errorf("%w: wallet address is required", ErrInvalidInput)
	}

	owned, exists, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return MintReceipt{}, fmt.Errorf("get card: %w", err)
	}
	if !exists {
		return MintReceipt{}, fmt.Errorf("%w: card=%s", ErrNotFound, cardID)
	}
	if owned.OwnerID != ownerID {
		return MintReceipt{}, fmt.Errorf("%w: card=%s does not belong to caller", ErrInvalidInput, cardID)
	}
	if owned.Minted() {
		return MintReceipt{}, fmt.Errorf("%w: card=%s", ErrAlreadyMinted, cardID)
	}

	auth, err := s.gateway.RequestMintApproval(ctx, walletAddress, cardID)
	if err != nil {
		return MintReceipt{}, fmt.Errorf("request mint approval: %w", err)
	}

	txHash, err := s.gateway.SubmitMintTransaction(ctx, walletAddress, auth)
	if err != nil {
		return MintReceipt{}, fmt.Errorf("submit mint transaction: %w", err)
	}

	if err := s.cardRepo.SetMinted(ctx, cardID, auth.TokenID); err != nil {
		return MintReceipt{}, fmt.Errorf("mark card minted: %w", err)
	}

	s.logger.InfoContext(ctx, "card minted",
		"card_id", cardID,
		"token_id", auth.TokenID,
		"tx_hash", txHash,
	)
	return MintReceipt{TokenID: auth.TokenID, TxHash: txHash}, nil
}
