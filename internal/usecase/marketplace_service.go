package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/domain/pagination"
	"github.com/goalcard/console-api/internal/platform/cache"
	idgen "github.com/goalcard/console-api/internal/platform/id"
)

const lotListCachePrefix = "lots:list:"

// CreateLotInput is the incoming payload for listing a card on the market.
type CreateLotInput struct {
	SellerID   string
	CardID     string
	StartPrice int64
	MaxPrice   int64
	Period     int
}

// LotPage bundles one listing page with its cursor totals.
type LotPage struct {
	Lots   []marketplace.Lot
	Totals pagination.Totals
}

type MarketplaceService struct {
	lotRepo  marketplace.Repository
	cardRepo card.Repository
	cache    *cache.Store
	idGen    idgen.Generator
	logger   *slog.Logger
	now      func() time.Time

	// lotLocks serializes the read-modify-write cycle per lot, so a
	// stale low bid can never overwrite a higher concurrent one.
	lotLocks sync.Map
}

func (s *MarketplaceService) lockLot(lotID string) func() {
	v, _ := s.lotLocks.LoadOrStore(lotID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func NewMarketplaceService(
	lotRepo marketplace.Repository,
	cardRepo card.Repository,
	listCache *cache.Store,
	idGen idgen.Generator,
	logger *slog.Logger,
) *MarketplaceService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MarketplaceService{
		lotRepo:  lotRepo,
		cardRepo: cardRepo,
		cache:    listCache,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateLot opens an auction for an owned, not-yet-listed card. The end
// time is fixed here and never changes for the life of the lot.
func (s *MarketplaceService) CreateLot(ctx context.Context, input CreateLotInput) (marketplace.Lot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.CreateLot")
	defer span.End()

	input.SellerID = strings.TrimSpace(input.SellerID)
	input.CardID = strings.TrimSpace(input.CardID)
	if input.SellerID == "" {
		return marketplace.Lot{}, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	if input.CardID == "" {
		return marketplace.Lot{}, fmt.Errorf("%w: card id is required", ErrInvalidInput)
	}
	if input.Period < 1 {
		return marketplace.Lot{}, fmt.Errorf("%w: period must be at least 1 hour", ErrInvalidInput)
	}

	owned, exists, err := s.cardRepo.GetByID(ctx, input.CardID)
	if err != nil {
		return marketplace.Lot{}, fmt.Errorf("get card: %w", err)
	}
	if !exists {
		return marketplace.Lot{}, fmt.Errorf("%w: card=%s", ErrNotFound, input.CardID)
	}
	if owned.OwnerID != input.SellerID {
		return marketplace.Lot{}, fmt.Errorf("%w: card=%s", marketplace.ErrCardNotOwned, input.CardID)
	}

	_, listed, err := s.lotRepo.GetActiveByCard(ctx, input.CardID)
	if err != nil {
		return marketplace.Lot{}, fmt.Errorf("check active lot for card: %w", err)
	}
	if listed {
		return marketplace.Lot{}, fmt.Errorf("%w: card=%s", marketplace.ErrCardAlreadyUp, input.CardID)
	}

	lotID, err := s.idGen.NewID()
	if err != nil {
		return marketplace.Lot{}, fmt.Errorf("generate lot id: %w", err)
	}

	now := s.now().UTC()
	lot := marketplace.Lot{
		ID:           lotID,
		CardID:       input.CardID,
		SellerID:     input.SellerID,
		StartPrice:   input.StartPrice,
		MaxPrice:     input.MaxPrice,
		CurrentPrice: input.StartPrice,
		StartTime:    now,
		EndTime:      now.Add(time.Duration(input.Period) * time.Hour),
		Period:       input.Period,
		Status:       marketplace.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := lot.ValidateBasic(); err != nil {
		return marketplace.Lot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.lotRepo.Create(ctx, lot); err != nil {
		return marketplace.Lot{}, fmt.Errorf("create lot: %w", err)
	}
	s.invalidateListings(ctx)

	s.logger.InfoContext(ctx, "lot created",
		"lot_id", lot.ID,
		"card_id", lot.CardID,
		"seller_id", lot.SellerID,
		"end_time", lot.EndTime,
	)
	return lot, nil
}

// ListLots serves one page of lots through the TTL cache; concurrent
// misses for the same page collapse into a single repository read.
func (s *MarketplaceService) ListLots(ctx context.Context, filter marketplace.ListFilter, page pagination.Page) (LotPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.ListLots")
	defer span.End()

	if s.cache == nil {
		return s.listLots(ctx, filter, page)
	}

	v, err := s.cache.GetOrLoad(ctx, listCacheKey(filter, page), func(ctx context.Context) (any, error) {
		return s.listLots(ctx, filter, page)
	})
	if err != nil {
		return LotPage{}, err
	}

	result, _ := v.(LotPage)
	return result, nil
}

func (s *MarketplaceService) listLots(ctx context.Context, filter marketplace.ListFilter, page pagination.Page) (LotPage, error) {
	lots, total, err := s.lotRepo.List(ctx, filter, page)
	if err != nil {
		return LotPage{}, fmt.Errorf("list lots: %w", err)
	}

	return LotPage{Lots: lots, Totals: page.TotalsFor(total)}, nil
}

func (s *MarketplaceService) GetLot(ctx context.Context, lotID string) (marketplace.Lot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.GetLot")
	defer span.End()

	lotID = strings.TrimSpace(lotID)
	if lotID == "" {
		return marketplace.Lot{}, fmt.Errorf("%w: lot id is required", ErrInvalidInput)
	}

	lot, exists, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return marketplace.Lot{}, fmt.Errorf("get lot: %w", err)
	}
	if !exists {
		return marketplace.Lot{}, fmt.Errorf("%w: lot=%s", ErrNotFound, lotID)
	}

	return lot, nil
}

// ListBids returns the accepted bid history of a lot, oldest first.
func (s *MarketplaceService) ListBids(ctx context.Context, lotID string) ([]marketplace.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.ListBids")
	defer span.End()

	lotID = strings.TrimSpace(lotID)
	if lotID == "" {
		return nil, fmt.Errorf("%w: lot id is required", ErrInvalidInput)
	}

	if _, err := s.GetLot(ctx, lotID); err != nil {
		return nil, err
	}

	bids, err := s.lotRepo.ListBids(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	return bids, nil
}

// PlaceBid raises the lot price. A bid reaching the max price settles the
// lot and hands the card over right away.
func (s *MarketplaceService) PlaceBid(ctx context.Context, lotID, bidderID string, amount int64) (marketplace.Lot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.PlaceBid")
	defer span.End()

	lotID = strings.TrimSpace(lotID)
	bidderID = strings.TrimSpace(bidderID)
	if bidderID == "" {
		return marketplace.Lot{}, fmt.Errorf("%w: bidder id is required", ErrInvalidInput)
	}
	if amount <= 0 {
		return marketplace.Lot{}, fmt.Errorf("%w: bid amount must be greater than zero", ErrInvalidInput)
	}

	unlock := s.lockLot(lotID)
	defer unlock()

	lot, err := s.GetLot(ctx, lotID)
	if err != nil {
		return marketplace.Lot{}, err
	}

	now := s.now().UTC()
	next, err := lot.ApplyBid(bidderID, amount, now)
	if err != nil {
		return marketplace.Lot{}, err
	}

	bidID, err := s.idGen.NewID()
	if err != nil {
		return marketplace.Lot{}, fmt.Errorf("generate bid id: %w", err)
	}

	if err := s.lotRepo.Update(ctx, next); err != nil {
		return marketplace.Lot{}, fmt.Errorf("update lot: %w", err)
	}
	if err := s.lotRepo.AppendBid(ctx, marketplace.Bid{
		ID:        bidID,
		LotID:     next.ID,
		BidderID:  bidderID,
		Amount:    next.CurrentPrice,
		CreatedAt: now,
	}); err != nil {
		return marketplace.Lot{}, fmt.Errorf("append bid: %w", err)
	}
	s.invalidateListings(ctx)

	if next.Status == marketplace.StatusSold {
		if err := s.cardRepo.TransferOwner(ctx, next.CardID, next.WinnerID); err != nil {
			return marketplace.Lot{}, fmt.Errorf("transfer card to winner: %w", err)
		}
		s.logger.InfoContext(ctx, "lot sold at max price",
			"lot_id", next.ID,
			"winner_id", next.WinnerID,
			"price", next.CurrentPrice,
		)
	}

	return next, nil
}

// IsLotEnded is the authoritative close check queried by countdown timers
// near expiry. A lot found past its end time is settled here, so callers
// always observe the server-side terminal state, never a stale countdown.
func (s *MarketplaceService) IsLotEnded(ctx context.Context, lotID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.IsLotEnded")
	defer span.End()

	unlock := s.lockLot(strings.TrimSpace(lotID))
	defer unlock()

	lot, err := s.GetLot(ctx, lotID)
	if err != nil {
		return false, err
	}

	now := s.now().UTC()
	if !lot.Ended(now) {
		return false, nil
	}
	if lot.Status.Terminal() {
		return true, nil
	}

	if err := s.settleLot(ctx, lot, now); err != nil {
		return false, err
	}
	return true, nil
}

// SettleLot closes a lot past its end time: sold to the highest bidder
// with the card transferred, or expired when no bid arrived.
func (s *MarketplaceService) SettleLot(ctx context.Context, lot marketplace.Lot, now time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketplaceService.SettleLot")
	defer span.End()

	unlock := s.lockLot(lot.ID)
	defer unlock()

	// The caller's snapshot may predate a concurrent buy-now; settle
	// from the stored state.
	current, exists, err := s.lotRepo.GetByID(ctx, lot.ID)
	if err != nil {
		return fmt.Errorf("get lot: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: lot=%s", ErrNotFound, lot.ID)
	}

	return s.settleLot(ctx, current, now)
}

func (s *MarketplaceService) settleLot(ctx context.Context, lot marketplace.Lot, now time.Time) error {
	closed := lot.Close(now)
	if closed.Status == lot.Status {
		return nil
	}

	if err := s.lotRepo.Update(ctx, closed); err != nil {
		return fmt.Errorf("update settled lot: %w", err)
	}
	s.invalidateListings(ctx)

	if closed.Status == marketplace.StatusSold {
		if err := s.cardRepo.TransferOwner(ctx, closed.CardID, closed.WinnerID); err != nil {
			return fmt.Errorf("transfer card to winner: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "lot settled",
		"lot_id", closed.ID,
		"status", closed.Status,
		"winner_id", closed.WinnerID,
		"final_price", closed.CurrentPrice,
	)
	return nil
}

func (s *MarketplaceService) invalidateListings(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, lotListCachePrefix)
	}
}

func listCacheKey(filter marketplace.ListFilter, page pagination.Page) string {
	var b strings.Builder
	b.WriteString(lotListCachePrefix)
	b.WriteString(string(filter.Status))
	b.WriteString(":")
	b.WriteString(filter.SellerID)
	b.WriteString(":")
	b.WriteString(strconv.FormatInt(filter.MinPrice, 10))
	b.WriteString(":")
	b.WriteString(strconv.FormatInt(filter.MaxPrice, 10))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(page.SelectedPage))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(page.Limit))
	return b.String()
}
