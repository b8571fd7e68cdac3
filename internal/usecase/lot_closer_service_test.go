package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/infrastructure/repository/memory"
	"github.com/panjf2000/ants/v2"
)

func TestLotCloserService_SweepOnce_SettlesExpiredLots(t *testing.T) {
	listedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []marketplace.Lot{
		{
			ID: "lot-expired-bid", CardID: memory.CardIDDemoKeeper, SellerID: memory.OwnerIDDemoManager,
			StartPrice: 100, CurrentPrice: 180, WinnerID: memory.OwnerIDRivalManager,
			StartTime: listedAt, EndTime: listedAt.Add(6 * time.Hour), Period: 6,
			Status: marketplace.StatusActive, CreatedAt: listedAt, UpdatedAt: listedAt,
		},
		{
			ID: "lot-expired-nobid", CardID: memory.CardIDDemoStriker, SellerID: memory.OwnerIDDemoManager,
			StartPrice: 100, CurrentPrice: 100,
			StartTime: listedAt, EndTime: listedAt.Add(6 * time.Hour), Period: 6,
			Status: marketplace.StatusActive, CreatedAt: listedAt, UpdatedAt: listedAt,
		},
		{
			ID: "lot-still-running", CardID: memory.CardIDDemoWinger, SellerID: memory.OwnerIDDemoManager,
			StartPrice: 100, CurrentPrice: 100,
			StartTime: listedAt, EndTime: listedAt.Add(96 * time.Hour), Period: 96,
			Status: marketplace.StatusActive, CreatedAt: listedAt, UpdatedAt: listedAt,
		},
	}

	cardRepo := memory.NewCardRepository(memory.SeedCards())
	lotRepo := memory.NewLotRepository(seed)
	logger := discardLogger()

	marketSvc := NewMarketplaceService(lotRepo, cardRepo, nil, &sequenceIDGenerator{}, logger)
	closer := NewLotCloserService(lotRepo, marketSvc, 10, 4, logger)

	sweepTime := listedAt.Add(12 * time.Hour)
	marketSvc.now = func() time.Time { return sweepTime }
	closer.now = func() time.Time { return sweepTime }

	result, err := closer.SweepOnce(t.Context())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.ScannedCount != 2 {
		t.Fatalf("expected 2 expired lots scanned, got %d", result.ScannedCount)
	}
	if result.ClosedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("expected 2 closed and 0 failed, got %d/%d", result.ClosedCount, result.FailedCount)
	}

	sold, _, err := lotRepo.GetByID(t.Context(), "lot-expired-bid")
	if err != nil {
		t.Fatalf("get sold lot: %v", err)
	}
	if sold.Status != marketplace.StatusSold {
		t.Fatalf("expected sold, got %s", sold.Status)
	}

	card, _, err := cardRepo.GetByID(t.Context(), memory.CardIDDemoKeeper)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if card.OwnerID != memory.OwnerIDRivalManager {
		t.Fatalf("expected keeper transferred to winner, owner=%s", card.OwnerID)
	}

	expired, _, err := lotRepo.GetByID(t.Context(), "lot-expired-nobid")
	if err != nil {
		t.Fatalf("get expired lot: %v", err)
	}
	if expired.Status != marketplace.StatusExpired {
		t.Fatalf("expected expired, got %s", expired.Status)
	}

	running, _, err := lotRepo.GetByID(t.Context(), "lot-still-running")
	if err != nil {
		t.Fatalf("get running lot: %v", err)
	}
	if running.Status != marketplace.StatusActive {
		t.Fatalf("expected running lot untouched, got %s", running.Status)
	}
}

func TestLotCloserService_SweepOnce_DrainsWorkersOnSubmitFailure(t *testing.T) {
	listedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []marketplace.Lot{
		{
			ID: "lot-settling", CardID: memory.CardIDDemoKeeper, SellerID: memory.OwnerIDDemoManager,
			StartPrice: 100, CurrentPrice: 100,
			StartTime: listedAt, EndTime: listedAt.Add(5 * time.Hour), Period: 5,
			Status: marketplace.StatusActive, CreatedAt: listedAt, UpdatedAt: listedAt,
		},
		{
			ID: "lot-never-submitted", CardID: memory.CardIDDemoStriker, SellerID: memory.OwnerIDDemoManager,
			StartPrice: 100, CurrentPrice: 100,
			StartTime: listedAt, EndTime: listedAt.Add(6 * time.Hour), Period: 6,
			Status: marketplace.StatusActive, CreatedAt: listedAt, UpdatedAt: listedAt,
		},
	}

	cardRepo := memory.NewCardRepository(memory.SeedCards())
	lotRepo := memory.NewLotRepository(seed)
	logger := discardLogger()

	marketSvc := NewMarketplaceService(lotRepo, cardRepo, nil, &sequenceIDGenerator{}, logger)
	closer := NewLotCloserService(lotRepo, marketSvc, 10, 2, logger)

	sweepTime := listedAt.Add(12 * time.Hour)
	marketSvc.now = func() time.Time { return sweepTime }
	closer.now = func() time.Time { return sweepTime }

	// First settlement goes in; the second submit breaks. The sweep must
	// still wait for the first task before tearing the pool down.
	submitted := 0
	closer.submit = func(pool *ants.Pool, task func()) error {
		submitted++
		if submitted > 1 {
			return errors.New("pool rejected task")
		}
		return pool.Submit(task)
	}

	if _, err := closer.SweepOnce(t.Context()); err == nil {
		t.Fatal("expected sweep to surface the submit error")
	}

	settled, _, err := lotRepo.GetByID(t.Context(), "lot-settling")
	if err != nil {
		t.Fatalf("get settled lot: %v", err)
	}
	if settled.Status != marketplace.StatusExpired {
		t.Fatalf("submitted settlement did not finish before return, status=%s", settled.Status)
	}

	skipped, _, err := lotRepo.GetByID(t.Context(), "lot-never-submitted")
	if err != nil {
		t.Fatalf("get skipped lot: %v", err)
	}
	if skipped.Status != marketplace.StatusActive {
		t.Fatalf("unsubmitted lot should stay active for the next sweep, got %s", skipped.Status)
	}
}

func TestLotCloserService_SweepOnce_EmptyBacklog(t *testing.T) {
	cardRepo := memory.NewCardRepository(nil)
	lotRepo := memory.NewLotRepository(nil)
	logger := discardLogger()

	marketSvc := NewMarketplaceService(lotRepo, cardRepo, nil, &sequenceIDGenerator{}, logger)
	closer := NewLotCloserService(lotRepo, marketSvc, 10, 4, logger)

	result, err := closer.SweepOnce(t.Context())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.ScannedCount != 0 || result.ClosedCount != 0 {
		t.Fatalf("expected empty sweep, got %+v", result)
	}

	// Idempotent across repeated runs.
	if _, err := closer.SweepOnce(t.Context()); err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
}
