package marketplace

import (
	"errors"
	"testing"
	"time"
)

func activeLot() Lot {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Lot{
		ID:           "lot-001",
		CardID:       "card-001",
		SellerID:     "seller-1",
		StartPrice:   100,
		MaxPrice:     500,
		CurrentPrice: 100,
		StartTime:    start,
		EndTime:      start.Add(24 * time.Hour),
		Period:       1,
		Status:       StatusActive,
	}
}

func TestLot_ApplyBid_RejectsBelowCurrentPrice(t *testing.T) {
	lot := activeLot()
	now := lot.StartTime.Add(time.Hour)

	got, err := lot.ApplyBid("bidder-1", 90, now)
	if !errors.Is(err, ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow, got %v", err)
	}
	if got.CurrentPrice != 100 {
		t.Fatalf("current price must be unchanged on rejected bid, got %d", got.CurrentPrice)
	}
	if got.WinnerID != "" {
		t.Fatalf("winner must be unchanged on rejected bid, got %q", got.WinnerID)
	}
}

func TestLot_ApplyBid_PriceIsMonotonic(t *testing.T) {
	lot := activeLot()
	now := lot.StartTime.Add(time.Hour)

	first, err := lot.ApplyBid("bidder-1", 150, now)
	if err != nil {
		t.Fatalf("first bid: %v", err)
	}
	if first.CurrentPrice != 150 || first.WinnerID != "bidder-1" {
		t.Fatalf("first bid state: price=%d winner=%s", first.CurrentPrice, first.WinnerID)
	}

	second, err := first.ApplyBid("bidder-2", 200, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second bid: %v", err)
	}
	if second.CurrentPrice != 200 || second.WinnerID != "bidder-2" {
		t.Fatalf("second bid state: price=%d winner=%s", second.CurrentPrice, second.WinnerID)
	}

	if _, err := second.ApplyBid("bidder-3", 150, now.Add(2*time.Minute)); !errors.Is(err, ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow for lower follow-up, got %v", err)
	}
}

func TestLot_ApplyBid_MaxPriceClosesImmediately(t *testing.T) {
	lot := activeLot()
	now := lot.StartTime.Add(time.Hour)

	sold, err := lot.ApplyBid("bidder-1", 700, now)
	if err != nil {
		t.Fatalf("buy-now bid: %v", err)
	}
	if sold.Status != StatusSold {
		t.Fatalf("expected sold status, got %s", sold.Status)
	}
	if sold.CurrentPrice != lot.MaxPrice {
		t.Fatalf("buy-now settles at max price %d, got %d", lot.MaxPrice, sold.CurrentPrice)
	}

	if _, err := sold.ApplyBid("bidder-2", 800, now.Add(time.Minute)); !errors.Is(err, ErrLotClosed) {
		t.Fatalf("expected ErrLotClosed after buy-now, got %v", err)
	}
}

func TestLot_ApplyBid_WindowAndSelfBid(t *testing.T) {
	lot := activeLot()

	if _, err := lot.ApplyBid("bidder-1", 150, lot.StartTime.Add(-time.Minute)); !errors.Is(err, ErrLotNotStarted) {
		t.Fatalf("expected ErrLotNotStarted, got %v", err)
	}
	if _, err := lot.ApplyBid("bidder-1", 150, lot.EndTime); !errors.Is(err, ErrLotClosed) {
		t.Fatalf("expected ErrLotClosed at end time, got %v", err)
	}
	if _, err := lot.ApplyBid("seller-1", 150, lot.StartTime.Add(time.Hour)); !errors.Is(err, ErrSelfBid) {
		t.Fatalf("expected ErrSelfBid, got %v", err)
	}
}

func TestLot_Close(t *testing.T) {
	now := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

	noBids := activeLot().Close(now)
	if noBids.Status != StatusExpired {
		t.Fatalf("lot without bids closes expired, got %s", noBids.Status)
	}

	withBid, err := activeLot().ApplyBid("bidder-1", 150, activeLot().StartTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("bid: %v", err)
	}
	closed := withBid.Close(now)
	if closed.Status != StatusSold || closed.WinnerID != "bidder-1" {
		t.Fatalf("lot with bid closes sold to bidder-1, got %s/%s", closed.Status, closed.WinnerID)
	}

	// Closing again keeps the settled state.
	again := closed.Close(now.Add(time.Hour))
	if again.Status != StatusSold || !again.UpdatedAt.Equal(closed.UpdatedAt) {
		t.Fatal("closing a terminal lot must be a no-op")
	}
}

func TestCountdownAt(t *testing.T) {
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want Countdown
	}{
		{"ten seconds left", end.Add(-10 * time.Second), Countdown{0, 0, 10}},
		{"under seven seconds", end.Add(-6 * time.Second), Countdown{0, 0, 6}},
		{"mixed components", end.Add(-(3*time.Hour + 25*time.Minute + 42*time.Second)), Countdown{3, 25, 42}},
		{"hours wrap at 24", end.Add(-26 * time.Hour), Countdown{2, 0, 0}},
		{"already ended clamps to zero", end.Add(90 * time.Second), Countdown{}},
		{"exactly at end", end, Countdown{}},
	}

	for _, tt := range tests {
		got := CountdownAt(end, tt.now)
		if got != tt.want {
			t.Fatalf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestCountdownAt_SecondsDecreaseToZero(t *testing.T) {
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	previous := 11
	for offset := 10; offset >= 0; offset-- {
		c := CountdownAt(end, end.Add(-time.Duration(offset)*time.Second))
		if c.Hours != 0 || c.Minutes != 0 {
			t.Fatalf("offset %ds: expected only seconds, got %+v", offset, c)
		}
		if c.Seconds != offset || c.Seconds >= previous {
			t.Fatalf("offset %ds: seconds=%d previous=%d", offset, c.Seconds, previous)
		}
		previous = c.Seconds
	}
}
