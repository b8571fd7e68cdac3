package marketplace

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBidTooLow      = errors.New("bid is below the current price")
	ErrLotClosed      = errors.New("lot is no longer accepting bids")
	ErrLotNotStarted  = errors.New("lot has not opened for bidding yet")
	ErrInvalidLot     = errors.New("invalid lot")
	ErrCardNotOwned   = errors.New("card does not belong to the seller")
	ErrCardAlreadyUp  = errors.New("card already has an active lot")
	ErrSelfBid        = errors.New("seller cannot bid on their own lot")
)

// Status is the lot lifecycle state. Active lots accept bids; the three
// terminal states are read-only forever.
type Status string

const (
	StatusActive  Status = "active"
	StatusHold    Status = "hold"
	StatusSold    Status = "sold"
	StatusExpired Status = "expired"
)

func (s Status) Terminal() bool {
	return s == StatusSold || s == StatusExpired
}

// Lot is a single English-auction instance for one card. EndTime is fixed
// at creation and never changes; CurrentPrice only ever rises.
type Lot struct {
	ID           string
	CardID       string
	SellerID     string
	WinnerID     string
	StartPrice   int64
	MaxPrice     int64
	CurrentPrice int64
	StartTime    time.Time
	EndTime      time.Time
	Period       int
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Bid records one accepted price raise on a lot.
type Bid struct {
	ID        string
	LotID     string
	BidderID  string
	Amount    int64
	CreatedAt time.Time
}

func (l Lot) ValidateBasic() error {
	if l.ID == "" {
		return fmt.Errorf("%w: lot id is required", ErrInvalidLot)
	}
	if l.CardID == "" {
		return fmt.Errorf("%w: card id is required", ErrInvalidLot)
	}
	if l.SellerID == "" {
		return fmt.Errorf("%w: seller id is required", ErrInvalidLot)
	}
	if l.StartPrice <= 0 {
		return fmt.Errorf("%w: start price must be greater than zero", ErrInvalidLot)
	}
	if l.MaxPrice > 0 && l.MaxPrice < l.StartPrice {
		return fmt.Errorf("%w: max price %d below start price %d", ErrInvalidLot, l.MaxPrice, l.StartPrice)
	}
	if l.CurrentPrice < l.StartPrice {
		return fmt.Errorf("%w: current price %d below start price %d", ErrInvalidLot, l.CurrentPrice, l.StartPrice)
	}
	if !l.EndTime.After(l.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidLot)
	}

	return nil
}

// ApplyBid returns the lot advanced by an accepted bid. The price is
// monotonically non-decreasing: a bid below CurrentPrice is rejected and
// the lot is returned unchanged. A bid reaching MaxPrice is a buy-now and
// closes the lot as sold on the spot.
func (l Lot) ApplyBid(bidderID string, amount int64, now time.Time) (Lot, error) {
	if l.Status.Terminal() {
		return l, fmt.Errorf("%w: status=%s", ErrLotClosed, l.Status)
	}
	if now.Before(l.StartTime) {
		return l, fmt.Errorf("%w: opens at %s", ErrLotNotStarted, l.StartTime.UTC().Format(time.RFC3339))
	}
	if !now.Before(l.EndTime) {
		return l, fmt.Errorf("%w: ended at %s", ErrLotClosed, l.EndTime.UTC().Format(time.RFC3339))
	}
	if bidderID == l.SellerID {
		return l, ErrSelfBid
	}
	if amount < l.CurrentPrice {
		return l, fmt.Errorf("%w: bid=%d current=%d", ErrBidTooLow, amount, l.CurrentPrice)
	}

	next := l
	next.CurrentPrice = amount
	next.WinnerID = bidderID
	next.UpdatedAt = now
	if l.MaxPrice > 0 && amount >= l.MaxPrice {
		next.CurrentPrice = l.MaxPrice
		next.Status = StatusSold
	}
	return next, nil
}

// Close settles a lot at now: sold when a winning bid exists, expired
// otherwise. Closing a terminal lot is a no-op.
func (l Lot) Close(now time.Time) Lot {
	if l.Status.Terminal() {
		return l
	}

	next := l
	next.UpdatedAt = now
	if l.WinnerID != "" {
		next.Status = StatusSold
	} else {
		next.Status = StatusExpired
	}
	return next
}

// Ended reports whether the lot has passed its end time or was settled.
func (l Lot) Ended(now time.Time) bool {
	return l.Status.Terminal() || !now.Before(l.EndTime)
}
