package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/domain/pagination"
)

type LotRepository struct {
	mu    sync.RWMutex
	items map[string]marketplace.Lot
	bids  map[string][]marketplace.Bid
}

func NewLotRepository(seed []marketplace.Lot) *LotRepository {
	items := make(map[string]marketplace.Lot, len(seed))
	for _, lot := range seed {
		items[lot.ID] = lot
	}

	return &LotRepository{
		items: items,
		bids:  make(map[string][]marketplace.Bid),
	}
}

func (r *LotRepository) GetByID(_ context.Context, lotID string) (marketplace.Lot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lot, ok := r.items[lotID]
	if !ok {
		return marketplace.Lot{}, false, nil
	}
	return lot, true, nil
}

func (r *LotRepository) GetActiveByCard(_ context.Context, cardID string) (marketplace.Lot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, lot := range r.items {
		if lot.CardID == cardID && !lot.Status.Terminal() {
			return lot, true, nil
		}
	}
	return marketplace.Lot{}, false, nil
}

func (r *LotRepository) List(_ context.Context, filter marketplace.ListFilter, page pagination.Page) ([]marketplace.Lot, int, error) {
	r.mu.RLock()
	matched := make([]marketplace.Lot, 0, len(r.items))
	for _, lot := range r.items {
		if matchesFilter(lot, filter) {
			matched = append(matched, lot)
		}
	}
	r.mu.RUnlock()

	// Newest lots first, stable across pages.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	items, total := pagination.Slice(matched, page)
	return items, total, nil
}

func (r *LotRepository) ListActiveEndedBefore(_ context.Context, deadline time.Time, limit int) ([]marketplace.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]marketplace.Lot, 0)
	for _, lot := range r.items {
		if lot.Status.Terminal() || lot.EndTime.After(deadline) {
			continue
		}
		out = append(out, lot)
	}

	// Oldest expiry first, matching the sql repository's ordering.
	sort.Slice(out, func(i, j int) bool {
		if out[i].EndTime.Equal(out[j].EndTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].EndTime.Before(out[j].EndTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *LotRepository) Create(_ context.Context, lot marketplace.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[lot.ID]; exists {
		return fmt.Errorf("lot %s already exists", lot.ID)
	}
	r.items[lot.ID] = lot
	return nil
}

func (r *LotRepository) Update(_ context.Context, lot marketplace.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[lot.ID]; !exists {
		return fmt.Errorf("lot %s not found", lot.ID)
	}
	r.items[lot.ID] = lot
	return nil
}

func (r *LotRepository) AppendBid(_ context.Context, bid marketplace.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bids[bid.LotID] = append(r.bids[bid.LotID], bid)
	return nil
}

func (r *LotRepository) ListBids(_ context.Context, lotID string) ([]marketplace.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]marketplace.Bid(nil), r.bids[lotID]...), nil
}

func matchesFilter(lot marketplace.Lot, filter marketplace.ListFilter) bool {
	if filter.Status != "" && lot.Status != filter.Status {
		return false
	}
	if filter.SellerID != "" && lot.SellerID != filter.SellerID {
		return false
	}
	if filter.MinPrice > 0 && lot.CurrentPrice < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && lot.CurrentPrice > filter.MaxPrice {
		return false
	}
	return true
}
