package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/pagination"
)

type CardRepository struct {
	mu    sync.RWMutex
	items map[string]card.Card
}

func NewCardRepository(seed []card.Card) *CardRepository {
	items := make(map[string]card.Card, len(seed))
	for _, c := range seed {
		items[c.ID] = cloneCard(c)
	}
	return &CardRepository{items: items}
}

func (r *CardRepository) GetByID(_ context.Context, cardID string) (card.Card, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[cardID]
	if !ok {
		return card.Card{}, false, nil
	}
	return cloneCard(c), true, nil
}

func (r *CardRepository) GetByIDs(_ context.Context, cardIDs []string) ([]card.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]card.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if c, ok := r.items[id]; ok {
			out = append(out, cloneCard(c))
		}
	}
	return out, nil
}

func (r *CardRepository) ListByOwner(_ context.Context, ownerID string, page pagination.Page) ([]card.Card, int, error) {
	r.mu.RLock()
	owned := make([]card.Card, 0)
	for _, c := range r.items {
		if c.OwnerID == ownerID {
			owned = append(owned, cloneCard(c))
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	items, total := pagination.Slice(owned, page)
	return items, total, nil
}

func (r *CardRepository) Create(_ context.Context, c card.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[c.ID]; exists {
		return fmt.Errorf("card %s already exists", c.ID)
	}
	r.items[c.ID] = cloneCard(c)
	return nil
}

func (r *CardRepository) TransferOwner(_ context.Context, cardID, newOwnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[cardID]
	if !ok {
		return fmt.Errorf("card %s not found", cardID)
	}
	c.OwnerID = newOwnerID
	r.items[cardID] = c
	return nil
}

func (r *CardRepository) SetMinted(_ context.Context, cardID string, tokenID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[cardID]
	if !ok {
		return fmt.Errorf("card %s not found", cardID)
	}
	now := time.Now().UTC()
	c.TokenID = tokenID
	c.MintedAt = &now
	r.items[cardID] = c
	return nil
}

func cloneCard(c card.Card) card.Card {
	copied := c
	if c.Stats != nil {
		copied.Stats = make(map[string]int64, len(c.Stats))
		for k, v := range c.Stats {
			copied.Stats[k] = v
		}
	}
	if c.MintedAt != nil {
		mintedAt := *c.MintedAt
		copied.MintedAt = &mintedAt
	}
	return copied
}
