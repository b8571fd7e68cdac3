package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/goalcard/console-api/internal/domain/club"
)

type ClubRepository struct {
	mu      sync.RWMutex
	byID    map[string]club.Club
	byOwner map[string]string
}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{
		byID:    make(map[string]club.Club),
		byOwner: make(map[string]string),
	}
}

func (r *ClubRepository) GetByOwner(_ context.Context, ownerID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clubID, ok := r.byOwner[ownerID]
	if !ok {
		return club.Club{}, false, nil
	}
	return cloneClub(r.byID[clubID]), true, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[clubID]
	if !ok {
		return club.Club{}, false, nil
	}
	return cloneClub(c), true, nil
}

func (r *ClubRepository) Create(_ context.Context, c club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("club %s already exists", c.ID)
	}
	if _, exists := r.byOwner[c.OwnerID]; exists {
		return fmt.Errorf("owner %s already has a club", c.OwnerID)
	}
	r.byID[c.ID] = cloneClub(c)
	r.byOwner[c.OwnerID] = c.ID
	return nil
}

func (r *ClubRepository) UpdateSquad(_ context.Context, squad club.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[squad.ClubID]
	if !ok {
		return fmt.Errorf("club %s not found", squad.ClubID)
	}
	c.Squad = cloneSquad(squad)
	r.byID[squad.ClubID] = c
	return nil
}

func cloneClub(c club.Club) club.Club {
	copied := c
	copied.Squad = cloneSquad(c.Squad)
	return copied
}

func cloneSquad(s club.Squad) club.Squad {
	copied := s
	copied.Slots = append([]club.SquadSlot(nil), s.Slots...)
	return copied
}
