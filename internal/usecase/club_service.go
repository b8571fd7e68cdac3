package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/club"
	idgen "github.com/goalcard/console-api/internal/platform/id"
)

// ClubService owns the squad-editing flow: every mutation loads the
// squad, applies a pure domain operation, validates, then persists the
// whole new value. Torn states are impossible because the repository
// only ever sees complete squads.
type ClubService struct {
	clubRepo club.Repository
	cardRepo card.Repository
	idGen    idgen.Generator
	logger   *slog.Logger
	now      func() time.Time
}

func NewClubService(
	clubRepo club.Repository,
	cardRepo card.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *ClubService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ClubService{
		clubRepo: clubRepo,
		cardRepo: cardRepo,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOrCreateClub returns the owner's club, creating one on first access.
// The create-on-miss fallback replaces a "club not found" error surface:
// a fresh account always leaves this call with a usable club.
func (s *ClubService) GetOrCreateClub(ctx context.Context, ownerID string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetOrCreateClub")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return club.Club{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	existing, exists, err := s.clubRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club by owner: %w", err)
	}
	if exists {
		return existing, nil
	}

	clubID, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate club id: %w", err)
	}
	squadID, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate squad id: %w", err)
	}

	created := club.Club{
		ID:        clubID,
		OwnerID:   ownerID,
		Name:      "FC " + ownerID,
		Squad:     club.NewSquad(squadID, clubID),
		CreatedAt: s.now().UTC(),
	}
	if err := s.clubRepo.Create(ctx, created); err != nil {
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	s.logger.InfoContext(ctx, "club created", "owner_id", ownerID, "club_id", clubID)
	return created, nil
}

// PlaceCard puts an owned card into a squad slot, overwriting any
// current occupant.
func (s *ClubService) PlaceCard(ctx context.Context, ownerID string, slotIndex int, cardID string) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.PlaceCard")
	defer span.End()

	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return club.Squad{}, fmt.Errorf("%w: card id is required", ErrInvalidInput)
	}

	owned, exists, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return club.Squad{}, fmt.Errorf("get card: %w", err)
	}
	if !exists {
		return club.Squad{}, fmt.Errorf("%w: card=%s", ErrNotFound, cardID)
	}
	if owned.OwnerID != strings.TrimSpace(ownerID) {
		return club.Squad{}, fmt.Errorf("%w: card=%s does not belong to caller", ErrInvalidInput, cardID)
	}

	return s.mutateSquad(ctx, ownerID, func(squad club.Squad) (club.Squad, error) {
		return squad.PlaceCard(slotIndex, cardID)
	})
}

func (s *ClubService) RemoveCard(ctx context.Context, ownerID string, slotIndex int) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.RemoveCard")
	defer span.End()

	return s.mutateSquad(ctx, ownerID, func(squad club.Squad) (club.Squad, error) {
		return squad.RemoveCard(slotIndex)
	})
}

// ExchangeCards swaps two slots atomically, typically the resolution of
// a completed drag gesture.
func (s *ClubService) ExchangeCards(ctx context.Context, ownerID string, sourceIndex, targetIndex int) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ExchangeCards")
	defer span.End()

	drag, err := club.BeginDrag(sourceIndex)
	if err != nil {
		return club.Squad{}, err
	}
	drag, err = drag.WithTarget(targetIndex)
	if err != nil {
		return club.Squad{}, err
	}

	return s.mutateSquad(ctx, ownerID, func(squad club.Squad) (club.Squad, error) {
		source, target, ok := drag.Resolved()
		if !ok {
			return club.Squad{}, fmt.Errorf("%w: drag pair is incomplete", ErrInvalidInput)
		}
		return squad.ExchangeCards(source, target)
	})
}

func (s *ClubService) SetFormation(ctx context.Context, ownerID string, formation club.Formation) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.SetFormation")
	defer span.End()

	return s.mutateSquad(ctx, ownerID, func(squad club.Squad) (club.Squad, error) {
		return squad.SetFormation(formation)
	})
}

func (s *ClubService) SetTactic(ctx context.Context, ownerID string, tactic club.Tactic) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.SetTactic")
	defer span.End()

	return s.mutateSquad(ctx, ownerID, func(squad club.Squad) (club.Squad, error) {
		return squad.SetTactic(tactic)
	})
}

func (s *ClubService) SetCaptain(ctx context.Context, ownerID string, slotIndex int) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.SetCaptain")
	defer span.End()

	return s.mutateSquad(ctx, ownerID, func(squad club.Squad) (club.Squad, error) {
		return squad.SetCaptain(slotIndex)
	})
}

func (s *ClubService) GetSquad(ctx context.Context, ownerID string) (club.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetSquad")
	defer span.End()

	owned, err := s.requireClub(ctx, ownerID)
	if err != nil {
		return club.Squad{}, err
	}
	return owned.Squad, nil
}

func (s *ClubService) mutateSquad(ctx context.Context, ownerID string, op func(club.Squad) (club.Squad, error)) (club.Squad, error) {
	owned, err := s.requireClub(ctx, ownerID)
	if err != nil {
		return club.Squad{}, err
	}

	next, err := op(owned.Squad)
	if err != nil {
		return club.Squad{}, err
	}
	next.UpdatedAt = s.now().UTC()

	if err := next.ValidateBasic(); err != nil {
		return club.Squad{}, fmt.Errorf("validate squad: %w", err)
	}
	if err := s.clubRepo.UpdateSquad(ctx, next); err != nil {
		return club.Squad{}, fmt.Errorf("update squad: %w", err)
	}

	return next, nil
}

func (s *ClubService) requireClub(ctx context.Context, ownerID string) (club.Club, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return club.Club{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	owned, exists, err := s.clubRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club by owner: %w", err)
	}
	if !exists {
		return club.Club{}, fmt.Errorf("%w: club for owner=%s", ErrNotFound, ownerID)
	}

	return owned, nil
}
