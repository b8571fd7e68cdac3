package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/goalcard/console-api/internal/domain/club"
	"github.com/goalcard/console-api/internal/usecase"
)

type exchangeSlotsRequest struct {
	SourceIndex *int `json:"sourceIndex" validate:"required"`
	TargetIndex *int `json:"targetIndex" validate:"required"`
}

type placeCardRequest struct {
	CardID string `json:"cardId" validate:"required"`
}

type setFormationRequest struct {
	Formation string `json:"formation" validate:"required"`
}

type setTacticRequest struct {
	Tactic string `json:"tactic" validate:"required"`
}

type setCaptainRequest struct {
	SlotIndex *int `json:"slotIndex" validate:"required"`
}

func (h *Handler) GetMyClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyClub")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.clubService.GetOrCreateClub(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubToDTO(ctx, item))
}

func (h *Handler) GetMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquad")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	squad, err := h.clubService.GetSquad(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) PlaceCardInSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceCardInSlot")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	slotIndex, err := parseSlotIndex(r.PathValue("slotIndex"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req placeCardRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.clubService.PlaceCard(ctx, principal.UserID, slotIndex, req.CardID)
	if err != nil {
		h.logger.WarnContext(ctx, "place card failed", "user_id", principal.UserID, "slot_index", slotIndex, "card_id", req.CardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) RemoveCardFromSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveCardFromSlot")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	slotIndex, err := parseSlotIndex(r.PathValue("slotIndex"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.clubService.RemoveCard(ctx, principal.UserID, slotIndex)
	if err != nil {
		h.logger.WarnContext(ctx, "remove card failed", "user_id", principal.UserID, "slot_index", slotIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) ExchangeSquadSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExchangeSquadSlots")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req exchangeSlotsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.clubService.ExchangeCards(ctx, principal.UserID, *req.SourceIndex, *req.TargetIndex)
	if err != nil {
		h.logger.WarnContext(ctx, "exchange slots failed", "user_id", principal.UserID, "source_index", *req.SourceIndex, "target_index", *req.TargetIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) SetSquadFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSquadFormation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setFormationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.clubService.SetFormation(ctx, principal.UserID, club.Formation(req.Formation))
	if err != nil {
		h.logger.WarnContext(ctx, "set formation failed", "user_id", principal.UserID, "formation", req.Formation, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) SetSquadTactic(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSquadTactic")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setTacticRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.clubService.SetTactic(ctx, principal.UserID, club.Tactic(req.Tactic))
	if err != nil {
		h.logger.WarnContext(ctx, "set tactic failed", "user_id", principal.UserID, "tactic", req.Tactic, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func (h *Handler) SetSquadCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSquadCaptain")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setCaptainRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.clubService.SetCaptain(ctx, principal.UserID, *req.SlotIndex)
	if err != nil {
		h.logger.WarnContext(ctx, "set captain failed", "user_id", principal.UserID, "slot_index", *req.SlotIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(ctx, squad))
}

func parseSlotIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: slot index must be an integer", usecase.ErrInvalidInput)
	}
	return index, nil
}
