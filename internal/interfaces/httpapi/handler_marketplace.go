package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/usecase"
)

type createLotRequest struct {
	CardID     string `json:"cardId" validate:"required"`
	StartPrice int64  `json:"startPrice" validate:"required,gt=0"`
	MaxPrice   int64  `json:"maxPrice" validate:"omitempty,gt=0"`
	Period     int    `json:"period" validate:"required,gt=0,lte=168"`
}

type placeBidRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) CreateLot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLot")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLotRequest
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

	lot, err := h.marketService.CreateLot(ctx, usecase.CreateLotInput{
		SellerID:   principal.UserID,
		CardID:     req.CardID,
		StartPrice: req.StartPrice,
		MaxPrice:   req.MaxPrice,
		Period:     req.Period,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create lot failed", "user_id", principal.UserID, "card_id", req.CardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lotToDTO(ctx, lot, h.now()))
}

func (h *Handler) ListLots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLots")
	defer span.End()

	page, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter, err := parseLotFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.marketService.ListLots(ctx, filter, page)
	if err != nil {
		h.logger.WarnContext(ctx, "list lots failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	now := h.now()
	items := make([]lotDTO, 0, len(result.Lots))
	for _, lot := range result.Lots {
		items = append(items, lotToDTO(ctx, lot, now))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"items": items,
		"page":  totalsToDTO(ctx, result.Totals),
	})
}

func (h *Handler) GetLot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLot")
	defer span.End()

	lotID := strings.TrimSpace(r.PathValue("lotID"))
	lot, err := h.marketService.GetLot(ctx, lotID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lot failed", "lot_id", lotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lotToDTO(ctx, lot, h.now()))
}

// GetLotEnded is the authoritative end check the countdown clients call
// once when their local timer reaches zero.
func (h *Handler) GetLotEnded(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLotEnded")
	defer span.End()

	lotID := strings.TrimSpace(r.PathValue("lotID"))
	ended, err := h.marketService.IsLotEnded(ctx, lotID)
	if err != nil {
		h.logger.WarnContext(ctx, "lot end check failed", "lot_id", lotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"ended": ended})
}

func (h *Handler) ListLotBids(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLotBids")
	defer span.End()

	lotID := strings.TrimSpace(r.PathValue("lotID"))
	bids, err := h.marketService.ListBids(ctx, lotID)
	if err != nil {
		h.logger.WarnContext(ctx, "list bids failed", "lot_id", lotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]bidDTO, 0, len(bids))
	for _, bid := range bids {
		items = append(items, bidToDTO(ctx, bid))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	lotID := strings.TrimSpace(r.PathValue("lotID"))
	var req placeBidRequest
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

	lot, err := h.marketService.PlaceBid(ctx, lotID, principal.UserID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed", "lot_id", lotID, "user_id", principal.UserID, "amount", req.Amount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lotToDTO(ctx, lot, h.now()))
}

func parseLotFilter(r *http.Request) (marketplace.ListFilter, error) {
	filter := marketplace.ListFilter{
		Status:   marketplace.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
		SellerID: strings.TrimSpace(r.URL.Query().Get("seller_id")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("min_price")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return marketplace.ListFilter{}, fmt.Errorf("%w: min_price must be a non-negative integer", usecase.ErrInvalidInput)
		}
		filter.MinPrice = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("max_price")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return marketplace.ListFilter{}, fmt.Errorf("%w: max_price must be a non-negative integer", usecase.ErrInvalidInput)
		}
		filter.MaxPrice = parsed
	}

	return filter, nil
}
