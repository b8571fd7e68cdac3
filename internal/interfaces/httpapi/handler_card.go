package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goalcard/console-api/internal/usecase"
)

func (h *Handler) ListMyCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyCards")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	cards, totals, err := h.cardService.ListOwnerCards(ctx, principal.UserID, page)
	if err != nil {
		h.logger.WarnContext(ctx, "list cards failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]cardDTO, 0, len(cards))
	for _, c := range cards {
		items = append(items, cardToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"items": items,
		"page":  totalsToDTO(ctx, totals),
	})
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCard")
	defer span.End()

	cardID := strings.TrimSpace(r.PathValue("cardID"))
	item, err := h.cardService.GetCard(ctx, cardID)
	if err != nil {
		h.logger.WarnContext(ctx, "get card failed", "card_id", cardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cardToDTO(ctx, item))
}
