package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goalcard/console-api/internal/usecase"
)

func (h *Handler) MintCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MintCard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	cardID := strings.TrimSpace(r.PathValue("cardID"))
	receipt, err := h.mintService.MintCard(ctx, principal.UserID, principal.WalletAddress, cardID)
	if err != nil {
		h.logger.WarnContext(ctx, "mint card failed", "user_id", principal.UserID, "card_id", cardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, receipt)
}
