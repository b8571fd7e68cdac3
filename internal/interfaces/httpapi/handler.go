package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/club"
	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/domain/pagination"
	"github.com/goalcard/console-api/internal/usecase"
)

const pageWindowWidth = 5

type Handler struct {
	clubService   *usecase.ClubService
	cardService   *usecase.CardService
	marketService *usecase.MarketplaceService
	mintService   *usecase.MintService
	lotCloser     *usecase.LotCloserService
	logger        *slog.Logger
	validator     *validator.Validate
	now           func() time.Time
}

func NewHandler(
	clubService *usecase.ClubService,
	cardService *usecase.CardService,
	marketService *usecase.MarketplaceService,
	mintService *usecase.MintService,
	lotCloser *usecase.LotCloserService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		clubService:   clubService,
		cardService:   cardService,
		marketService: marketService,
		mintService:   mintService,
		lotCloser:     lotCloser,
		logger:        logger,
		validator:     validator.New(),
		now:           time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parsePage reads the page/limit query pair, falling back to page 1 and
// the default page size when absent.
func parsePage(r *http.Request) (pagination.Page, error) {
	selected := 1
	limit := pagination.DefaultLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Page{}, fmt.Errorf("%w: page must be an integer", usecase.ErrInvalidInput)
		}
		selected = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Page{}, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
		}
		limit = parsed
	}

	return pagination.NewPage(selected, limit)
}

type squadSlotDTO struct {
	Index          int    `json:"index"`
	OccupantCardID string `json:"occupantCardId,omitempty"`
}

type squadDTO struct {
	ID               string         `json:"id"`
	ClubID           string         `json:"clubId"`
	Formation        string         `json:"formation"`
	Tactic           string         `json:"tactic"`
	CaptainSlotIndex int            `json:"captainSlotIndex"`
	Slots            []squadSlotDTO `json:"slots"`
	UpdatedAtUTC     string         `json:"updatedAtUtc"`
}

type clubDTO struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"ownerId"`
	Name         string   `json:"name"`
	Squad        squadDTO `json:"squad"`
	CreatedAtUTC string   `json:"createdAtUtc"`
}

type cardDTO struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"ownerId"`
	PlayerName  string           `json:"playerName"`
	Quality     string           `json:"quality"`
	Stats       map[string]int64 `json:"stats"`
	TokenID     int64            `json:"tokenId,omitempty"`
	MintedAtUTC string           `json:"mintedAtUtc,omitempty"`
}

type countdownDTO struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

type lotDTO struct {
	ID           string       `json:"id"`
	CardID       string       `json:"cardId"`
	SellerID     string       `json:"sellerId"`
	WinnerID     string       `json:"winnerId,omitempty"`
	StartPrice   int64        `json:"startPrice"`
	MaxPrice     int64        `json:"maxPrice"`
	CurrentPrice int64        `json:"currentPrice"`
	StartTimeUTC string       `json:"startTimeUtc"`
	EndTimeUTC   string       `json:"endTimeUtc"`
	Period       int          `json:"period"`
	Status       string       `json:"status"`
	Countdown    countdownDTO `json:"countdown"`
}

type bidDTO struct {
	ID           string `json:"id"`
	LotID        string `json:"lotId"`
	BidderID     string `json:"bidderId"`
	Amount       int64  `json:"amount"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type pageMetaDTO struct {
	SelectedPage int   `json:"selectedPage"`
	Limit        int   `json:"limit"`
	PageCount    int   `json:"pageCount"`
	TotalCount   int   `json:"totalCount"`
	PageWindow   []int `json:"pageWindow"`
}

func squadToDTO(ctx context.Context, v club.Squad) squadDTO {
	ctx, span := startSpan(ctx, "httpapi.squadToDTO")
	defer span.End()

	slots := make([]squadSlotDTO, 0, len(v.Slots))
	for _, slot := range v.Slots {
		slots = append(slots, squadSlotDTO{
			Index:          slot.Index,
			OccupantCardID: slot.OccupantCardID,
		})
	}

	return squadDTO{
		ID:               v.ID,
		ClubID:           v.ClubID,
		Formation:        string(v.Formation),
		Tactic:           string(v.Tactic),
		CaptainSlotIndex: v.CaptainSlotIndex,
		Slots:            slots,
		UpdatedAtUTC:     v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func clubToDTO(ctx context.Context, v club.Club) clubDTO {
	ctx, span := startSpan(ctx, "httpapi.clubToDTO")
	defer span.End()

	return clubDTO{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Name:         v.Name,
		Squad:        squadToDTO(ctx, v.Squad),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func cardToDTO(ctx context.Context, v card.Card) cardDTO {
	ctx, span := startSpan(ctx, "httpapi.cardToDTO")
	defer span.End()

	dto := cardDTO{
		ID:         v.ID,
		OwnerID:    v.OwnerID,
		PlayerName: v.PlayerName,
		Quality:    string(v.Quality),
		Stats:      v.Stats,
		TokenID:    v.TokenID,
	}
	if v.MintedAt != nil {
		dto.MintedAtUTC = v.MintedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func lotToDTO(ctx context.Context, v marketplace.Lot, now time.Time) lotDTO {
	ctx, span := startSpan(ctx, "httpapi.lotToDTO")
	defer span.End()

	countdown := marketplace.CountdownAt(v.EndTime, now)
	if v.Status.Terminal() {
		countdown = marketplace.Countdown{}
	}

	return lotDTO{
		ID:           v.ID,
		CardID:       v.CardID,
		SellerID:     v.SellerID,
		WinnerID:     v.WinnerID,
		StartPrice:   v.StartPrice,
		MaxPrice:     v.MaxPrice,
		CurrentPrice: v.CurrentPrice,
		StartTimeUTC: v.StartTime.UTC().Format(time.RFC3339),
		EndTimeUTC:   v.EndTime.UTC().Format(time.RFC3339),
		Period:       v.Period,
		Status:       string(v.Status),
		Countdown: countdownDTO{
			Hours:   countdown.Hours,
			Minutes: countdown.Minutes,
			Seconds: countdown.Seconds,
		},
	}
}

func bidToDTO(ctx context.Context, v marketplace.Bid) bidDTO {
	ctx, span := startSpan(ctx, "httpapi.bidToDTO")
	defer span.End()

	return bidDTO{
		ID:           v.ID,
		LotID:        v.LotID,
		BidderID:     v.BidderID,
		Amount:       v.Amount,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func totalsToDTO(ctx context.Context, v pagination.Totals) pageMetaDTO {
	ctx, span := startSpan(ctx, "httpapi.totalsToDTO")
	defer span.End()

	return pageMetaDTO{
		SelectedPage: v.SelectedPage,
		Limit:        v.Limit,
		PageCount:    v.PageCount,
		TotalCount:   v.TotalCount,
		PageWindow:   pagination.Window(v.SelectedPage, v.PageCount, pageWindowWidth),
	}
}
