package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goalcard/console-api/external/chain"
	"github.com/goalcard/console-api/internal/config"
	"github.com/goalcard/console-api/internal/domain/card"
	"github.com/goalcard/console-api/internal/domain/club"
	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/goalcard/console-api/internal/infrastructure/account"
	"github.com/goalcard/console-api/internal/infrastructure/repository/memory"
	"github.com/goalcard/console-api/internal/infrastructure/repository/postgres"
	"github.com/goalcard/console-api/internal/interfaces/httpapi"
	"github.com/goalcard/console-api/internal/platform/cache"
	idgen "github.com/goalcard/console-api/internal/platform/id"
	"github.com/goalcard/console-api/internal/platform/resilience"
	"github.com/goalcard/console-api/internal/usecase"
)

// Services bundles the long-lived pieces of the application alongside
// the HTTP server, so the entrypoint can run background loops (the lot
// closer sweep) against the same instances the handlers use.
type Services struct {
	LotCloser *usecase.LotCloserService
}

type repositories struct {
	cards card.Repository
	clubs club.Repository
	lots  marketplace.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, Services{}, err
	}

	var listCache *cache.Store
	if cfg.CacheEnabled {
		listCache = cache.NewStore(cfg.CacheTTL)
	}

	idGen := idgen.NewRandomGenerator()

	clubSvc := usecase.NewClubService(repos.clubs, repos.cards, idGen, logger)
	cardSvc := usecase.NewCardService(repos.cards)
	marketSvc := usecase.NewMarketplaceService(repos.lots, repos.cards, listCache, idGen, logger)
	mintSvc := usecase.NewMintService(repos.cards, buildChainGateway(cfg, logger), logger)
	lotCloser := usecase.NewLotCloserService(repos.lots, marketSvc, cfg.SweepBatchSize, cfg.SweepWorkers, logger)

	accountClient := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(clubSvc, cardSvc, marketSvc, mintSvc, lotCloser, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, Services{}, fmt.Errorf("http server addr cannot be empty")
	}

	return server, Services{LotCloser: lotCloser}, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("no DB_URL configured, using seeded in-memory repositories")
		return repositories{
			cards: memory.NewCardRepository(memory.SeedCards()),
			clubs: memory.NewClubRepository(),
			lots:  memory.NewLotRepository(memory.SeedLots()),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		cards: postgres.NewCardRepository(db),
		clubs: postgres.NewClubRepository(db),
		lots:  postgres.NewLotRepository(db),
	}, nil
}

func buildChainGateway(cfg config.Config, logger *slog.Logger) usecase.ChainGateway {
	if !cfg.ChainEnabled {
		return disabledChainGateway{}
	}

	return chain.NewClient(chain.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.ChainTimeout},
		BaseURL:    cfg.ChainBaseURL,
		APIKey:     cfg.ChainAPIKey,
		ChainID:    cfg.ChainID,
		GasLimit:   cfg.ChainGasLimit,
		Timeout:    cfg.ChainTimeout,
		MaxRetries: cfg.ChainMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ChainCircuitEnabled,
			FailureThreshold: cfg.ChainCircuitFailureCount,
			OpenTimeout:      cfg.ChainCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ChainCircuitHalfOpenMaxReq,
		},
	})
}

// disabledChainGateway keeps the mint flow wired when no chain gateway
// is configured. Requests fail fast with the dependency sentinel instead
// of dialing a missing upstream.
type disabledChainGateway struct{}

func (disabledChainGateway) RequestMintApproval(context.Context, string, string) (usecase.MintAuthorization, error) {
	return usecase.MintAuthorization{}, fmt.Errorf("%w: chain gateway is disabled", usecase.ErrDependencyUnavailable)
}

func (disabledChainGateway) SubmitMintTransaction(context.Context, string, usecase.MintAuthorization) (string, error) {
	return "", fmt.Errorf("%w: chain gateway is disabled", usecase.ErrDependencyUnavailable)
}
