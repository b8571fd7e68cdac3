package chain

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/goalcard/console-api/internal/platform/resilience"
	"github.com/goalcard/console-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// Provider error codes pattern-matched from the gateway response. Anything
// unrecognized falls through to the generic transient failure.
const (
	rpcCodeUserDenied        = 4001
	rpcCodeAlreadyProcessing = -32002
)

var errChainTransient = crerr.New("chain gateway transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	ChainID        int64
	GasLimit       int64
	Timeout        time.Duration
	MaxRetries     int
	Logger         *slog.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the chain gateway that fronts the wallet provider and
// the JSON-RPC node. It implements usecase.ChainGateway.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	chainID        int64
	gasLimit       int64
	maxRetries     int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	gasLimit := cfg.GasLimit
	if gasLimit <= 0 {
		gasLimit = 170_000
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		chainID:        cfg.ChainID,
		gasLimit:       gasLimit,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type mintApprovalResponse struct {
	TokenID         int64  `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
	Password        string `json:"password"`
	Signature       string `json:"signature"`
}

func (c *Client) RequestMintApproval(ctx context.Context, walletAddress, cardID string) (usecase.MintAuthorization, error) {
	payload := map[string]string{
		"walletAddress": walletAddress,
		"cardId":        cardID,
	}

	var resp mintApprovalResponse
	if err := c.postJSON(ctx, "/api/v0/nft/approve", payload, &resp); err != nil {
		return usecase.MintAuthorization{}, err
	}
	if resp.Password == "" || resp.ContractAddress == "" {
		return usecase.MintAuthorization{}, fmt.Errorf("%w: gateway returned incomplete mint approval", usecase.ErrDependencyUnavailable)
	}

	return usecase.MintAuthorization{
		TokenID:         resp.TokenID,
		ContractAddress: resp.ContractAddress,
		Password:        resp.Password,
		Signature:       resp.Signature,
	}, nil
}

type submitTransactionRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	GasLimit int64  `json:"gasLimit"`
	ChainID  int64  `json:"chainId"`
}

type submitTransactionResponse struct {
	TxHash string `json:"txHash"`
	Error  *struct {
		Code    int64  `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) SubmitMintTransaction(ctx context.Context, walletAddress string, auth usecase.MintAuthorization) (string, error) {
	data, err := BuildMintPayload(auth.TokenID, auth.Password, auth.Signature)
	if err != nil {
		return "", fmt.Errorf("build mint payload: %w", err)
	}

	req := submitTransactionRequest{
		From:     walletAddress,
		To:       auth.ContractAddress,
		Data:     data,
		GasLimit: c.gasLimit,
		ChainID:  c.chainID,
	}

	var resp submitTransactionResponse
	if err := c.postJSON(ctx, "/api/v0/nft/transactions", req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", mapProviderError(resp.Error.Code, resp.Error.Message)
	}
	if resp.TxHash == "" {
		return "", fmt.Errorf("%w: gateway returned no transaction hash", usecase.ErrDependencyUnavailable)
	}

	return resp.TxHash, nil
}

func mapProviderError(code int64, message string) error {
	switch {
	case code == rpcCodeUserDenied:
		return fmt.Errorf("%w: %s", usecase.ErrWalletDenied, message)
	case code == rpcCodeAlreadyProcessing:
		return fmt.Errorf("%w: %s", usecase.ErrChainBusy, message)
	case strings.Contains(strings.ToLower(message), "already minted"):
		return fmt.Errorf("%w: %s", usecase.ErrAlreadyMinted, message)
	default:
		return fmt.Errorf("%w: provider error code=%d: %s", usecase.ErrDependencyUnavailable, code, message)
	}
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "chain circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: chain gateway is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	if err := sonic.ConfigDefault.NewEncoder(body).Encode(payload); err != nil {
		c.recordResult(nil)
		return fmt.Errorf("encode request body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.recordResult(ctx.Err())
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		lastErr = c.doOnce(ctx, path, body.Bytes(), out)
		if lastErr == nil {
			c.recordResult(nil)
			return nil
		}
		if !crerr.Is(lastErr, errChainTransient) {
			c.recordResult(lastErr)
			return lastErr
		}
		c.logger.WarnContext(ctx, "chain gateway request retrying",
			"path", path,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}

	c.recordResult(lastErr)
	return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, lastErr)
}

func (c *Client) doOnce(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Mark(fmt.Errorf("chain gateway request: %w", err), errChainTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return crerr.Mark(fmt.Errorf("read response body: %w", err), errChainTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: chain gateway rejected credentials", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, strings.TrimSpace(string(raw)))
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, strings.TrimSpace(string(raw)))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return crerr.Mark(fmt.Errorf("chain gateway status %d", resp.StatusCode), errChainTransient)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return fmt.Errorf("chain gateway unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := sonic.ConfigDefault.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func (c *Client) recordResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err == nil || stderrors.Is(err, usecase.ErrInvalidInput) || stderrors.Is(err, usecase.ErrNotFound) {
		c.breaker.RecordSuccess()
		return
	}
	c.breaker.RecordFailure()
}
