package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultSweepBatchSize = 200
	defaultSweepWorkers   = 8
)

// SweepResult summarizes one pass over expired lots.
type SweepResult struct {
	ScannedCount int `json:"scanned_count"`
	ClosedCount  int `json:"closed_count"`
	FailedCount  int `json:"failed_count"`
	WorkerCount  int `json:"worker_count"`
}

// LotCloserService is the server-side backstop behind the countdown
// timers: it periodically settles active lots whose end time has passed,
// so lots close even when no client is watching them.
type LotCloserService struct {
	lotRepo     marketplace.Repository
	marketplace *MarketplaceService
	batchSize   int
	workers     int
	logger      *slog.Logger
	now         func() time.Time
	submit      func(pool *ants.Pool, task func()) error
}

func NewLotCloserService(
	lotRepo marketplace.Repository,
	marketplaceService *MarketplaceService,
	batchSize, workers int,
	logger *slog.Logger,
) *LotCloserService {
	if batchSize < 1 {
		batchSize = defaultSweepBatchSize
	}
	if workers < 1 {
		workers = defaultSweepWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LotCloserService{
		lotRepo:     lotRepo,
		marketplace: marketplaceService,
		batchSize:   batchSize,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
		submit: func(pool *ants.Pool, task func()) error {
			return pool.Submit(task)
		},
	}
}

// SweepOnce settles every active lot past its end time, fanning the
// settlements out over a bounded worker pool. Settlement is idempotent
// per lot, so a failure is just counted and picked up by the next sweep.
func (s *LotCloserService) SweepOnce(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LotCloserService.SweepOnce")
	defer span.End()

	now := s.now().UTC()
	expired, err := s.lotRepo.ListActiveEndedBefore(ctx, now, s.batchSize)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list expired lots: %w", err)
	}

	result := SweepResult{ScannedCount: len(expired), WorkerCount: s.workers}
	if len(expired) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var closedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	var submitErr error
	for _, lot := range expired {
		lot := lot
		workers.Add(1)
		if err := s.submit(pool, func() {
			defer workers.Done()

			if err := s.marketplace.SettleLot(ctx, lot, now); err != nil {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "settle lot failed", "lot_id", lot.ID, "error", err)
				return
			}
			closedCount.Add(1)
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit settle task: %w", err)
			break
		}
	}
	// Settlements already submitted must finish before the pool is
	// released, even when a later submit failed.
	workers.Wait()
	if submitErr != nil {
		return SweepResult{}, submitErr
	}

	result.ClosedCount = int(closedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "lot sweep finished",
		"scanned", result.ScannedCount,
		"closed", result.ClosedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

// Run sweeps on the interval until ctx is cancelled.
func (s *LotCloserService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "lot sweep failed", "error", err)
			}
		}
	}
}
