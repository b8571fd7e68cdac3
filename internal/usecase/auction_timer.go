package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/goalcard/console-api/internal/domain/marketplace"
	"github.com/sourcegraph/conc"
)

// EndChecker is the authoritative close check a timer consults near expiry.
type EndChecker interface {
	IsLotEnded(ctx context.Context, lotID string) (bool, error)
}

// TimerState is the countdown lifecycle. Running ticks freely; once the
// display drops under the confirmation threshold the timer asks the server
// exactly once and latches into AwaitingConfirmation; Ended is terminal.
type TimerState string

const (
	TimerRunning              TimerState = "running"
	TimerAwaitingConfirmation TimerState = "awaiting_confirmation"
	TimerEnded                TimerState = "ended"
)

const (
	defaultTickInterval     = time.Second
	defaultConfirmThreshold = 7 * time.Second
)

// AuctionTimer derives a live countdown for one lot from its immutable
// end time. Every tick recomputes from the end time rather than counting
// elapsed ticks, so a suspended process resumes with the right remainder.
type AuctionTimer struct {
	lotID     string
	endTime   time.Time
	interval  time.Duration
	threshold time.Duration
	checker   EndChecker
	onTick    func(marketplace.Countdown)
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	state   TimerState
	queried bool
}

func NewAuctionTimer(
	lotID string,
	endTime time.Time,
	checker EndChecker,
	onTick func(marketplace.Countdown),
	logger *slog.Logger,
) *AuctionTimer {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuctionTimer{
		lotID:     lotID,
		endTime:   endTime,
		interval:  defaultTickInterval,
		threshold: defaultConfirmThreshold,
		checker:   checker,
		onTick:    onTick,
		logger:    logger,
		now:       time.Now,
		state:     TimerRunning,
	}
}

func (t *AuctionTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Tick advances the timer once and reports whether it should keep running.
func (t *AuctionTimer) Tick(ctx context.Context) bool {
	t.mu.Lock()
	if t.state == TimerEnded {
		t.mu.Unlock()
		return false
	}

	now := t.now()
	countdown := marketplace.CountdownAt(t.endTime, now)

	// The display wraps hours at 24, so the trigger works off the true
	// remainder: a 48h lot must not fire its one check a day early.
	remaining := t.endTime.Sub(now)
	shouldQuery := !t.queried && remaining < t.threshold
	if shouldQuery {
		t.queried = true
		t.state = TimerAwaitingConfirmation
	}
	if remaining <= 0 && t.queried {
		t.state = TimerEnded
	}
	state := t.state
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(countdown)
	}

	if shouldQuery {
		ended, err := t.checker.IsLotEnded(ctx, t.lotID)
		if err != nil {
			// The query happens at most once per timer; a failed check
			// leaves the countdown to run out on its own.
			t.logger.WarnContext(ctx, "authoritative end check failed", "lot_id", t.lotID, "error", err)
		} else if ended {
			t.mu.Lock()
			t.state = TimerEnded
			state = TimerEnded
			t.mu.Unlock()
		}
	}

	return state != TimerEnded
}

// Run ticks until the timer ends or ctx is cancelled. Cancellation is the
// teardown path: a stopped timer never fires a late callback.
func (t *AuctionTimer) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	if !t.Tick(ctx) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if !t.Tick(ctx) {
				return
			}
		}
	}
}

// TimerSupervisor runs one countdown goroutine per tracked lot and tears
// all of them down together.
type TimerSupervisor struct {
	checker EndChecker
	logger  *slog.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      conc.WaitGroup
}

func NewTimerSupervisor(checker EndChecker, logger *slog.Logger) *TimerSupervisor {
	if logger == nil {
		logger = slog.Default()
	}

	return &TimerSupervisor{
		checker: checker,
		logger:  logger,
		cancels: make(map[string]context.CancelFunc),
	}
}

// Track starts a countdown for the lot unless one is already running.
func (s *TimerSupervisor) Track(ctx context.Context, lot marketplace.Lot, onTick func(marketplace.Countdown)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.cancels[lot.ID]; running {
		return
	}

	timerCtx, cancel := context.WithCancel(ctx)
	s.cancels[lot.ID] = cancel

	timer := NewAuctionTimer(lot.ID, lot.EndTime, s.checker, onTick, s.logger)
	s.wg.Go(func() {
		defer s.release(lot.ID)
		timer.Run(timerCtx)
	})
}

// Untrack cancels the lot's countdown, if any.
func (s *TimerSupervisor) Untrack(lotID string) {
	s.mu.Lock()
	cancel, ok := s.cancels[lotID]
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

// Close cancels every countdown and waits for the goroutines to drain.
func (s *TimerSupervisor) Close() {
	s.mu.Lock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *TimerSupervisor) release(lotID string) {
	s.mu.Lock()
	if cancel, ok := s.cancels[lotID]; ok {
		cancel()
		delete(s.cancels, lotID)
	}
	s.mu.Unlock()
}
