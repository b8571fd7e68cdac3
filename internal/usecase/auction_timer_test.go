package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goalcard/console-api/internal/domain/marketplace"
)

type fakeEndChecker struct {
	calls atomic.Int32
	ended bool
	err   error
}

func (f *fakeEndChecker) IsLotEnded(context.Context, string) (bool, error) {
	f.calls.Add(1)
	return f.ended, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuctionTimer_CountdownDecreasesAcrossTicks(t *testing.T) {
	endTime := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	now := endTime.Add(-2 * time.Minute)

	var seen []marketplace.Countdown
	timer := NewAuctionTimer("lot-1", endTime, &fakeEndChecker{}, func(c marketplace.Countdown) {
		seen = append(seen, c)
	}, discardLogger())
	timer.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !timer.Tick(t.Context()) {
			t.Fatalf("timer ended early at tick %d", i)
		}
		now = now.Add(time.Second)
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 countdown callbacks, got %d", len(seen))
	}
	if seen[0].Seconds != 0 || seen[0].Minutes != 2 {
		t.Fatalf("unexpected first countdown: %+v", seen[0])
	}
	if seen[1].Minutes != 1 || seen[1].Seconds != 59 {
		t.Fatalf("expected countdown to shrink by one second, got %+v", seen[1])
	}
}

func TestAuctionTimer_LongLotSurvivesDisplayWrap(t *testing.T) {
	endTime := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	checker := &fakeEndChecker{ended: false}

	var last marketplace.Countdown
	timer := NewAuctionTimer("lot-48h", endTime, checker, func(c marketplace.Countdown) {
		last = c
	}, discardLogger())

	// A 48h lot renders 00:00:00 at exactly 24h remaining because the
	// hour display wraps. The timer must keep running and must not spend
	// its single server check there.
	timer.now = func() time.Time { return endTime.Add(-24 * time.Hour) }
	if !timer.Tick(t.Context()) {
		t.Fatal("timer ended with 24 hours remaining")
	}
	if got := timer.State(); got != TimerRunning {
		t.Fatalf("expected running state at 24h remaining, got %s", got)
	}
	if got := checker.calls.Load(); got != 0 {
		t.Fatalf("server check fired %d times with 24h remaining", got)
	}
	if !last.Zero() {
		t.Fatalf("expected wrapped display 00:00:00, got %+v", last)
	}

	// Near the real expiry the check still fires exactly once.
	timer.now = func() time.Time { return endTime.Add(-3 * time.Second) }
	timer.Tick(t.Context())
	if got := checker.calls.Load(); got != 1 {
		t.Fatalf("server check fired %d times near expiry, want 1", got)
	}
	if got := timer.State(); got != TimerAwaitingConfirmation {
		t.Fatalf("expected awaiting confirmation near expiry, got %s", got)
	}
}

func TestAuctionTimer_QueriesServerOnceBelowThreshold(t *testing.T) {
	endTime := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	now := endTime.Add(-5 * time.Second)
	checker := &fakeEndChecker{ended: false}

	timer := NewAuctionTimer("lot-1", endTime, checker, nil, discardLogger())
	timer.now = func() time.Time { return now }

	if !timer.Tick(t.Context()) {
		t.Fatal("timer ended before countdown reached zero")
	}
	if got := checker.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one end check below threshold, got %d", got)
	}
	if timer.State() != TimerAwaitingConfirmation {
		t.Fatalf("expected awaiting_confirmation, got %s", timer.State())
	}

	// Further ticks under the threshold never re-query.
	now = now.Add(time.Second)
	timer.Tick(t.Context())
	now = now.Add(time.Second)
	timer.Tick(t.Context())
	if got := checker.calls.Load(); got != 1 {
		t.Fatalf("expected the end check to stay latched, got %d calls", got)
	}
}

func TestAuctionTimer_ServerConfirmationEndsTimer(t *testing.T) {
	endTime := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	checker := &fakeEndChecker{ended: true}

	timer := NewAuctionTimer("lot-1", endTime, checker, nil, discardLogger())
	timer.now = func() time.Time { return endTime.Add(-3 * time.Second) }

	if timer.Tick(t.Context()) {
		t.Fatal("expected timer to stop once the server confirms the close")
	}
	if timer.State() != TimerEnded {
		t.Fatalf("expected ended state, got %s", timer.State())
	}
	if timer.Tick(t.Context()) {
		t.Fatal("ended timer must stay ended")
	}
	if got := checker.calls.Load(); got != 1 {
		t.Fatalf("expected no further end checks after ending, got %d", got)
	}
}

func TestAuctionTimer_RunsOutWhenCheckFails(t *testing.T) {
	endTime := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	now := endTime.Add(-2 * time.Second)
	checker := &fakeEndChecker{err: context.DeadlineExceeded}

	timer := NewAuctionTimer("lot-1", endTime, checker, nil, discardLogger())
	timer.now = func() time.Time { return now }

	if !timer.Tick(t.Context()) {
		t.Fatal("failed check must not end the timer")
	}

	// The countdown still reaches zero on its own and ends locally.
	now = endTime.Add(time.Second)
	if timer.Tick(t.Context()) {
		t.Fatal("expected timer ended at zero countdown")
	}
	if timer.State() != TimerEnded {
		t.Fatalf("expected ended state, got %s", timer.State())
	}
}

func TestCountdownAt_ZeroPastEndTime(t *testing.T) {
	endTime := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	c := marketplace.CountdownAt(endTime, endTime.Add(time.Minute))
	if !c.Zero() {
		t.Fatalf("expected zero countdown past end time, got %+v", c)
	}

	c = marketplace.CountdownAt(endTime, endTime.Add(-(26*time.Hour + 30*time.Minute + 5*time.Second)))
	if c.Hours != 2 || c.Minutes != 30 || c.Seconds != 5 {
		t.Fatalf("expected hours to wrap at 24, got %+v", c)
	}
}

func TestTimerSupervisor_TrackIsIdempotentAndCloses(t *testing.T) {
	checker := &fakeEndChecker{}
	supervisor := NewTimerSupervisor(checker, discardLogger())

	lot := marketplace.Lot{ID: "lot-1", EndTime: time.Now().Add(time.Hour)}

	var ticks atomic.Int32
	onTick := func(marketplace.Countdown) { ticks.Add(1) }

	supervisor.Track(t.Context(), lot, onTick)
	supervisor.Track(t.Context(), lot, onTick)

	// The timer ticks once immediately on start.
	deadline := time.After(2 * time.Second)
	for ticks.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no tick observed")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}

	supervisor.Untrack(lot.ID)
	supervisor.Close()

	supervisor.mu.Lock()
	remaining := len(supervisor.cancels)
	supervisor.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected all timers released after close, %d remain", remaining)
	}
}
