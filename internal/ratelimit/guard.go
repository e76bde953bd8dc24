package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"tft-rivals/internal/constants"
)

// ErrRateLimitExceeded is returned when admitting a call would push a
// sliding window over its cap. Callers must back off; the guard never
// silently drops or delays a fail-fast reservation.
var ErrRateLimitExceeded = errors.New("rate budget exceeded")

// ReserveMode selects how a caller takes its token: fail fast on a full
// window, or block until a slot frees because the batch was pre-budgeted.
type ReserveMode int

const (
	ReserveFailFast ReserveMode = iota
	ReservePaced
)

type window struct {
	span  time.Duration
	limit int
	// Per-call timestamps, oldest first. Counting timestamps instead of a
	// bucket keeps admission correct across window boundaries.
	stamps []time.Time
}

func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for i < len(w.stamps) && !w.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

func (w *window) used(now time.Time) int {
	w.prune(now)
	return len(w.stamps)
}

// Guard enforces the provider's two sliding-window limits across every
// outbound call issued by this process. One instance is shared process-wide;
// all check-then-reserve operations are atomic under the mutex.
type Guard struct {
	mu      sync.Mutex
	windows []*window
	now     func() time.Time
	logger  zerolog.Logger
}

func NewGuard(logger zerolog.Logger) *Guard {
	return newGuard(logger, time.Now)
}

func newGuard(logger zerolog.Logger, now func() time.Time) *Guard {
	return &Guard{
		windows: []*window{
			{span: constants.RateShortWindow, limit: constants.RateShortLimit},
			{span: constants.RateLongWindow, limit: constants.RateLongLimit},
		},
		now:    now,
		logger: logger,
	}
}

// Reserve admits one call or fails fast with ErrRateLimitExceeded. A
// successful reservation is recorded in both windows immediately; the
// budget is spent whether or not the caller's request ultimately succeeds.
func (g *Guard) Reserve() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for _, w := range g.windows {
		if w.used(now) >= w.limit {
			g.logger.Debug().
				Dur("window", w.span).
				Int("limit", w.limit).
				Msg("reservation rejected")
			return ErrRateLimitExceeded
		}
	}
	for _, w := range g.windows {
		w.stamps = append(w.stamps, now)
	}
	return nil
}

// Budget reports whether n calls could ever be admitted given current
// long-window usage. It reserves nothing; batch fetchers call it before
// starting so they fail fast instead of stopping half way through.
func (g *Guard) Budget(n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	long := g.windows[len(g.windows)-1]
	if n > long.limit-long.used(now) {
		return ErrRateLimitExceeded
	}
	return nil
}

// Wait blocks until a reservation is admitted or ctx is done. It is meant
// for pacing calls inside an already-budgeted batch, where backing off and
// retrying later would leave the batch inconsistent.
func (g *Guard) Wait(ctx context.Context) error {
	for {
		g.mu.Lock()
		now := g.now()
		var wakeAt time.Time
		admitted := true
		for _, w := range g.windows {
			if w.used(now) >= w.limit {
				admitted = false
				at := w.stamps[0].Add(w.span)
				if wakeAt.IsZero() || at.After(wakeAt) {
					wakeAt = at
				}
			}
		}
		if admitted {
			for _, w := range g.windows {
				w.stamps = append(w.stamps, now)
			}
			g.mu.Unlock()
			return nil
		}
		g.mu.Unlock()

		timer := time.NewTimer(wakeAt.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining returns the smaller of the two windows' free slots, for
// observability endpoints.
func (g *Guard) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	remaining := -1
	for _, w := range g.windows {
		free := w.limit - w.used(now)
		if remaining < 0 || free < remaining {
			remaining = free
		}
	}
	return remaining
}
