package chatbot

import (
	"context"
	"errors"
	"time"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

const (
	DefaultRateLimitDelay = time.Second
	DefaultDailyLimit     = 100
)

// ErrDailyLimitExceeded the session used up its remote-call quota.
var ErrDailyLimitExceeded = errors.New("daily request limit exceeded")

// RateLimiter guarantees a minimum spacing between remote calls and caps
// their total number. It mutates the LimiterState it was given, so the
// caller persists that state with the rest of the session.
type RateLimiter struct {
	state *entity.LimiterState
	delay time.Duration
	limit int
	now   func() time.Time
}

// NewRateLimiter operates on state in place.
func NewRateLimiter(state *entity.LimiterState, delay time.Duration, limit int, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{state: state, delay: delay, limit: limit, now: now}
}

// Reserve books the next slot without blocking and returns how long the
// caller has to wait before using it.
func (l *RateLimiter) Reserve() (time.Duration, error) {
	if l.state.Count >= l.limit {
		return 0, ErrDailyLimitExceeded
	}

	now := l.now()
	var wait time.Duration
	if !l.state.LastRequest.IsZero() {
		if elapsed := now.Sub(l.state.LastRequest); elapsed < l.delay {
			wait = l.delay - elapsed
		}
	}

	l.state.LastRequest = now.Add(wait)
	l.state.Count++
	return wait, nil
}

// Acquire reserves a slot and waits for it. A cancelled ctx aborts the wait
// but the slot stays consumed.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	wait, err := l.Reserve()
	if err != nil {
		return err
	}
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Remaining calls left before ErrDailyLimitExceeded.
func (l *RateLimiter) Remaining() int {
	if r := l.limit - l.state.Count; r > 0 {
		return r
	}
	return 0
}
