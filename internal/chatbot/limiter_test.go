package chatbot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRateLimiterDailyCap(t *testing.T) {
	clock := newFakeClock()
	var state entity.LimiterState
	l := NewRateLimiter(&state, time.Second, 100, clock.Now)

	for i := 1; i <= 100; i++ {
		wait, err := l.Reserve()
		require.NoError(t, err, "acquisition %d", i)
		assert.Zero(t, wait)
		clock.Advance(time.Second)
	}

	_, err := l.Reserve()
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
	assert.Equal(t, 100, state.Count)
	assert.Zero(t, l.Remaining())
}

func TestRateLimiterSpacing(t *testing.T) {
	clock := newFakeClock()
	var state entity.LimiterState
	l := NewRateLimiter(&state, time.Second, 100, clock.Now)

	wait, err := l.Reserve()
	require.NoError(t, err)
	assert.Zero(t, wait)
	first := state.LastRequest

	clock.Advance(300 * time.Millisecond)
	wait, err = l.Reserve()
	require.NoError(t, err)
	assert.Equal(t, 700*time.Millisecond, wait)
	assert.Equal(t, time.Second, state.LastRequest.Sub(first))

	// a third call right away queues behind the second
	wait, err = l.Reserve()
	require.NoError(t, err)
	assert.Equal(t, 1700*time.Millisecond, wait)
	assert.Equal(t, 2*time.Second, state.LastRequest.Sub(first))
	assert.Equal(t, 97, l.Remaining())
}

func TestRateLimiterAcquireWaits(t *testing.T) {
	var state entity.LimiterState
	delay := 40 * time.Millisecond
	l := NewRateLimiter(&state, delay, 100, nil)

	start := time.Now()
	require.NoError(t, l.Acquire(context.Background()))
	require.NoError(t, l.Acquire(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestRateLimiterAcquireCancelled(t *testing.T) {
	var state entity.LimiterState
	l := NewRateLimiter(&state, time.Hour, 100, nil)
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Acquire(ctx), context.Canceled)
	assert.Equal(t, 2, state.Count)
}
