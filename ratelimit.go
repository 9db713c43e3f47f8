package factorial

import (
	"context"
	"fmt"
	"time"

	"github.com/joeycumines/go-catrate"
)

// rateCategory is the single catrate category shared by all workers of a pool.
const rateCategory = "factorial"

// RateLimiter bounds the aggregate rate of factorial computations of a pool.
//
// Each computation holds its worker for at least MinInterval, which is
// poolSize * 1000 / targetPerSecond milliseconds: with poolSize workers this
// paces the pool to about targetPerSecond completions per second. Admit adds
// a rolling one-second window on top, shared by all workers, so bursts can
// not exceed targetPerSecond within any second.
type RateLimiter struct {
	minInterval time.Duration
	window      *catrate.Limiter
}

// NewRateLimiter returns a limiter for poolSize workers. Both arguments must be positive.
func NewRateLimiter(poolSize, targetPerSecond int) *RateLimiter {
	return &RateLimiter{
		minInterval: time.Duration(poolSize*1000/targetPerSecond) * time.Millisecond,
		window:      catrate.NewLimiter(map[time.Duration]int{time.Second: targetPerSecond}),
	}
}

// MinInterval returns the minimal duration of one computation slot.
func (r *RateLimiter) MinInterval() time.Duration { return r.minInterval }

// Admit registers one computation in the rolling window, waiting for a free slot if needed.
func (r *RateLimiter) Admit(ctx context.Context) error {
	for {
		next, ok := r.window.Allow(rateCategory)
		if ok {
			return nil
		}
		if err := sleepUntil(ctx, next); err != nil {
			return err
		}
	}
}

// Pace sleeps for the part of MinInterval not yet elapsed since started.
// It returns the slept duration.
func (r *RateLimiter) Pace(ctx context.Context, started time.Time) (time.Duration, error) {
	remaining := r.minInterval - time.Since(started)
	if remaining <= 0 {
		return 0, nil
	}
	if err := sleepUntil(ctx, time.Now().Add(remaining)); err != nil {
		return 0, err
	}
	return remaining, nil
}

// sleepUntil suspends until t or until ctx is done, whichever comes first.
func sleepUntil(ctx context.Context, t time.Time) error {
	timer := time.NewTimer(time.Until(t))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}
