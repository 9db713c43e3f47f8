package factorial

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

// worker computes one factorial at a time on behalf of the pool.
type worker struct {
	cache   *ResultCache
	permits *semaphore.Weighted
	limiter *RateLimiter
	inst    *instruments
}

func newWorker(cache *ResultCache, permits *semaphore.Weighted, limiter *RateLimiter, inst *instruments) *worker {
	return &worker{cache: cache, permits: permits, limiter: limiter, inst: inst}
}

// execute computes value! and stores it in the cache.
//
// The permit is held from before the computation until the pacing sleep is
// over, so a slot lasts at least the limiter's MinInterval. Errors are tagged
// with value.
func (w *worker) execute(ctx context.Context, value int) (err error) {
	started := time.Now()

	defer func() {
		if ePanic := recover(); ePanic != nil {
			err = newValueError(fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic), value)
		}
	}()

	if err := w.permits.Acquire(ctx, 1); err != nil {
		return newValueError(fmt.Errorf("%w: %w", ErrCancelled, err), value)
	}
	defer w.permits.Release(1)

	if err := w.limiter.Admit(ctx); err != nil {
		return newValueError(err, value)
	}

	computeStarted := time.Now()
	// n! is 1 for every n <= 1
	result, err := ComputeContext(ctx, max(value, 0))
	if err != nil {
		return newValueError(err, value)
	}
	w.inst.computeSeconds.Record(time.Since(computeStarted).Seconds())

	if w.cache.Store(value, result) {
		w.inst.computed.Add(1)
	}

	slept, err := w.limiter.Pace(ctx, started)
	if err != nil {
		return newValueError(err, value)
	}
	w.inst.paceSeconds.Record(slept.Seconds())

	return nil
}
