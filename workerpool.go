package factorial

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/easygolabs/FactorialCalculator/pool"
)

// workerPool runs one computation task per submitted value.
//
// Two independent bounds apply: the fixed pool of PoolSize workers bounds
// parallelism, and the semaphore of Permits bounds admitted computations
// across all workers. Every computation is paced by the RateLimiter.
type workerPool struct {
	ctx    context.Context
	cancel context.CancelFunc

	// intake; mu guards closing it against concurrent Submit
	mu     sync.RWMutex
	closed bool
	tasks  chan int

	inflight     sync.WaitGroup
	dispatcherWG sync.WaitGroup

	terminated chan struct{}
	lc         *lifecycleCoordinator
}

// newWorkerPool creates a pool storing results into cache and starts its dispatcher.
// Cancelling ctx forces cancellation of all tasks.
func newWorkerPool(ctx context.Context, cfg *config, cache *ResultCache, inst *instruments) *workerPool {
	p := &workerPool{
		tasks:      make(chan int, cfg.TasksBufferSize),
		terminated: make(chan struct{}),
	}
	p.ctx, p.cancel = context.WithCancel(ctx)

	log := cfg.Logger.With().Str("stage", "pool").Logger()
	permits := semaphore.NewWeighted(int64(cfg.Permits))
	limiter := NewRateLimiter(int(cfg.PoolSize), int(cfg.TargetPerSecond))
	workers := pool.NewFixed(cfg.PoolSize, func() *worker {
		return newWorker(cache, permits, limiter, inst)
	})

	p.lc = newLifecycleCoordinator(
		p.closeIntake,
		p.cancel,
		&p.dispatcherWG,
		&p.inflight,
		func() { close(p.terminated) },
		log,
	)

	d := newDispatcher(p.tasks, &p.inflight, workers, log, inst)
	p.dispatcherWG.Add(1)
	go func() {
		defer p.dispatcherWG.Done()
		d.run(p.ctx)
	}()

	log.Debug().
		Uint("pool_size", cfg.PoolSize).
		Uint("permits", cfg.Permits).
		Dur("min_interval", limiter.MinInterval()).
		Msg("worker pool started")

	return p
}

// Submit queues value for computation, blocking while the intake buffer is full.
func (p *workerPool) Submit(ctx context.Context, value int) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	select {
	case p.tasks <- value:
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, p.ctx.Err())
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}

func (p *workerPool) closeIntake() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}

// Shutdown stops accepting tasks and waits up to timeout for queued and
// in-flight tasks to finish. Past the timeout, remaining tasks are cancelled
// and an error matching ErrShutdownTimeout is returned.
func (p *workerPool) Shutdown(timeout time.Duration) error {
	return p.lc.Shutdown(timeout)
}

// Terminated is closed once no task can store a result anymore.
func (p *workerPool) Terminated() <-chan struct{} { return p.terminated }
