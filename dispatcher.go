package factorial

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/easygolabs/FactorialCalculator/pool"
)

// dispatcher reads values from the intake channel and runs each on a worker
// taken from the pool, so at most the pool capacity of tasks run at once.
// In-flight tasks are tracked with a WaitGroup. The dispatcher returns when the
// intake channel is closed and empty, or when ctx is done; in the latter case
// the values still queued are dropped and logged.
type dispatcher struct {
	tasks    <-chan int
	inflight *sync.WaitGroup
	pool     pool.Pool[*worker]
	log      zerolog.Logger
	inst     *instruments
}

func newDispatcher(
	tasks <-chan int,
	inflight *sync.WaitGroup,
	p pool.Pool[*worker],
	log zerolog.Logger,
	inst *instruments,
) *dispatcher {
	return &dispatcher{tasks: tasks, inflight: inflight, pool: p, log: log, inst: inst}
}

func (d *dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.dropQueued(0)
			return
		case v, ok := <-d.tasks:
			if !ok {
				return
			}
			w, err := d.pool.Get(ctx)
			if err != nil {
				d.dropQueued(1)
				return
			}
			d.inflight.Add(1)
			d.inst.inflight.Add(1)
			go func() {
				defer d.inflight.Done()
				defer d.inst.inflight.Add(-1)
				defer d.pool.Put(w)
				d.execute(ctx, w, v)
			}()
		}
	}
}

func (d *dispatcher) execute(ctx context.Context, w *worker, v int) {
	err := w.execute(ctx, v)
	switch {
	case err == nil:
	case errors.Is(err, ErrCancelled):
		d.log.Warn().Err(err).Int("value", v).Msg("factorial task cancelled")
	default:
		d.log.Error().Err(err).Int("value", v).Msg("factorial task failed")
	}
}

// dropQueued discards the values left in the intake after cancellation.
// Taken is the number of values already received but not started.
func (d *dispatcher) dropQueued(taken int) {
	dropped := taken
	for {
		select {
		case _, ok := <-d.tasks:
			if !ok {
				d.logDropped(dropped)
				return
			}
			dropped++
		default:
			d.logDropped(dropped)
			return
		}
	}
}

func (d *dispatcher) logDropped(n int) {
	if n > 0 {
		d.log.Error().Int("tasks", n).Msg("worker pool cancelled before starting queued tasks")
	}
}
