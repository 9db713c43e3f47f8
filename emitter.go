package factorial

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Sink consumes results in input order.
type Sink interface {
	Write(Result) error
}

// emitter drains the order queue front to back and writes one result per
// value, waiting for the value's factorial when it is not cached yet.
// Values whose factorial can no longer appear (the pool terminated without
// it) are logged and skipped. It returns once the queue is closed and drained
// and the pool has terminated.
type emitter struct {
	queue      *OrderQueue
	cache      *ResultCache
	terminated <-chan struct{}
	sink       Sink
	log        zerolog.Logger
	inst       *instruments
}

func (e *emitter) run(ctx context.Context) error {
	for {
		v, ok, err := e.queue.Take(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		f, err := e.cache.Await(ctx, v, e.terminated)
		if errors.Is(err, ErrResultLost) {
			if ctx.Err() != nil {
				// termination was forced by the cancelled run
				return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
			}
			e.inst.lost.Add(1)
			e.log.Error().Int("value", v).Msg("the factorial is missing")
			continue
		}
		if err != nil {
			return err
		}

		if err := e.sink.Write(Result{Value: v, Factorial: f}); err != nil {
			e.log.Error().Err(err).Int("value", v).Msg("error while writing output")
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		e.inst.emitted.Add(1)
	}

	select {
	case <-e.terminated:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}
