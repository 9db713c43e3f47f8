package factorial

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// OrderQueue is a bounded FIFO of input values, in ingestion order.
//
// Put blocks while the queue is full; values are never dropped. The queue has
// a single producer, which calls Close once there is nothing more to put.
// Take returns ok == false once the queue is closed and drained.
type OrderQueue struct {
	items     chan int
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewOrderQueue returns a queue holding at most capacity values.
// A zero capacity makes every Put wait for a matching Take.
func NewOrderQueue(capacity int) *OrderQueue {
	return &OrderQueue{items: make(chan int, capacity)}
}

// Put appends v, blocking while the queue is full.
func (q *OrderQueue) Put(ctx context.Context, v int) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	select {
	case q.items <- v:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}

// Take removes and returns the oldest value, blocking while the queue is empty and open.
func (q *OrderQueue) Take(ctx context.Context) (int, bool, error) {
	select {
	case v, ok := <-q.items:
		return v, ok, nil
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}

// Close marks the end of input. It is idempotent.
// Values already in the queue remain available to Take.
func (q *OrderQueue) Close() {
	q.closeOnce.Do(func() {
		q.closed.Store(true)
		close(q.items)
	})
}

// Len returns the number of queued values.
func (q *OrderQueue) Len() int { return len(q.items) }

// Cap returns the queue capacity.
func (q *OrderQueue) Cap() int { return cap(q.items) }
