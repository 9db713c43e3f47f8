// Package pool provides a fixed-size pool of reusable workers.
package pool

import "context"

// Pool hands out workers and takes them back.
type Pool[T any] interface {
	// Get returns a worker from the pool, blocking until one is available or ctx is done.
	Get(ctx context.Context) (T, error)

	// Put returns a worker back to the pool.
	Put(T)
}
