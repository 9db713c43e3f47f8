package pool

import "context"

// Fixed is a pool which never holds more than its capacity of workers.
// Workers are created lazily with newFn; once capacity workers exist, Get
// blocks until one of them is Put back.
type Fixed[T any] struct {
	available chan T
	created   chan struct{}
	newFn     func() T
}

// NewFixed returns a pool of at most capacity workers.
// With capacity 0, Get blocks until its context is done.
func NewFixed[T any](capacity uint, newFn func() T) *Fixed[T] {
	return &Fixed[T]{
		available: make(chan T, capacity),
		created:   make(chan struct{}, capacity),
		newFn:     newFn,
	}
}

func (p *Fixed[T]) Get(ctx context.Context) (T, error) {
	// prefer an idle worker over creating a new one
	select {
	case el := <-p.available:
		return el, nil
	default:
	}

	select {
	case el := <-p.available:
		return el, nil
	case p.created <- struct{}{}:
		return p.newFn(), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (p *Fixed[T]) Put(el T) {
	p.available <- el
}

// Created returns the number of workers created so far.
func (p *Fixed[T]) Created() int { return len(p.created) }

// Capacity returns the maximum number of workers.
func (p *Fixed[T]) Capacity() int { return cap(p.created) }
