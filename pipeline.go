package factorial

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pipeline computes factorials of a stream of values and emits them in input order.
// A Pipeline is immutable after New and may Run any number of times, also concurrently.
type Pipeline struct {
	config config
}

// New creates a Pipeline using functional options.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &Pipeline{config: cfg}, nil
}

// Run reads src to the end and writes one result per input line to sink, in input order.
//
// Semantics:
//   - Each run owns a fresh result cache, order queue and worker pool.
//   - Ingestion and emission run concurrently; the ingestor blocks while the order queue is full.
//   - Each distinct value is computed at most once; repeats reuse the cached factorial.
//   - A read error stops ingestion; lines read before it are still emitted.
//   - A sink error or ctx cancellation stops the whole run.
//   - When the pool does not finish within the shutdown timeout, remaining tasks are cancelled
//     and their values are skipped.
//
// The returned error joins all of the above conditions; it is nil for a clean run.
func (p *Pipeline) Run(ctx context.Context, src Source, sink Sink) error {
	cfg := &p.config
	started := time.Now()
	inst := newInstruments(cfg.Metrics)

	g, gctx := errgroup.WithContext(ctx)

	cache := NewResultCache()
	queue := NewOrderQueue(int(cfg.QueueCapacity))
	wp := newWorkerPool(gctx, cfg, cache, inst)

	in := &ingestor{
		src:     src,
		queue:   queue,
		cache:   cache,
		pool:    wp,
		timeout: cfg.ShutdownTimeout,
		log:     cfg.Logger.With().Str("stage", "ingest").Logger(),
		inst:    inst,
	}
	em := &emitter{
		queue:      queue,
		cache:      cache,
		terminated: wp.Terminated(),
		sink:       sink,
		log:        cfg.Logger.With().Str("stage", "emit").Logger(),
		inst:       inst,
	}

	g.Go(func() error { return in.run(gctx) })
	g.Go(func() error { return em.run(gctx) })

	waitErr := g.Wait()
	err := errors.Join(in.readErr, in.shutdownErr, waitErr)

	cfg.Logger.Info().
		Dur("elapsed", time.Since(started)).
		Int("distinct", cache.Len()).
		Err(err).
		Msg("factorial run finished")

	return err
}
