package factorial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Source produces input lines. Next returns io.EOF after the last line.
type Source interface {
	Next() (string, error)
}

// ingestor reads the input sequentially, records every value in the order
// queue and submits the first occurrence of each value to the worker pool.
//
// When the input is exhausted, unreadable, or ingestion is cancelled, it
// closes the queue and shuts the pool down. A read error ends ingestion
// without failing the run: values read so far are still emitted.
type ingestor struct {
	src     Source
	queue   *OrderQueue
	cache   *ResultCache
	pool    *workerPool
	timeout time.Duration
	log     zerolog.Logger
	inst    *instruments

	// set by run
	readErr     error
	shutdownErr error
}

func (in *ingestor) run(ctx context.Context) error {
	defer in.finish()

	for line := 1; ; line++ {
		text, err := in.src.Next()
		if errors.Is(err, io.EOF) {
			in.log.Debug().Int("lines", line-1).Msg("end of input")
			return nil
		}
		if err != nil {
			in.readErr = fmt.Errorf("%w: line %d: %w", ErrRead, line, err)
			in.log.Error().Err(err).Int("line", line).Msg("error while reading input")
			return nil
		}

		v, ok := parseLine(text)
		in.inst.ingested.Add(1)
		if !ok {
			in.inst.invalid.Add(1)
			in.log.Debug().Int("line", line).Str("text", text).Msg("unparsable line replaced by the invalid value")
		}

		if err := in.queue.Put(ctx, v); err != nil {
			in.log.Error().Err(err).Int("line", line).Msg("putting value to the order queue was interrupted")
			return err
		}

		if !in.cache.Claim(v) {
			in.inst.duplicates.Add(1)
			continue
		}
		if err := in.pool.Submit(ctx, v); err != nil {
			in.log.Error().Err(err).Int("value", v).Msg("submitting factorial task was interrupted")
			return err
		}
		in.inst.dispatched.Add(1)
	}
}

// finish closes the queue and shuts the worker pool down.
func (in *ingestor) finish() {
	in.queue.Close()
	in.shutdownErr = in.pool.Shutdown(in.timeout)
	in.log.Debug().Err(in.shutdownErr).Msg("worker pool was shut down")
}

// parseLine is ParseValue, also reporting whether text held a usable value.
// Values outside the 32-bit range are not usable.
func parseLine(text string) (int, bool) {
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Invalid, false
	}
	return int(n), true
}
