package factorial

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"
)

// lifecycleCoordinator encapsulates the worker pool shutdown sequence.
// It is a wiring helper: it doesn't own channels; it orchestrates intake
// closure, bounded waiting, forced cancellation and the termination signal in
// a deterministic order.
//
// Shutdown() is safe for concurrent calls; the sequence executes exactly once
// and every caller gets the same result.
type lifecycleCoordinator struct {
	closeIntake    func()
	cancel         func()
	dispatcherWG   *sync.WaitGroup
	inflight       *sync.WaitGroup
	markTerminated func()
	log            zerolog.Logger

	once sync.Once
	err  error
}

func newLifecycleCoordinator(
	closeIntake func(),
	cancel func(),
	dispatcherWG *sync.WaitGroup,
	inflight *sync.WaitGroup,
	markTerminated func(),
	log zerolog.Logger,
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		closeIntake:    closeIntake,
		cancel:         cancel,
		dispatcherWG:   dispatcherWG,
		inflight:       inflight,
		markTerminated: markTerminated,
		log:            log,
	}
}

// Shutdown executes the shutdown sequence exactly once:
// 1) close the intake so no new task is accepted
// 2) wait for the dispatcher to stop adding work, then for in-flight tasks
// 3) if that takes longer than timeout, cancel the pool context and wait again
// 4) release the pool context
// 5) signal termination
func (lc *lifecycleCoordinator) Shutdown(timeout time.Duration) error {
	lc.once.Do(func() {
		if lc.closeIntake != nil {
			lc.closeIntake()
		}

		done := make(chan struct{})
		go func() {
			// no inflight.Add can happen once the dispatcher has exited
			if lc.dispatcherWG != nil {
				lc.dispatcherWG.Wait()
			}
			if lc.inflight != nil {
				lc.inflight.Wait()
			}
			close(done)
		}()

		timer := time.NewTimer(timeout)
		select {
		case <-done:
			timer.Stop()
		case <-timer.C:
			lc.log.Error().Dur("timeout", timeout).Msg("worker pool did not terminate in the specified time, cancelling remaining tasks")
			lc.err = errorc.With(ErrShutdownTimeout, errorc.String("timeout", timeout.String()))
			if lc.cancel != nil {
				lc.cancel()
			}
			<-done
		}

		if lc.cancel != nil {
			lc.cancel()
		}
		if lc.markTerminated != nil {
			lc.markTerminated()
		}
	})
	return lc.err
}
