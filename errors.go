package factorial

import "errors"

const Namespace = "factorial"

var (
	ErrInvalidArgument = errors.New(Namespace + ": invalid argument")
	ErrInvalidConfig   = errors.New(Namespace + ": invalid configuration")
	ErrCancelled       = errors.New(Namespace + ": operation cancelled")
	ErrShutdownTimeout = errors.New(Namespace + ": worker pool did not terminate in the specified time")
	ErrQueueClosed     = errors.New(Namespace + ": cannot put a value into a closed order queue")
	ErrPoolClosed      = errors.New(Namespace + ": cannot submit a task after worker pool shutdown")
	ErrResultLost      = errors.New(Namespace + ": worker pool terminated without a result")
	ErrTaskPanicked    = errors.New(Namespace + ": task execution panicked")
	ErrRead            = errors.New(Namespace + ": error while reading input")
	ErrWrite           = errors.New(Namespace + ": error while writing output")
)
