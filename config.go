package factorial

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/easygolabs/FactorialCalculator/metrics"
)

// Defaults applied by New unless overridden by an Option.
const (
	DefaultPoolSize        = 1
	DefaultPermits         = 100
	DefaultTargetPerSecond = 100
	DefaultQueueCapacity   = 130000
	DefaultTasksBufferSize = 1024
	DefaultShutdownTimeout = 15 * time.Minute
)

// config holds Pipeline configuration.
type config struct {
	// PoolSize is the number of workers computing factorials concurrently.
	// Default: 1.
	PoolSize uint

	// Permits is the admission budget shared by all workers, independent of PoolSize.
	// Default: 100.
	Permits uint

	// TargetPerSecond is the aggregate number of computations per second the pool is paced to.
	// Default: 100.
	TargetPerSecond uint

	// QueueCapacity bounds the order queue; ingestion blocks while it is full.
	// Default: 130000.
	QueueCapacity uint

	// TasksBufferSize is the size of the worker pool intake buffer.
	// Default: 1024.
	TasksBufferSize uint

	// ShutdownTimeout bounds the wait for in-flight tasks once input is exhausted.
	// Default: 15 minutes.
	ShutdownTimeout time.Duration

	Logger  zerolog.Logger
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		PoolSize:        DefaultPoolSize,
		Permits:         DefaultPermits,
		TargetPerSecond: DefaultTargetPerSecond,
		QueueCapacity:   DefaultQueueCapacity,
		TasksBufferSize: DefaultTasksBufferSize,
		ShutdownTimeout: DefaultShutdownTimeout,
		Logger:          zerolog.Nop(),
		Metrics:         metrics.NewNoopProvider(),
	}
}

// validateConfig checks invariants options can not check on their own.
func validateConfig(cfg *config) error {
	if cfg.PoolSize*1000/cfg.TargetPerSecond == 0 {
		// pacing interval would round down to zero
		return errorc.With(
			ErrInvalidConfig,
			errorc.String("", "TargetPerSecond "+strconv.FormatUint(uint64(cfg.TargetPerSecond), 10)+
				" is too high for PoolSize "+strconv.FormatUint(uint64(cfg.PoolSize), 10)),
		)
	}
	return nil
}

// Option configures a Pipeline. Options return an error on invalid input.
type Option func(*config) error

func positive(name string, n uint) error {
	if n == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", name+" requires n > 0"))
	}
	return nil
}

// WithPoolSize sets the number of workers (must be > 0).
func WithPoolSize(n uint) Option {
	return func(cfg *config) error {
		if err := positive("WithPoolSize", n); err != nil {
			return err
		}
		cfg.PoolSize = n
		return nil
	}
}

// WithPermits sets the permit budget shared by all workers (must be > 0).
func WithPermits(n uint) Option {
	return func(cfg *config) error {
		if err := positive("WithPermits", n); err != nil {
			return err
		}
		cfg.Permits = n
		return nil
	}
}

// WithTargetPerSecond sets the aggregate computation rate (must be > 0).
func WithTargetPerSecond(n uint) Option {
	return func(cfg *config) error {
		if err := positive("WithTargetPerSecond", n); err != nil {
			return err
		}
		cfg.TargetPerSecond = n
		return nil
	}
}

// WithQueueCapacity sets the order queue capacity (must be > 0).
func WithQueueCapacity(n uint) Option {
	return func(cfg *config) error {
		if err := positive("WithQueueCapacity", n); err != nil {
			return err
		}
		cfg.QueueCapacity = n
		return nil
	}
}

// WithTasksBuffer sets the size of the worker pool intake buffer.
func WithTasksBuffer(size uint) Option {
	return func(cfg *config) error { cfg.TasksBufferSize = size; return nil }
}

// WithShutdownTimeout bounds the wait for in-flight tasks at the end of input (must be > 0).
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithShutdownTimeout requires d > 0"))
		}
		cfg.ShutdownTimeout = d
		return nil
	}
}

// WithLogger sets the logger used by all pipeline stages.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics sets the metrics provider. A nil provider discards metrics.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			p = metrics.NewNoopProvider()
		}
		cfg.Metrics = p
		return nil
	}
}
