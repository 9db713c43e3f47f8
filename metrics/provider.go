// Package metrics defines the instruments the factorial pipeline records into,
// together with no-op, in-memory and Prometheus-backed providers.
package metrics

// Provider hands out named instruments. Asking twice for the same name returns
// the same instrument, so a provider can be shared by consecutive runs.
// All implementations are safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter only grows: values read, tasks dispatched, results written.
type Counter interface {
	Add(n int64)
}

// UpDownCounter tracks a level, such as tasks currently held by a worker.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram observes durations or sizes.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig is what options can tell a provider about an instrument.
// Providers use the fields they understand and ignore the rest.
type InstrumentConfig struct {
	Description string
	Unit        string
	// Buckets are histogram upper bounds in increasing order; nil means the provider default.
	Buckets []float64
}

type InstrumentOption func(*InstrumentConfig)

// WithDescription is exported as Prometheus help text.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithBuckets sets the histogram bucket bounds. The slice is copied.
func WithBuckets(bounds ...float64) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Buckets = append([]float64(nil), bounds...)
	}
}

func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
