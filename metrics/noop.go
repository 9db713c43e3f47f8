package metrics

// NoopProvider discards all measurements. It is the pipeline default.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(string, ...InstrumentOption) Counter             { return noop{} }
func (NoopProvider) UpDownCounter(string, ...InstrumentOption) UpDownCounter { return noop{} }
func (NoopProvider) Histogram(string, ...InstrumentOption) Histogram         { return noop{} }

type noop struct{}

func (noop) Add(int64)      {}
func (noop) Record(float64) {}
