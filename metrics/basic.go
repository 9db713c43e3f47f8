package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider keeps instruments in memory so their values can be read back.
// It is concurrency-safe and meant for tests and small tools.
type BasicProvider struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicCounter
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicCounter),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

// Counter returns the monotonic counter registered under name, creating it once.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return getOrCreate(p, p.counters, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

// UpDownCounter returns the up/down counter registered under name, creating it once.
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return getOrCreate(p, p.updowns, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

// Histogram returns the histogram registered under name, creating it once.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return getOrCreate(p, p.histograms, name, opts, func() *BasicHistogram { return &BasicHistogram{} })
}

func getOrCreate[T any](p *BasicProvider, m map[string]T, name string, opts []InstrumentOption, newFn func() T) T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := m[name]; ok {
		return v
	}
	p.meta[name] = applyOptions(opts)
	v := newFn()
	m[name] = v
	return v
}

// CounterValue returns the current value of the counter or up/down counter named name.
// Unknown names read as zero.
func (p *BasicProvider) CounterValue(name string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return c.Snapshot()
	}
	if u, ok := p.updowns[name]; ok {
		return u.Snapshot()
	}
	return 0
}

// HistogramSnapshot returns the state of the histogram named name.
func (p *BasicProvider) HistogramSnapshot(name string) HistSnapshot {
	p.mu.Lock()
	h, ok := p.histograms[name]
	p.mu.Unlock()
	if !ok {
		return HistSnapshot{}
	}
	return h.Snapshot()
}

// Description returns the description an instrument was created with.
func (p *BasicProvider) Description(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.meta[name].Description
}

// BasicCounter is a thread-safe counter, used for both counter kinds.
type BasicCounter struct {
	val atomic.Int64
}

// Add adds n to the counter.
func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicHistogram tracks count, sum, min and max, without buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds a measurement to the histogram.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 || v < h.min {
		h.min = v
	}
	if h.count == 0 || v > h.max {
		h.max = v
	}
	h.count++
	h.sum += v
}

// HistSnapshot is an immutable snapshot of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
