package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider registers instruments as Prometheus collectors.
// Counters become prometheus.Counter (with a "_total" suffix), up/down counters
// become prometheus.Gauge and histograms use the default buckets.
type PrometheusProvider struct {
	namespace string
	reg       prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]promCounter
	gauges     map[string]promGauge
	histograms map[string]promHistogram
}

// NewPrometheusProvider returns a provider registering into reg under namespace.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusProvider(namespace string, reg prometheus.Registerer) *PrometheusProvider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusProvider{
		namespace:  namespace,
		reg:        reg,
		counters:   make(map[string]promCounter),
		gauges:     make(map[string]promGauge),
		histograms: make(map[string]promHistogram),
	}
}

func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return c
	}
	cfg := applyOptions(opts)
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: p.namespace,
		Name:      name + "_total",
		Help:      help(name, cfg),
	})
	pc := promCounter{c: register(p.reg, c)}
	p.counters[name] = pc
	return pc
}

func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.gauges[name]; ok {
		return g
	}
	cfg := applyOptions(opts)
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      help(name, cfg),
	})
	pg := promGauge{g: register(p.reg, g)}
	p.gauges[name] = pg
	return pg
}

func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.histograms[name]; ok {
		return h
	}
	cfg := applyOptions(opts)
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      help(name, cfg),
		Buckets:   buckets(cfg),
	})
	ph := promHistogram{h: register(p.reg, h)}
	p.histograms[name] = ph
	return ph
}

// register registers c, reusing an equal collector registered earlier by another provider.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func buckets(cfg InstrumentConfig) []float64 {
	if len(cfg.Buckets) == 0 {
		return prometheus.DefBuckets
	}
	return cfg.Buckets
}

func help(name string, cfg InstrumentConfig) string {
	if cfg.Description != "" {
		return cfg.Description
	}
	return name
}

type promCounter struct{ c prometheus.Counter }

func (c promCounter) Add(n int64) { c.c.Add(float64(n)) }

type promGauge struct{ g prometheus.Gauge }

func (g promGauge) Add(n int64) { g.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (h promHistogram) Record(v float64) { h.h.Observe(v) }
