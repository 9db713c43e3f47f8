package factorial

import "github.com/easygolabs/FactorialCalculator/metrics"

// instruments are the metrics recorded during a run.
type instruments struct {
	ingested   metrics.Counter
	invalid    metrics.Counter
	dispatched metrics.Counter
	duplicates metrics.Counter
	computed   metrics.Counter
	emitted    metrics.Counter
	lost       metrics.Counter
	inflight   metrics.UpDownCounter

	computeSeconds metrics.Histogram
	paceSeconds    metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	seconds := metrics.WithUnit("seconds")
	return &instruments{
		ingested:   p.Counter("values_ingested", metrics.WithDescription("Input lines read.")),
		invalid:    p.Counter("values_invalid", metrics.WithDescription("Input lines replaced by the invalid value.")),
		dispatched: p.Counter("tasks_dispatched", metrics.WithDescription("Computation tasks submitted to the worker pool.")),
		duplicates: p.Counter("duplicates_skipped", metrics.WithDescription("Input values already claimed by an earlier task.")),
		computed:   p.Counter("factorials_computed", metrics.WithDescription("Factorials stored in the result cache.")),
		emitted:    p.Counter("results_emitted", metrics.WithDescription("Results written to the sink.")),
		lost:       p.Counter("results_lost", metrics.WithDescription("Queued values without a result after pool termination.")),
		inflight:   p.UpDownCounter("tasks_inflight", metrics.WithDescription("Tasks currently held by a worker.")),
		computeSeconds: p.Histogram("compute_seconds",
			metrics.WithDescription("Time spent multiplying."), seconds,
			// 10µs up to about 10s: small inputs are fast, huge ones take seconds
			metrics.WithBuckets(1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1, 10)),
		paceSeconds: p.Histogram("pace_sleep_seconds",
			metrics.WithDescription("Time spent sleeping to keep the target rate."), seconds),
	}
}
