package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusProvider_Instruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider("factorial", reg)

	c := p.Counter("results_emitted", WithDescription("results written to the sink"))
	c.Add(2)
	c.Add(1)
	require.Equal(t, c, p.Counter("results_emitted"))

	g := p.UpDownCounter("tasks_inflight")
	g.Add(4)
	g.Add(-1)

	p.Histogram("compute_seconds").Record(0.25)

	require.Equal(t, 3.0, testutil.ToFloat64(p.counters["results_emitted"].c))
	require.Equal(t, 3.0, testutil.ToFloat64(p.gauges["tasks_inflight"].g))

	count, err := testutil.GatherAndCount(reg, "factorial_compute_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "factorial_results_emitted_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestPrometheusProvider_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	p1 := NewPrometheusProvider("factorial", reg)
	p2 := NewPrometheusProvider("factorial", reg)

	p1.Counter("values_ingested").Add(1)
	p2.Counter("values_ingested").Add(1)

	require.Equal(t, 2.0, testutil.ToFloat64(p2.counters["values_ingested"].c))
}

func TestPrometheusProvider_HistogramBuckets(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider("factorial", reg)

	p.Histogram("pace_sleep_seconds", WithDescription("pacing"), WithBuckets(1, 2)).Record(1.5)

	expected := `
# HELP factorial_pace_sleep_seconds pacing
# TYPE factorial_pace_sleep_seconds histogram
factorial_pace_sleep_seconds_bucket{le="1"} 0
factorial_pace_sleep_seconds_bucket{le="2"} 1
factorial_pace_sleep_seconds_bucket{le="+Inf"} 1
factorial_pace_sleep_seconds_sum 1.5
factorial_pace_sleep_seconds_count 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "factorial_pace_sleep_seconds"))
}

func TestWithBuckets_CopiesBounds(t *testing.T) {
	bounds := []float64{0.1, 1}
	cfg := applyOptions([]InstrumentOption{WithBuckets(bounds...), nil})
	bounds[0] = 5

	require.Equal(t, []float64{0.1, 1}, cfg.Buckets)
}
