// Package metrics exposes Prometheus counters for region operations and clicks.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wordtree"

// Recorder collects wordtree metrics on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	clicks      *prometheus.CounterVec
	stale       prometheus.Counter
	generations prometheus.Counter
}

// New creates a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Lookup, add and update operations by outcome.",
		}, []string{"op", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Backend round-trip time per operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_total",
			Help:      "Clicks dispatched to the display region by target class.",
		}, []string{"class"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer operation was issued.",
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_renders_total",
			Help:      "Times the display region was replaced.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.operations,
		r.durations,
		r.clicks,
		r.stale,
		r.generations,
	)
	return r
}

// Operation records one finished operation.
func (r *Recorder) Operation(op, outcome string, d time.Duration) {
	r.operations.WithLabelValues(op, outcome).Inc()
	r.durations.WithLabelValues(op).Observe(d.Seconds())
}

// Click records a click on an element of the class.
func (r *Recorder) Click(class string) {
	r.clicks.WithLabelValues(class).Inc()
}

// Stale records a discarded response.
func (r *Recorder) Stale() { r.stale.Inc() }

// Rendered records a region replacement.
func (r *Recorder) Rendered() { r.generations.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
