// Package metrics exposes Prometheus instrumentation for greeting invocations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "greeting"

// Recorder counts invocations per host. A nil *Recorder is valid and records nothing.
type Recorder struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRegistry returns a registry preloaded with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New registers the invocation collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Greeting invocations by host and returned status code.",
		}, []string{"host", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Time spent serving a greeting invocation, including encoding.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"host"}),
	}
}

// Observe records one invocation served by host.
func (r *Recorder) Observe(host string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.invocations.WithLabelValues(host, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(host).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
