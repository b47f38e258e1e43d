// Package metrics exposes prometheus counters for conversions and history.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so several instances (tests, CLI runs)
// never collide on registration.
type Recorder struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	records     *prometheus.CounterVec
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a Recorder with go/process collectors and the extlink counters.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		// result: mapped | identity
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "extlink_conversions_total",
			Help: "URL conversions by outcome.",
		}, []string{"result"}),
		// result: inserted | duplicate
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "extlink_history_records_total",
			Help: "History record attempts by outcome.",
		}, []string{"result"}),
		// route is the chi pattern, never the raw path
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "extlink_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "extlink_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.conversions,
		r.records,
		r.requests,
		r.latency,
	)
	return r
}

// ObserveConversion counts one resolver conversion.
func (r *Recorder) ObserveConversion(mapped bool) {
	if mapped {
		r.conversions.WithLabelValues("mapped").Inc()
		return
	}
	r.conversions.WithLabelValues("identity").Inc()
}

// ObserveRecord counts one history Record call.
func (r *Recorder) ObserveRecord(inserted bool) {
	if inserted {
		r.records.WithLabelValues("inserted").Inc()
		return
	}
	r.records.WithLabelValues("duplicate").Inc()
}

// ObserveRequest counts one HTTP request and records its latency.
func (r *Recorder) ObserveRequest(method, route, status string, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, status).Inc()
	r.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
