// Package metrics exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider owns the registry and the payroll collectors. A nil Provider
// is valid and records nothing, so the core stays testable without it.
type Provider struct {
	reg *prometheus.Registry

	rowsScanned  prometheus.Counter
	aggregations *prometheus.CounterVec
	duration     prometheus.Histogram
}

func Init() *Provider {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	p := &Provider{reg: reg}

	p.rowsScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payroll_rows_scanned_total",
		Help: "Joined compensation rows pulled from storage.",
	})
	p.aggregations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_aggregations_total",
		Help: "Department aggregation calls by outcome.",
	}, []string{"status"})
	p.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "payroll_aggregation_duration_seconds",
		Help:    "Wall time of one department aggregation.",
		Buckets: prometheus.DefBuckets,
	})

	reg.MustRegister(p.rowsScanned, p.aggregations, p.duration)
	return p
}

func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

func (p *Provider) ObserveRowScanned() {
	if p == nil {
		return
	}
	p.rowsScanned.Inc()
}

func (p *Provider) ObserveAggregation(status string, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.aggregations.WithLabelValues(status).Inc()
	p.duration.Observe(elapsed.Seconds())
}
