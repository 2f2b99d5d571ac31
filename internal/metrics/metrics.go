package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for dashboard runs.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec // labels: outcome
	RunDuration    prometheus.Histogram
	LastPrediction prometheus.Gauge
	Observations   prometheus.Gauge
}

// New creates the metrics on their own registry so tests can build several.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocklens_runs_total",
			Help: "Dashboard runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocklens_run_duration_seconds",
			Help:    "Wall time of a full dashboard run.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		LastPrediction: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stocklens_last_prediction",
			Help: "Most recent predicted next closing price.",
		}),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stocklens_series_observations",
			Help: "Observations in the last loaded series.",
		}),
	}
	m.registry.MustRegister(m.RunsTotal, m.RunDuration, m.LastPrediction, m.Observations)
	return m
}

// ObserveRun records one run's outcome and duration.
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(d.Seconds())
}

// SetSeries records the size of the loaded series.
func (m *Metrics) SetSeries(n int) {
	if m == nil {
		return
	}
	m.Observations.Set(float64(n))
}

// SetPrediction records the latest predicted value.
func (m *Metrics) SetPrediction(v float64) {
	if m == nil {
		return
	}
	m.LastPrediction.Set(v)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
