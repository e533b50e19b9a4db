// Package metrics exposes render counters and latencies for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qrframe"

// Result labels for RendersTotal.
const (
	ResultOK       = "ok"
	ResultNoLogo   = "no_logo"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Metrics groups the collectors registered for one server.
type Metrics struct {
	registry *prometheus.Registry

	renders      *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	logoFailures prometheus.Counter
	verifyFails  prometheus.Counter
}

// New registers the collectors on a fresh registry, so several servers
// (or tests) in one process do not collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Rendered QR images by result.",
		}, []string{"format", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one QR image.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"framed"}),
		logoFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logo_failures_total",
			Help:      "Logos that could not be fetched or decoded.",
		}),
		verifyFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_failures_total",
			Help:      "Rendered images that did not decode back to their payload.",
		}),
	}
	m.registry.MustRegister(
		m.renders,
		m.duration,
		m.logoFailures,
		m.verifyFails,
		prometheus.NewGoCollector(),
	)
	return m
}

// ObserveRender records one finished render.
func (m *Metrics) ObserveRender(format, result string, framed bool, elapsed time.Duration) {
	m.renders.WithLabelValues(format, result).Inc()
	label := "false"
	if framed {
		label = "true"
	}
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

func (m *Metrics) LogoFailed() { m.logoFailures.Inc() }

func (m *Metrics) VerifyFailed() { m.verifyFails.Inc() }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
