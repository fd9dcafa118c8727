package web

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Navigation outcomes recorded by Metrics.
const (
	OutcomeRender           = "render"
	OutcomeRedirect         = "redirect"
	OutcomeNotFound         = "not_found"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeError            = "error"
)

// unmatchedRoute labels navigations that resolved to no entry, keeping label
// cardinality bounded by the size of the route table.
const unmatchedRoute = "unmatched"

// Metrics records navigation counts and render latency per route pattern.
// A nil *Metrics records nothing.
type Metrics struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the navigation collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "household",
				Subsystem: "web",
				Name:      "navigations_total",
				Help:      "Total number of navigations by route pattern and outcome",
			},
			[]string{"route", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "household",
				Subsystem: "web",
				Name:      "navigation_duration_seconds",
				Help:      "Time spent resolving and rendering a navigation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	reg.MustRegister(m.navigations, m.duration)
	return m
}

// Navigations exposes the counter for the given labels.
func (m *Metrics) Navigations(route, outcome string) prometheus.Counter {
	return m.navigations.WithLabelValues(route, outcome)
}

func (m *Metrics) observe(route, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = unmatchedRoute
	}
	m.navigations.WithLabelValues(route, outcome).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}
