// Package metrics records per-session mission metrics with Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
)

// =============================================================================
// Prometheus Metrics for the Mission Store
// =============================================================================

// Recorder observes a mission store and keeps its metrics on a private registry,
// so every session starts from zero.
type Recorder struct {
	registry *prometheus.Registry

	// created counts missions added during the session.
	// Labels: status (opaque mission status, "" reported as "unset")
	created *prometheus.CounterVec

	// missions tracks the size of the collection, fixtures included.
	missions prometheus.Gauge

	// overdue counts added missions whose due time had already passed at creation.
	overdue prometheus.Counter
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fleet",
			Subsystem: "missions",
			Name:      "created_total",
			Help:      "Total missions created during the session",
		}, []string{"status"}),
		missions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fleet",
			Subsystem: "missions",
			Name:      "current",
			Help:      "Missions currently held by the store",
		}),
		overdue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fleet",
			Subsystem: "missions",
			Name:      "created_overdue_total",
			Help:      "Missions created with a due time already in the past",
		}),
	}
	r.registry.MustRegister(r.created, r.missions, r.overdue)
	return r
}

// Attach sets the gauge from the current collection and subscribes to updates.
// The caller closes the returned subscription when the session ends.
func (r *Recorder) Attach(store primary.MissionStore) primary.Subscription {
	r.missions.Set(float64(store.Len()))
	return store.Subscribe(r.Observe)
}

// Observe records one store event.
func (r *Recorder) Observe(ev primary.MissionEvent) {
	status := ev.Mission.Status
	if status == "" {
		status = "unset"
	}
	r.created.WithLabelValues(status).Inc()
	r.missions.Set(float64(len(ev.Missions)))
	if coremission.IsOverdue(ev.Mission, ev.Mission.CreatedAt) {
		r.overdue.Inc()
	}
}

// Registry exposes the registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the session metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
