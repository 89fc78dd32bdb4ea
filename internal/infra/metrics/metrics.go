// Package metrics exposes prometheus counters and histograms for the routing engine.
package metrics

import (
	"time"

	"locator/internal/domain/entity"
	"locator/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// RoutingMetrics implements service.RoutingMetrics on prometheus collectors.
type RoutingMetrics struct {
	resolutionsTotal      *prometheus.CounterVec
	staleResultsTotal     prometheus.Counter
	resolutionSeconds     prometheus.Histogram
	catalogFetchesTotal   *prometheus.CounterVec
	permissionTransitions *prometheus.CounterVec
}

var _ service.RoutingMetrics = (*RoutingMetrics)(nil)

func NewRoutingMetrics(reg prometheus.Registerer) *RoutingMetrics {
	m := &RoutingMetrics{
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locator",
			Subsystem: "routing",
			Name:      "resolutions_total",
			Help:      "Route resolutions by outcome",
		}, []string{"outcome"}),
		staleResultsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locator",
			Subsystem: "routing",
			Name:      "stale_results_total",
			Help:      "Route results discarded because a newer request superseded them",
		}),
		resolutionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "locator",
			Subsystem: "routing",
			Name:      "resolution_seconds",
			Help:      "Latency of route resolutions",
			Buckets:   prometheus.DefBuckets,
		}),
		catalogFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locator",
			Name:      "catalog_fetches_total",
			Help:      "Clinic directory fetches by outcome",
		}, []string{"outcome"}),
		permissionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locator",
			Name:      "permission_transitions_total",
			Help:      "Location permission state transitions by target state",
		}, []string{"state"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.resolutionsTotal,
		m.staleResultsTotal,
		m.resolutionSeconds,
		m.catalogFetchesTotal,
		m.permissionTransitions,
	)

	return m
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func (m *RoutingMetrics) ObserveResolution(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(outcome).Inc()
	m.resolutionSeconds.Observe(elapsed.Seconds())
}

func (m *RoutingMetrics) IncStaleResult() {
	if m == nil {
		return
	}
	m.staleResultsTotal.Inc()
}

func (m *RoutingMetrics) IncCatalogFetch(outcome string) {
	if m == nil {
		return
	}
	m.catalogFetchesTotal.WithLabelValues(outcome).Inc()
}

func (m *RoutingMetrics) IncPermissionTransition(state entity.PermissionState) {
	if m == nil {
		return
	}
	m.permissionTransitions.WithLabelValues(state.String()).Inc()
}

// Module provides the registry, its Gatherer view and the routing metrics
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		func(reg *prometheus.Registry) service.RoutingMetrics { return NewRoutingMetrics(reg) },
	),
)
