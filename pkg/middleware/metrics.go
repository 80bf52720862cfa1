package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "wayfind",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for dispatch.
type metrics struct {
	dispatchesTotal  *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	handlerErrors    *prometheus.CounterVec
}

func newMetrics(c MetricsConfig) *metrics {
	factory := promauto.With(c.Registry)
	return &metrics{
		dispatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "dispatches_total",
			Help:        "Navigations dispatched, by route pattern and outcome.",
			ConstLabels: c.ConstLabels,
		}, []string{"route", "outcome"}),
		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Time spent in middleware chain and handler per dispatch.",
			ConstLabels: c.ConstLabels,
			Buckets:     c.Buckets,
		}, []string{"route"}),
		handlerErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "handler_errors_total",
			Help:        "Errors returned by route handlers.",
			ConstLabels: c.ConstLabels,
		}, []string{"route"}),
	}
}

// Metrics creates middleware that records dispatch metrics.
//
// Per dispatch it increments a counter labeled with the route pattern
// and the outcome ("matched" or "fallback"), observes the dispatch
// duration, and counts handler errors. Handler errors are recorded
// and re-returned, never swallowed.
//
// Example:
//
//	r.Use(middleware.Metrics(
//	    middleware.WithNamespace("myapp"),
//	))
func Metrics(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := newMetrics(config)

	return router.MiddlewareFunc(func(dc *router.DispatchContext, next func() error) error {
		start := time.Now()
		err := next()
		elapsed := time.Since(start).Seconds()

		route := dc.RoutePattern()
		outcome := "matched"
		if dc.Fallback {
			outcome = "fallback"
		}

		m.dispatchesTotal.WithLabelValues(route, outcome).Inc()
		m.dispatchDuration.WithLabelValues(route).Observe(elapsed)
		if err != nil {
			m.handlerErrors.WithLabelValues(route).Inc()
		}
		return err
	})
}
