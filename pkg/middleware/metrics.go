package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/mdx/pkg/render"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "mdx").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for handler and document duration.
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
		Namespace: "mdx",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for component and document
// rendering. Create one per registry.
type Metrics struct {
	componentsTotal   *prometheus.CounterVec
	componentDuration *prometheus.HistogramVec
	componentErrors   *prometheus.CounterVec
	documentsTotal    *prometheus.CounterVec
	documentDuration  prometheus.Histogram
}

// NewMetrics creates and registers the collectors. It panics if they are
// already registered with the same registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		componentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "components_total",
			Help:        "Total number of components rendered",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "status"}),

		componentDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_duration_seconds",
			Help:        "Component handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"tag"}),

		componentErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_errors_total",
			Help:        "Total number of component handler errors",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "error_type"}),

		documentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "documents_total",
			Help:        "Total number of documents rendered by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		documentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "document_duration_seconds",
			Help:        "Whole-document render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// Middleware returns a Middleware that records component metrics.
func (m *Metrics) Middleware() Middleware {
	return func(next render.Handler) render.Handler {
		return render.HandlerFunc(func(ctx context.Context, name string, props render.ComponentProps) (string, error) {
			start := time.Now()
			out, err := next.Handle(ctx, name, props)
			m.componentDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.componentErrors.WithLabelValues(name, categorizeError(err)).Inc()
			}
			m.componentsTotal.WithLabelValues(name, status).Inc()
			return out, err
		})
	}
}

// ObserveDocument records one document render. outcome is "success" or
// the failing pipeline stage.
func (m *Metrics) ObserveDocument(outcome string, d time.Duration) {
	if outcome == "" {
		outcome = "success"
	}
	m.documentsTotal.WithLabelValues(outcome).Inc()
	m.documentDuration.Observe(d.Seconds())
}

// Prometheus creates middleware that records component metrics with a new
// set of collectors.
//
// Example:
//
//	h := middleware.Chain(registry,
//	    middleware.Prometheus(middleware.WithNamespace("docs")),
//	)
func Prometheus(opts ...MetricsOption) Middleware {
	return NewMetrics(opts...).Middleware()
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, new(*PanicError)):
		return "panic"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return "timeout"
	case strings.Contains(msg, "not found"), strings.Contains(msg, "unknown component"):
		return "not_found"
	case strings.Contains(msg, "template"):
		return "template"
	default:
		return "internal"
	}
}
