// Package middleware wraps component handlers with observability and
// safety concerns.
//
// A Middleware decorates a render.Handler. Middleware composes with Chain
// and runs in order, first to last, around the wrapped handler:
//
//	h := middleware.Chain(registry,
//	    middleware.Recover(),
//	    middleware.Logging(logger),
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithNamespace("docs")),
//	    middleware.Timeout(2*time.Second),
//	)
//
// # OpenTelemetry
//
// The OpenTelemetry middleware starts a span for every component call,
// named after the tag. Spans carry the tag, the size of the rendered
// children and the id when present. Handler errors are recorded on the
// span and set its status to Error.
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure it in main() before rendering:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
// # Prometheus Metrics
//
// The Prometheus middleware records:
//   - mdx_components_total: components rendered by tag and status
//   - mdx_component_duration_seconds: handler duration by tag
//   - mdx_component_errors_total: handler errors by tag and error type
//
// Metrics register with prometheus.DefaultRegisterer unless WithRegistry
// is given. Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
package middleware
