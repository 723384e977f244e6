package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/mdx/pkg/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for mdx rendering.
const defaultTracerName = "mdx"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "mdx").
	TracerName string

	// TracerProvider supplies the tracer.
	// If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// IncludeAttributes records every component attribute on the span.
	// Attribute values come from document content; disabled by default.
	IncludeAttributes bool

	// Filter determines which components to trace.
	// Return true to trace the component, false to skip.
	// If nil, all components are traced.
	Filter func(name string) bool

	// AttributeExtractor extracts custom span attributes from the props.
	AttributeExtractor func(name string, props render.ComponentProps) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeAttributes enables recording component attributes.
func WithIncludeAttributes(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeAttributes = include
	}
}

// WithComponentFilter sets a filter function for components.
func WithComponentFilter(filter func(name string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(name string, props render.ComponentProps) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every component call.
//
// The span is current in the context passed to the wrapped handler, so
// handlers that call out to other services propagate the trace:
//
//	func (h *Weather) Handle(ctx context.Context, name string, p render.ComponentProps) (string, error) {
//	    req, _ := http.NewRequestWithContext(ctx, "GET", h.url, nil)
//	    ...
//	}
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return func(next render.Handler) render.Handler {
		return render.HandlerFunc(func(ctx context.Context, name string, props render.ComponentProps) (string, error) {
			if config.Filter != nil && !config.Filter(name) {
				return next.Handle(ctx, name, props)
			}

			attrs := []attribute.KeyValue{
				attribute.String("mdx.component", name),
				attribute.Int("mdx.children_bytes", len(props.Children)),
			}
			if props.ID != nil {
				attrs = append(attrs, attribute.String("mdx.id", *props.ID))
			}
			if len(props.Classes) > 0 {
				attrs = append(attrs, attribute.StringSlice("mdx.classes", props.Classes))
			}
			if config.IncludeAttributes {
				for k, v := range props.Attributes {
					val := ""
					if v != nil {
						val = *v
					}
					attrs = append(attrs, attribute.String("mdx.attr."+k, val))
				}
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(name, props)...)
			}

			spanCtx, span := tracer.Start(ctx, formatSpanName(name),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			out, err := next.Handle(spanCtx, name, props)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return out, err
			}
			span.SetStatus(codes.Ok, "")
			span.SetAttributes(attribute.Int("mdx.output_bytes", len(out)))
			return out, nil
		})
	}
}

func formatSpanName(name string) string {
	return fmt.Sprintf("mdx.component %s", name)
}
