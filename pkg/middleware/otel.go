package middleware

import (
	"time"

	"github.com/wayfind-dev/wayfind/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for wayfind applications.
const defaultTracerName = "wayfind"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeParams includes the dispatch parameters in spans.
	// Parameters may carry identifiers - disabled by default.
	IncludeParams bool

	// Filter determines which dispatches to trace.
	// Return true to trace, false to skip. If nil, all are traced.
	Filter func(dc *router.DispatchContext) bool

	// AttributeExtractor extracts custom attributes per dispatch.
	AttributeExtractor func(dc *router.DispatchContext) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables including dispatch parameters in spans.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithFilter sets a filter function for dispatches.
func WithFilter(filter func(dc *router.DispatchContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(dc *router.DispatchContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every dispatch.
//
// Each dispatch gets one span carrying the navigated path, the
// selected route pattern, the canonical path, and the outcome. Handler
// errors are recorded on the span and the span status set, then
// re-returned.
//
// The tracer comes from the global OpenTelemetry tracer provider;
// configure it in main() before dispatching begins.
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(dc *router.DispatchContext, next func() error) error {
		if config.Filter != nil && !config.Filter(dc) {
			return next()
		}

		outcome := "matched"
		if dc.Fallback {
			outcome = "fallback"
		}

		attrs := []attribute.KeyValue{
			attribute.String("wayfind.path", dc.Path),
			attribute.String("wayfind.route", dc.RoutePattern()),
			attribute.String("wayfind.canonical", dc.Canonical),
			attribute.String("wayfind.outcome", outcome),
		}
		if config.IncludeParams {
			attrs = append(attrs, attribute.StringSlice("wayfind.params", dc.Params))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(dc)...)
		}

		spanCtx, span := config.tracer.Start(
			dc.Context,
			"wayfind.dispatch",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		// Hand the span context to the handler.
		prev := dc.Context
		dc.Context = spanCtx
		err := next()
		dc.Context = prev

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}
