// Package tracing selects the graphql-go tracer and installs the matching
// tracing backend.
package tracing

import (
	"context"
	"fmt"
	"io"

	graphql "github.com/graph-gophers/graphql-go"
	gqlopentracing "github.com/graph-gophers/graphql-go/trace/opentracing"
	gqlotel "github.com/graph-gophers/graphql-go/trace/otel"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/graph-gophers/gamereviews/internal/config"
)

// Shutdown flushes and stops the tracing backend.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Setup installs the backend named by cfg.Tracer and returns the schema
// options that make graphql-go emit spans to it.
func Setup(ctx context.Context, cfg config.Config, log logrus.FieldLogger) ([]graphql.SchemaOpt, Shutdown, error) {
	switch cfg.Tracer {
	case config.TracerNone, "":
		return nil, noop, nil
	case config.TracerOpenTracing:
		closer, err := setupJaeger(cfg.ServiceName, log)
		if err != nil {
			return nil, noop, err
		}
		shutdown := func(context.Context) error { return closer.Close() }
		return []graphql.SchemaOpt{graphql.Tracer(gqlopentracing.Tracer{})}, shutdown, nil
	case config.TracerOTel:
		tp, err := setupOTel(ctx, cfg.ServiceName, cfg.OTelEndpoint)
		if err != nil {
			return nil, noop, err
		}
		return []graphql.SchemaOpt{graphql.Tracer(gqlotel.DefaultTracer())}, tp.Shutdown, nil
	default:
		return nil, noop, fmt.Errorf("unknown tracer %q", cfg.Tracer)
	}
}

// setupJaeger configures a Jaeger tracer from the JAEGER_* environment
// variables and registers it as the global OpenTracing tracer.
func setupJaeger(serviceName string, log logrus.FieldLogger) (io.Closer, error) {
	jcfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("jaeger config: %w", err)
	}
	if jcfg.ServiceName == "" {
		jcfg.ServiceName = serviceName
	}
	tracer, closer, err := jcfg.NewTracer(jaegercfg.Logger(jaegerLogger{log}))
	if err != nil {
		return nil, fmt.Errorf("jaeger tracer: %w", err)
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}

// jaegerLogger adapts logrus to the jaeger client logger.
type jaegerLogger struct {
	log logrus.FieldLogger
}

func (l jaegerLogger) Error(msg string) {
	l.log.WithField("component", "jaeger").Error(msg)
}

func (l jaegerLogger) Infof(msg string, args ...interface{}) {
	l.log.WithField("component", "jaeger").Infof(msg, args...)
}

func setupOTel(ctx context.Context, serviceName, endpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp, nil
}
