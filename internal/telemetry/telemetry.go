// Package telemetry exports request traces over OTLP when
// OTEL_EXPORTER_OTLP_ENDPOINT is set. Without it every function here is a
// no-op, so the CLI never needs a collector.
package telemetry

import (
	"context"
	"os"

	"clientctl/pkg/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	tracerName = "clientctl"
	subsystem  = "Telemetry"
)

// Setup installs a batching tracer provider and returns its shutdown func.
func Setup(serviceName, version string) func(context.Context) error {
	endpoint := os.Getenv(EnvEndpoint)
	if endpoint == "" {
		return func(context.Context) error { return nil }
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if os.Getenv(EnvInsecure) == "true" {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(context.Background(), opts...)
	if err != nil {
		logging.Warn(subsystem, "OTLP exporter error: %v", err)
		return func(context.Context) error { return nil }
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		logging.Warn(subsystem, "OTLP resource error: %v", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logging.Debug(subsystem, "Exporting traces to %s", endpoint)

	return provider.Shutdown
}

// StartCommand opens a span for one CLI or console command. The returned
// func ends it, recording err when non-nil.
func StartCommand(ctx context.Context, name string, args ...string) (context.Context, func(err error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	if len(args) > 0 {
		span.SetAttributes(attribute.StringSlice("clientctl.args", args))
	}
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
