package recipebox

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Instrumentation scope names for the two entry points.
const (
	TracerNameCLI    = "recipebox-cli"
	TracerNameLambda = "recipebox-lambda"
)

// Version is reported as service.version unless OTEL_SERVICE_VERSION overrides it.
const Version = "0.1.0"

// OtelConfig names the service in exported telemetry. The exporters read
// OTEL_EXPORTER_OTLP_* themselves.
type OtelConfig struct {
	ServiceName    string `env:"OTEL_SERVICE_NAME,default=recipebox"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION"`
	DeployEnv      string `env:"OTEL_DEPLOY_ENV,default=development"`
}

type otelShutdown func(ctx context.Context) error

// InitOtel installs global trace and metric providers that export over OTLP
// gRPC and returns them with a func that flushes and stops both.
func InitOtel(ctx context.Context) (*trace.TracerProvider, *metric.MeterProvider, otelShutdown, error) {
	var cfg OtelConfig
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode otel config: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build otel resource: %w", err)
	}

	spans, err := otlptrace.New(ctx, otlptracegrpc.NewClient())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create span exporter: %w", err)
	}
	metrics, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	tp := trace.NewTracerProvider(trace.WithBatcher(spans), trace.WithResource(res))
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(metrics)), metric.WithResource(res))

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return tp, mp, shutdown, nil
}

func newResource(ctx context.Context, cfg OtelConfig) (*resource.Resource, error) {
	version := cfg.ServiceVersion
	if version == "" {
		version = Version
	}
	return resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", version),
			attribute.String("deployment.environment.name", cfg.DeployEnv),
		),
	)
}
