package observability

import (
	"context"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jonathan/diagnostic-engine/internal/logging"
)

// TraceConfig selects where spans go.
type TraceConfig struct {
	ServiceName string
	// Out receives pretty-printed spans. Tracing stays disabled when nil.
	Out io.Writer
}

// InitTracing installs a global tracer provider that writes spans to
// cfg.Out and returns its shutdown function. With no writer it installs
// nothing and returns a no-op shutdown.
func InitTracing(ctx context.Context, log *logging.Logger, cfg TraceConfig) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if cfg.Out == nil {
		return noop, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "diag_agent"
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(cfg.Out), stdouttrace.WithPrettyPrint())
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
	if err != nil && log != nil {
		log.Warn("trace resource init failed (continuing)", "error", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	if log != nil {
		log.Debug("tracing initialized", "service", serviceName)
	}
	return tp.Shutdown, nil
}
