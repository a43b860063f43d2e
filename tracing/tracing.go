package tracing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/viant/callpoint"

// Init configures OpenTelemetry with the stdout exporter. If outputFile is empty traces are
// written to os.Stdout. The first successful initialisation wins until Shutdown.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		w, closer = f, f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return err
	}
	installed, err := installProvider(serviceName, serviceVersion, exporter)
	if closer != nil {
		if !installed {
			_ = closer.Close()
		} else {
			mux.Lock()
			output = closer
			mux.Unlock()
		}
	}
	return err
}

// InitWithExporter configures OpenTelemetry using the supplied SpanExporter.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	_, err := installProvider(serviceName, serviceVersion, exporter)
	return err
}

var (
	mux      sync.Mutex
	provider *sdktrace.TracerProvider
	output   io.Closer
)

// installProvider reports whether exporter was installed; an already installed provider is kept.
func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (bool, error) {
	if exporter == nil {
		return false, nil
	}
	mux.Lock()
	defer mux.Unlock()
	if provider != nil {
		return false, nil
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return false, err
	}
	provider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return true, nil
}

// Shutdown flushes and stops the installed provider, if any, and closes its output file.
// A later Init installs a fresh provider.
func Shutdown(ctx context.Context) error {
	mux.Lock()
	current, closer := provider, output
	provider, output = nil, nil
	mux.Unlock()
	if current == nil {
		return nil
	}
	err := current.Shutdown(ctx)
	if closer != nil {
		err = errors.Join(err, closer.Close())
	}
	return err
}

// Span wraps an OpenTelemetry span
type Span struct {
	span trace.Span
}

// WithAttributes attaches all provided attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// SetStatus records an error status on the span, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// StartSpan starts a new internal child span.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentation).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// StartInvocation starts the span covering one call point invocation.
func StartInvocation(ctx context.Context, callPoint, action string) (context.Context, *Span) {
	ctx, span := StartSpan(ctx, "callpoint.invoke")
	span.WithAttributes(map[string]string{"callPoint": callPoint, "action": action})
	return ctx, span
}

// EndSpan finalises the span and records status depending on the provided error.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
