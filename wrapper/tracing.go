package wrapper

import (
	"context"
	"fmt"
	"strings"

	"github.com/rise-and-shine/handlerx/handler"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "handlerx/wrapper"

type TracingWrapper[E handler.Event, R handler.Result] struct {
	tracer   trace.Tracer
	spanName string
	next     handler.Handler[E, R]
}

// NewTracing starts an OpenTelemetry span around every invocation using the global
// tracer provider. An empty name falls back to the type name of the wrapped handler.
func NewTracing[E handler.Event, R handler.Result](name string) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		spanName := name
		if spanName == "" {
			spanName = spanNameOf(next)
		}

		return &TracingWrapper[E, R]{
			tracer:   otel.Tracer(tracerName),
			spanName: spanName,
			next:     next,
		}
	}
}

func (w *TracingWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	ctx, span := w.tracer.Start(ctx, w.spanName)
	defer span.End()

	result, err := w.next.Handle(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

// spanNameOf strips the package path and type arguments from the dynamic type of h.
func spanNameOf(h any) string {
	fullType := strings.TrimPrefix(fmt.Sprintf("%T", h), "*")

	if i := strings.IndexByte(fullType, '['); i >= 0 {
		fullType = fullType[:i]
	}

	if i := strings.LastIndexByte(fullType, '.'); i >= 0 {
		return fullType[i+1:]
	}

	return fullType
}
