package wrapper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/meta"
	"go.opentelemetry.io/otel/trace"
)

type MetaInjectWrapper[E handler.Event, R handler.Result] struct {
	serviceName    string
	serviceVersion string
	next           handler.Handler[E, R]
}

// NewMetaInject adds the trace id, service name and service version to the invocation
// metadata of ctx. A trace id already present in ctx is kept.
func NewMetaInject[E handler.Event, R handler.Result](serviceName, serviceVersion string) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &MetaInjectWrapper[E, R]{serviceName: serviceName, serviceVersion: serviceVersion, next: next}
	}
}

func (w *MetaInjectWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	traceID := meta.Find(ctx, meta.TraceID)
	if traceID == "" {
		traceID = startingTraceID(ctx)
	}

	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
		meta.TraceID:        traceID,
		meta.ServiceName:    w.serviceName,
		meta.ServiceVersion: w.serviceVersion,
	})

	return w.next.Handle(ctx, event)
}

// startingTraceID returns the id of the active span, or a manual "man-" prefixed one when
// tracing is not set up, so log lines of one invocation can still be correlated.
func startingTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}

	return fmt.Sprintf("man-%s", uuid.New().String())
}
