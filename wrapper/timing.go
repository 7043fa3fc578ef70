package wrapper

import (
	"context"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/logger"
)

// TimingFunc receives the duration of a successful downstream call.
type TimingFunc func(ctx context.Context, duration time.Duration) error

type TimingWrapper[E handler.Event, R handler.Result] struct {
	logFn TimingFunc
	next  handler.Handler[E, R]
}

// NewTiming measures the downstream call and reports its duration to logFn.
//
// logFn runs only after next succeeded; a failing next short-circuits it. An error from
// logFn fails the invocation and the result is dropped.
func NewTiming[E handler.Event, R handler.Result](logFn TimingFunc) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &TimingWrapper[E, R]{logFn: logFn, next: next}
	}
}

func (w *TimingWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	start := time.Now()

	result, err := w.next.Handle(ctx, event)
	if err != nil {
		return result, err
	}

	if err = w.logFn(ctx, time.Since(start)); err != nil {
		var zero R
		return zero, err
	}

	return result, nil
}

// NewLogTiming reports durations as debug entries of log.
func NewLogTiming[E handler.Event, R handler.Result](log logger.Logger, name string) handler.WrapFunc[E, R] {
	log = log.Named("wrapper.timing").With("handler_name", name)

	return NewTiming[E, R](func(ctx context.Context, d time.Duration) error {
		log.WithContext(ctx).With("execution_time", d.String()).Debug("handler finished")
		return nil
	})
}

// NewMetricsTiming reports durations to a go-metrics timer registered under name.
// A nil registry means metrics.DefaultRegistry.
func NewMetricsTiming[E handler.Event, R handler.Result](
	registry metrics.Registry,
	name string,
) handler.WrapFunc[E, R] {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	timer := metrics.GetOrRegisterTimer(name, registry)

	return NewTiming[E, R](func(_ context.Context, d time.Duration) error {
		timer.Update(d)
		return nil
	})
}
