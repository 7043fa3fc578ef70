package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/handlerx/handler"
)

type TimeoutWrapper[E handler.Event, R handler.Result] struct {
	timeout time.Duration
	next    handler.Handler[E, R]
}

// NewTimeout gives the downstream chain a context that expires after timeout. Handlers
// that honour ctx stop there; the wrapper itself does not abandon a running call.
func NewTimeout[E handler.Event, R handler.Result](timeout time.Duration) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &TimeoutWrapper[E, R]{timeout: timeout, next: next}
	}
}

func (w *TimeoutWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.next.Handle(ctx, event)
}
