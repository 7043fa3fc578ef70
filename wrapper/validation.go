package wrapper

import (
	"context"

	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/val"
)

// ValidateFunc checks an event before it reaches the handler.
type ValidateFunc[E handler.Event] func(ctx context.Context, event E) error

type ValidationWrapper[E handler.Event, R handler.Result] struct {
	validateFn ValidateFunc[E]
	next       handler.Handler[E, R]
}

// NewValidation runs validateFn before the downstream call. A validation error is
// returned as is and next is never invoked.
func NewValidation[E handler.Event, R handler.Result](validateFn ValidateFunc[E]) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &ValidationWrapper[E, R]{validateFn: validateFn, next: next}
	}
}

func (w *ValidationWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	if err := w.validateFn(ctx, event); err != nil {
		var zero R
		return zero, err
	}

	return w.next.Handle(ctx, event)
}

// NewSchemaValidation validates struct events by their `validate` tags.
func NewSchemaValidation[E handler.Event, R handler.Result]() handler.WrapFunc[E, R] {
	return NewValidation[E, R](func(_ context.Context, event E) error {
		return val.ValidateSchema(event)
	})
}
