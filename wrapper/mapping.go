package wrapper

import (
	"context"

	"github.com/rise-and-shine/handlerx/handler"
)

// MapFunc transforms a value on its way into or out of a handler.
type MapFunc[From, To any] func(ctx context.Context, in From) (To, error)

type RequestMappingWrapper[From handler.Event, To handler.Event, R handler.Result] struct {
	mapFn MapFunc[From, To]
	next  handler.Handler[To, R]
}

// NewRequestMapping maps the incoming event with mapFn and passes the mapped event to
// next. If mapFn fails, next is not called.
func NewRequestMapping[From handler.Event, To handler.Event, R handler.Result](
	mapFn MapFunc[From, To],
) handler.Middleware[From, R, To, R] {
	return func(next handler.Handler[To, R]) handler.Handler[From, R] {
		return &RequestMappingWrapper[From, To, R]{mapFn: mapFn, next: next}
	}
}

func (w *RequestMappingWrapper[From, To, R]) Handle(ctx context.Context, event From) (R, error) {
	mapped, err := w.mapFn(ctx, event)
	if err != nil {
		var zero R
		return zero, err
	}

	return w.next.Handle(ctx, mapped)
}

type ResponseMappingWrapper[E handler.Event, From handler.Result, To handler.Result] struct {
	mapFn MapFunc[From, To]
	next  handler.Handler[E, From]
}

// NewResponseMapping calls next and maps its result with mapFn. If next fails, mapFn is
// not called.
func NewResponseMapping[E handler.Event, From handler.Result, To handler.Result](
	mapFn MapFunc[From, To],
) handler.Middleware[E, To, E, From] {
	return func(next handler.Handler[E, From]) handler.Handler[E, To] {
		return &ResponseMappingWrapper[E, From, To]{mapFn: mapFn, next: next}
	}
}

func (w *ResponseMappingWrapper[E, From, To]) Handle(ctx context.Context, event E) (To, error) {
	response, err := w.next.Handle(ctx, event)
	if err != nil {
		var zero To
		return zero, err
	}

	return w.mapFn(ctx, response)
}
