// Package handler defines request/response handlers and the middlewares that wrap them.
//
// A Handler processes one event within an invocation context and returns a result or
// an error. A Middleware takes a handler and returns a new one, possibly with different
// input and output types, layering behavior such as timing, validation, mapping or
// recovery around the inner handler. Compose and Then build stacks of middlewares.
package handler

import "context"

type (
	// Event represents the input type of a handler.
	Event any

	// Result represents the output type of a handler.
	Result any
)

// Handler processes a single event.
//
// The context carries the invocation metadata supplied by the platform (see package meta)
// together with cancellation and deadline. Middlewares pass it downstream unchanged unless
// they explicitly derive a child from it.
type Handler[E Event, R Result] interface {
	// Handle processes the event and returns a result or error.
	Handle(ctx context.Context, event E) (R, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc[E Event, R Result] func(ctx context.Context, event E) (R, error)

// Handle calls f(ctx, event).
func (f HandlerFunc[E, R]) Handle(ctx context.Context, event E) (R, error) {
	return f(ctx, event)
}

// Middleware wraps a handler of NE -> NR into a handler of E -> R.
type Middleware[E Event, R Result, NE Event, NR Result] func(next Handler[NE, NR]) Handler[E, R]

// WrapFunc is a middleware that keeps the event and result types of the wrapped handler.
type WrapFunc[E Event, R Result] = Middleware[E, R, E, R]
