package handler

import "github.com/samber/lo"

// Identity returns a middleware that hands back the wrapped handler as is.
func Identity[E Event, R Result]() WrapFunc[E, R] {
	return func(next Handler[E, R]) Handler[E, R] {
		return next
	}
}

// Compose combines middlewares right to left into a single middleware.
//
// Compose(a, b, c)(h) is a(b(c(h))): a is the outermost wrapper, so an invocation enters
// a first and h last. Compose with no middlewares is the identity. Nil middlewares are skipped.
func Compose[E Event, R Result](mws ...WrapFunc[E, R]) WrapFunc[E, R] {
	return lo.Reduce(mws, func(outer WrapFunc[E, R], inner WrapFunc[E, R], _ int) WrapFunc[E, R] {
		if inner == nil {
			return outer
		}
		return func(next Handler[E, R]) Handler[E, R] {
			return outer(inner(next))
		}
	}, Identity[E, R]())
}

// Then composes two middlewares whose types chain: outer turns a C->D handler into A->B,
// inner turns E->F into C->D. Then(outer, inner)(h) is outer(inner(h)).
//
// Use it where the chain changes event or result types, which the variadic Compose
// cannot express.
func Then[A Event, B Result, C Event, D Result, E Event, F Result](
	outer Middleware[A, B, C, D],
	inner Middleware[C, D, E, F],
) Middleware[A, B, E, F] {
	return func(next Handler[E, F]) Handler[A, B] {
		return outer(inner(next))
	}
}

// Apply wraps h with mws, mws[0] being the outermost.
func Apply[E Event, R Result](h Handler[E, R], mws ...WrapFunc[E, R]) Handler[E, R] {
	return Compose(mws...)(h)
}
