// Package wrapper provides ready-made middlewares for handlers.
//
// The basic building blocks mirror the cross-cutting concerns every handler ends up
// needing: timing, validation, request and response mapping, and recovery from
// failures. The remaining wrappers bind those blocks, or the same shape, to the
// logging, tracing, metrics and alerting stack of this module.
//
// Every constructor returns a handler.WrapFunc or handler.Middleware, so wrappers
// stack with handler.Compose:
//
//	h := handler.Compose(
//		wrapper.NewPanicRecovery[Req, Resp](log, "greet"),
//		wrapper.NewLogger[Req, Resp](log, "greet"),
//		wrapper.NewSchemaValidation[Req, Resp](),
//	)(greet)
package wrapper
