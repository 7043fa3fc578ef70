// Package forward exposes handlers over HTTP with Fiber.
//
// The forwarder plays the role of the invoking platform: it builds the invocation
// context from the request, decodes the event, calls the (usually composed) handler
// and writes its result or error as JSON.
package forward

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/meta"
)

const (
	// HeaderRequestID carries a caller supplied invocation id.
	HeaderRequestID = "X-Request-Id"
)

// ToFiber returns a fiber.Handler that invokes h for every request.
//
// E must be a struct type; it is decoded from the JSON body and the query and path
// parameters using the json, query and params tags. Validation is left to the middleware
// stack of h (see wrapper.NewSchemaValidation).
func ToFiber[E handler.Event, R handler.Result](h handler.Handler[E, R], functionName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
			meta.RequestID:    c.Get(HeaderRequestID),
			meta.FunctionName: functionName,
			meta.IPAddress:    c.IP(),
			meta.UserAgent:    c.Get(fiber.HeaderUserAgent),
		})

		var event E
		if err := decodeEvent(c, &event); err != nil {
			return writeError(c, ctx, err)
		}

		result, err := h.Handle(ctx, event)
		if err != nil {
			return writeError(c, ctx, err)
		}

		return errx.Wrap(c.JSON(result))
	}
}
