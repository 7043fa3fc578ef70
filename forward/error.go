package forward

import (
	"context"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/handlerx/meta"
)

type errorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	TraceID   string      `json:"trace_id,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Error     errorSchema `json:"error"`
}

// writeError renders err with a status derived from its errx type. The response is
// written here, so the error is not handed back to Fiber's error handler.
func writeError(c *fiber.Ctx, ctx context.Context, err error) error {
	e := errx.AsErrorX(err)

	return errx.Wrap(c.Status(statusOf(e.Type())).JSON(errorResponse{
		TraceID:   meta.Find(ctx, meta.TraceID),
		RequestID: meta.Find(ctx, meta.RequestID),
		Error: errorSchema{
			Code:    e.Code(),
			Message: e.Error(),
			Fields:  e.Fields(),
		},
	}))
}

func statusOf(t errx.Type) int {
	switch t { //nolint:exhaustive // everything else is an internal error
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
