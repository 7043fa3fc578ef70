package forward

import (
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

const (
	CodeInvalidContentType = "INVALID_CONTENT_TYPE"
	CodeInvalidJSONBody    = "INVALID_JSON_BODY"
	CodeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	CodeInvalidPathParams  = "INVALID_PATH_PARAMS"
)

// decodeEvent fills event from the JSON body, the query string and the path params,
// in that order, so later sources win on overlapping fields.
func decodeEvent[E any](c *fiber.Ctx, event *E) error {
	if err := decodeBody(c, event); err != nil {
		return err
	}
	if err := decodeQuery(c, event); err != nil {
		return err
	}
	return decodePath(c, event)
}

func decodeBody[E any](c *fiber.Ctx, event *E) error {
	if !slices.Contains([]string{fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch}, c.Method()) {
		return nil
	}

	if len(c.Body()) == 0 {
		return nil
	}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return errx.New(
			"only application/json content type is supported for POST, PUT, PATCH methods",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidContentType),
		)
	}

	if err := c.BodyParser(event); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(CodeInvalidJSONBody))
	}

	return nil
}

func decodeQuery[E any](c *fiber.Ctx, event *E) error {
	if len(c.Queries()) == 0 {
		return nil
	}

	if err := c.QueryParser(event); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(CodeInvalidQueryParams))
	}

	return nil
}

func decodePath[E any](c *fiber.Ctx, event *E) error {
	if len(c.Route().Params) == 0 {
		return nil
	}

	if err := c.ParamsParser(event); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(CodeInvalidPathParams))
	}

	return nil
}
