package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/logger"
	"github.com/rise-and-shine/handlerx/mask"
)

type LoggerWrapper[E handler.Event, R handler.Result] struct {
	logger logger.Logger
	next   handler.Handler[E, R]
}

// NewLogger logs one entry per invocation with its duration and masked event: info on success,
// error with the errx attributes on failure. A panic below is logged as an error too,
// and returned as one.
func NewLogger[E handler.Event, R handler.Result](log logger.Logger, name string) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &LoggerWrapper[E, R]{
			logger: log.Named("wrapper.logger").With("handler_name", name),
			next:   next,
		}
	}
}

func (w *LoggerWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	start := time.Now()

	result, err := handleWithRecovery(ctx, w.next, event)

	log := w.logger.
		WithContext(ctx).
		With("execution_time", time.Since(start).String()).
		With("event", mask.Event(event))

	if err != nil {
		e := errx.AsErrorX(err)
		log.With("error", map[string]any{
			"code":    e.Code(),
			"message": e.Error(),
			"type":    e.Type().String(),
			"trace":   e.Trace(),
			"fields":  e.Fields(),
			"details": e.Details(),
		}).Error("handler failed")
	} else {
		log.Info("handler succeeded")
	}

	return result, err
}
