package wrapper

import (
	"context"
	"fmt"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/handlerx/alert"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/logger"
	"github.com/rise-and-shine/handlerx/meta"
)

const (
	alertTimeout = 3 * time.Second
)

type AlertWrapper[E handler.Event, R handler.Result] struct {
	logger        logger.Logger
	alertProvider alert.Provider
	name          string
	next          handler.Handler[E, R]
}

// NewAlert reports failed invocations to alertProvider in the background. The error is
// still returned to the caller; sending never delays or changes the outcome. A nil
// alertProvider falls back to alert.NewLogProvider, and a panicking one is logged.
func NewAlert[E handler.Event, R handler.Result](
	log logger.Logger,
	alertProvider alert.Provider,
	name string,
) handler.WrapFunc[E, R] {
	if alertProvider == nil {
		alertProvider = alert.NewLogProvider(log)
	}

	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &AlertWrapper[E, R]{
			logger:        log.Named("wrapper.alert"),
			alertProvider: alertProvider,
			name:          name,
			next:          next,
		}
	}
}

func (w *AlertWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	result, err := w.next.Handle(ctx, event)
	if err == nil {
		return result, nil
	}

	e := errx.AsErrorX(err)

	operation := fmt.Sprintf("handler: %s", w.name)
	details := make(map[string]string)
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		details[string(k)] = v
	}

	// detached from the invocation, which may be cancelled as soon as we return
	alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				w.logger.With("panic_value", fmt.Sprintf("%v", r)).Error("alert provider panicked")
			}
		}()

		sendErr := w.alertProvider.SendError(alertCtx, e.Code(), err.Error(), operation, details)
		if sendErr != nil {
			w.logger.With("alert_send_error", sendErr.Error()).Warn("failed to send error alert")
		}
	}()

	return result, err
}
