package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/logger"
)

const (
	CodePanicRecovered = "PANIC_RECOVERED"

	stackTraceSize = 4096 // 4KB
)

// RecoverFunc turns a downstream failure into an outcome of its own.
type RecoverFunc[E handler.Event, R handler.Result] func(ctx context.Context, err error, event E) (R, error)

type RecoveryWrapper[E handler.Event, R handler.Result] struct {
	recoveryFn RecoverFunc[E, R]
	next       handler.Handler[E, R]
}

// NewRecovery hands any error of the downstream call, together with the original event
// and context, to recoveryFn and returns whatever it returns. Successful results pass
// through untouched.
func NewRecovery[E handler.Event, R handler.Result](recoveryFn RecoverFunc[E, R]) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &RecoveryWrapper[E, R]{recoveryFn: recoveryFn, next: next}
	}
}

func (w *RecoveryWrapper[E, R]) Handle(ctx context.Context, event E) (R, error) {
	result, err := w.next.Handle(ctx, event)
	if err == nil {
		return result, nil
	}

	return w.recoveryFn(ctx, err, event)
}

type PanicRecoveryWrapper[E handler.Event, R handler.Result] struct {
	logger logger.Logger
	next   handler.Handler[E, R]
}

// NewPanicRecovery converts a panic anywhere below it into a PANIC_RECOVERED error
// carrying the stack trace and the panic value. Put it outside NewRecovery to let a
// RecoverFunc handle panics like any other failure.
func NewPanicRecovery[E handler.Event, R handler.Result](log logger.Logger, name string) handler.WrapFunc[E, R] {
	return func(next handler.Handler[E, R]) handler.Handler[E, R] {
		return &PanicRecoveryWrapper[E, R]{
			logger: log.Named("wrapper.recovery").With("handler_name", name),
			next:   next,
		}
	}
}

func (w *PanicRecoveryWrapper[E, R]) Handle(ctx context.Context, event E) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			w.logger.
				WithContext(ctx).
				With("stack_trace", string(stackTrace)).
				With("panic_value", fmt.Sprintf("%v", r)).
				Error("panic recovered in recovery wrapper")

			var zero R
			result = zero
			err = panicError(r, stackTrace)
		}
	}()

	return w.next.Handle(ctx, event)
}

func panicError(r any, stackTrace []byte) error {
	return errx.New("panic recovered in handler chain",
		errx.WithCode(CodePanicRecovered),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"stack_trace": string(stackTrace),
			"panic_value": fmt.Sprintf("%v", r),
		}),
	)
}

// handleWithRecovery calls next and reports a panic as an error instead of unwinding.
func handleWithRecovery[E handler.Event, R handler.Result](
	ctx context.Context,
	next handler.Handler[E, R],
	event E,
) (_ R, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]
			err = panicError(r, stackTrace)
		}
	}()

	return next.Handle(ctx, event)
}
