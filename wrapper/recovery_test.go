package wrapper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/wrapper"
)

func TestRecovery(t *testing.T) {
	errRecover := errors.New("recovery failed too")

	tests := []struct {
		name        string
		nextErr     error
		recoverErr  error
		wantResult  string
		wantErr     error
		wantRecover bool
	}{
		{name: "success passes through", wantResult: "ok"},
		{name: "error is recovered into a result", nextErr: errDownstream, wantResult: "fallback", wantRecover: true},
		{
			name:        "recovery may fail",
			nextErr:     errDownstream,
			recoverErr:  errRecover,
			wantErr:     errRecover,
			wantRecover: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := &spy[string, string]{result: "ok", err: tc.nextErr}
			if tc.nextErr != nil {
				next.result = ""
			}

			var gotErr error
			var gotEvent string
			var gotCtx context.Context

			h := wrapper.NewRecovery[string, string](func(ctx context.Context, err error, event string) (string, error) {
				gotCtx, gotErr, gotEvent = ctx, err, event
				if tc.recoverErr != nil {
					return "", tc.recoverErr
				}
				return "fallback", nil
			})(next)

			ctx := context.WithValue(t.Context(), ctxMarker{}, "invocation")
			res, err := h.Handle(ctx, "event")

			assert.Equal(t, tc.wantResult, res)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			if !tc.wantRecover {
				assert.NoError(t, gotErr)
				return
			}
			require.ErrorIs(t, gotErr, tc.nextErr)
			assert.Equal(t, "event", gotEvent)
			assert.Equal(t, "invocation", gotCtx.Value(ctxMarker{}))
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	log, logs := newObservedLogger()
	next := &spy[string, string]{panic: "kaboom"}

	res, err := wrapper.NewPanicRecovery[string, string](log, "greet")(next).Handle(t.Context(), "e")

	require.Error(t, err)
	assert.Empty(t, res)
	e := errx.AsErrorX(err)
	assert.Equal(t, wrapper.CodePanicRecovered, e.Code())
	assert.Equal(t, "kaboom", e.Details()["panic_value"])

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestPanicRecovery_FeedsRecovery(t *testing.T) {
	log, _ := newObservedLogger()
	next := &spy[string, string]{panic: errors.New("nil map write")}

	var recovered error
	h := handler.Compose(
		wrapper.NewRecovery[string, string](func(_ context.Context, err error, _ string) (string, error) {
			recovered = err
			return "safe", nil
		}),
		wrapper.NewPanicRecovery[string, string](log, "greet"),
	)(next)

	res, err := h.Handle(t.Context(), "e")

	require.NoError(t, err)
	assert.Equal(t, "safe", res)
	assert.True(t, errx.IsCodeIn(recovered, wrapper.CodePanicRecovered))
}
