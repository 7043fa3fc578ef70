package wrapper_test

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/handlerx/handler"
	"github.com/rise-and-shine/handlerx/logger"
)

var errDownstream = errors.New("downstream failed")

type greetRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type greetResponse struct {
	Message string `json:"message"`
}

// spy counts calls and returns a fixed outcome.
type spy[E, R any] struct {
	calls  int
	events []E
	ctx    context.Context
	result R
	err    error
	panic  any
}

func (s *spy[E, R]) Handle(ctx context.Context, event E) (R, error) {
	s.calls++
	s.events = append(s.events, event)
	s.ctx = ctx
	if s.panic != nil {
		panic(s.panic)
	}
	return s.result, s.err
}

var _ handler.Handler[string, int] = (*spy[string, int])(nil)

func newObservedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}
