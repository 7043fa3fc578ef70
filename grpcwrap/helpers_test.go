package grpcwrap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/handlerx/logger"
)

func nopLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{Disable: true})
	require.NoError(t, err)
	return l
}
