// Package meta_test contains tests for the meta package.
package meta_test

import (
	"context"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/handlerx/meta"
)

// metaPair represents a key-value pair for testing metadata.
type metaPair struct {
	key   meta.ContextKey
	value string
}

// mp is a convenience function to create a metaPair.
func mp(key meta.ContextKey, value string) metaPair {
	return metaPair{key: key, value: value}
}

func testMeta(pairs ...metaPair) map[meta.ContextKey]string {
	result := make(map[meta.ContextKey]string)
	for _, pair := range pairs {
		result[pair.key] = pair.value
	}
	return result
}

func TestInjectMetaToContext(t *testing.T) {
	tests := []struct {
		name        string
		initialCtx  context.Context
		metaData    map[meta.ContextKey]string
		keyToVerify meta.ContextKey
		valueExpect string
		nilValue    bool
	}{
		{
			name:        "inject single value",
			initialCtx:  t.Context(),
			metaData:    testMeta(mp(meta.TraceID, "abc-123")),
			keyToVerify: meta.TraceID,
			valueExpect: "abc-123",
		},
		{
			name:       "inject multiple values",
			initialCtx: t.Context(),
			metaData: testMeta(
				mp(meta.TraceID, "trace-123"),
				mp(meta.RequestID, "req-456"),
				mp(meta.FunctionName, "greet"),
				mp(meta.ServiceName, "greeter"),
			),
			keyToVerify: meta.RequestID,
			valueExpect: "req-456",
		},
		{
			name:       "skip empty values",
			initialCtx: t.Context(),
			metaData: testMeta(
				mp(meta.TraceID, "trace-123"),
				mp(meta.RequestID, ""),
			),
			keyToVerify: meta.RequestID,
			nilValue:    true,
		},
		{
			name:        "overwrite existing value",
			initialCtx:  context.WithValue(t.Context(), meta.TraceID, "old-trace-id"),
			metaData:    testMeta(mp(meta.TraceID, "new-trace-id")),
			keyToVerify: meta.TraceID,
			valueExpect: "new-trace-id",
		},
		{
			name:        "empty map",
			initialCtx:  t.Context(),
			metaData:    testMeta(),
			keyToVerify: meta.TraceID,
			nilValue:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resultCtx := meta.InjectMetaToContext(tc.initialCtx, tc.metaData)

			if tc.nilValue {
				assert.Nil(t, resultCtx.Value(tc.keyToVerify))
			} else {
				assert.Equal(t, tc.valueExpect, resultCtx.Value(tc.keyToVerify))
			}
		})
	}
}

func TestInjectMetaToContext_DoesNotModifyParent(t *testing.T) {
	parent := context.WithValue(t.Context(), meta.TraceID, "parent")

	child := meta.InjectMetaToContext(parent, testMeta(mp(meta.TraceID, "child")))

	assert.Equal(t, "parent", parent.Value(meta.TraceID))
	assert.Equal(t, "child", child.Value(meta.TraceID))
}

func TestExtractMetaFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctxSetup func() context.Context
		expected map[meta.ContextKey]string
	}{
		{
			name: "extract multiple values",
			ctxSetup: func() context.Context {
				ctx := context.WithValue(t.Context(), meta.TraceID, "trace-123")
				ctx = context.WithValue(ctx, meta.FunctionName, "greet")
				return context.WithValue(ctx, meta.FunctionVersion, "$LATEST")
			},
			expected: testMeta(
				mp(meta.TraceID, "trace-123"),
				mp(meta.FunctionName, "greet"),
				mp(meta.FunctionVersion, "$LATEST"),
			),
		},
		{
			name: "ignore non-string values",
			ctxSetup: func() context.Context {
				ctx := context.WithValue(t.Context(), meta.TraceID, 12345)
				return context.WithValue(ctx, meta.ServiceName, "greeter")
			},
			expected: testMeta(mp(meta.ServiceName, "greeter")),
		},
		{
			name: "ignore empty string values",
			ctxSetup: func() context.Context {
				ctx := context.WithValue(t.Context(), meta.TraceID, "trace-123")
				return context.WithValue(ctx, meta.RequestID, "")
			},
			expected: testMeta(mp(meta.TraceID, "trace-123")),
		},
		{
			name:     "empty context",
			ctxSetup: t.Context,
			expected: testMeta(),
		},
		{
			name: "custom key is not extracted",
			ctxSetup: func() context.Context {
				ctx := context.WithValue(t.Context(), meta.ContextKey("custom_key"), "custom_value")
				return context.WithValue(ctx, meta.TraceID, "trace-123")
			},
			expected: testMeta(mp(meta.TraceID, "trace-123")),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, meta.ExtractMetaFromContext(tc.ctxSetup()))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	metadata := testMeta(
		mp(meta.TraceID, "trace-123"),
		mp(meta.RequestID, "req-1"),
		mp(meta.FunctionName, "greet"),
		mp(meta.FunctionVersion, "7"),
		mp(meta.InvokedARN, "arn:fn:greet:7"),
		mp(meta.ServiceName, "greeter"),
		mp(meta.ServiceVersion, "v1.0.0"),
		mp(meta.IPAddress, "10.0.0.1"),
		mp(meta.UserAgent, "curl/8"),
	)

	ctx := meta.InjectMetaToContext(t.Context(), metadata)

	assert.Equal(t, metadata, meta.ExtractMetaFromContext(ctx))
}

func TestFind(t *testing.T) {
	ctx := context.WithValue(t.Context(), meta.RequestID, "req-1")

	assert.Equal(t, "req-1", meta.Find(ctx, meta.RequestID))
	assert.Empty(t, meta.Find(ctx, meta.TraceID))
}

func TestShouldGetMeta(t *testing.T) {
	tests := []struct {
		name          string
		ctxSetup      func() context.Context
		key           meta.ContextKey
		expectedValue string
		expectedCode  string
	}{
		{
			name: "valid string value",
			ctxSetup: func() context.Context {
				return context.WithValue(t.Context(), meta.TraceID, "trace-xyz-123")
			},
			key:           meta.TraceID,
			expectedValue: "trace-xyz-123",
		},
		{
			name:         "key not found",
			ctxSetup:     t.Context,
			key:          meta.RequestID,
			expectedCode: meta.CodeMetaNotFound,
		},
		{
			name: "non-string value",
			ctxSetup: func() context.Context {
				return context.WithValue(t.Context(), meta.RequestID, 12345)
			},
			key:          meta.RequestID,
			expectedCode: meta.CodeMetaTypeMismatch,
		},
		{
			name: "empty string value",
			ctxSetup: func() context.Context {
				return context.WithValue(t.Context(), meta.FunctionName, "")
			},
			key: meta.FunctionName,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, err := meta.ShouldGetMeta(tc.ctxSetup(), tc.key)

			if tc.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, errx.IsCodeIn(err, tc.expectedCode))
				assert.Empty(t, value)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}
