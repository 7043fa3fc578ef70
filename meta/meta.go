// Package meta carries invocation metadata through context.Context.
//
// A handler invocation arrives with an opaque bag of metadata (request id, trace id,
// the function being invoked, who called it). Middlewares read and extend that bag,
// but never replace the context a caller handed in with an unrelated one.
package meta

import (
	"context"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID correlates logs and spans of a single invocation across services.
	TraceID ContextKey = "trace_id"

	// RequestID is the platform assigned identifier of the invocation.
	RequestID ContextKey = "request_id"

	// FunctionName is the name of the invoked function or operation.
	FunctionName ContextKey = "function_name"

	// FunctionVersion is the deployed version of the invoked function.
	FunctionVersion ContextKey = "function_version"

	// InvokedARN is the resource identifier the platform used to invoke the function.
	InvokedARN ContextKey = "invoked_arn"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// IPAddress contains the client's IP address.
	IPAddress ContextKey = "ip_address"

	// UserAgent contains the user agent string from the request.
	UserAgent ContextKey = "user_agent"
)

const (
	CodeMetaNotFound     = "META_NOT_FOUND"
	CodeMetaTypeMismatch = "META_TYPE_MISMATCH"
)

//nolint:gochecknoglobals // static list of known keys
var knownKeys = []ContextKey{
	TraceID,
	RequestID,
	FunctionName,
	FunctionVersion,
	InvokedARN,
	ServiceName,
	ServiceVersion,
	IPAddress,
	UserAgent,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns all known, non-empty metadata values of ctx.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range knownKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the value for key, or an empty string when absent.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// ShouldGetMeta returns the value for key. Unlike Find it fails when the key is
// missing or holds a non-string value.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New("meta key not found in context",
			errx.WithCode(CodeMetaNotFound),
			errx.WithDetails(errx.D{"key": string(key)}),
		)
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New("meta value type mismatch, expected string",
			errx.WithCode(CodeMetaTypeMismatch),
			errx.WithDetails(errx.D{"key": string(key)}),
		)
	}

	return v, nil
}
