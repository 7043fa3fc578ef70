// Package alert sends error alerts raised by failing handler invocations.
package alert

import (
	"context"

	"github.com/rise-and-shine/handlerx/logger"
	"github.com/rise-and-shine/handlerx/meta"
)

// Provider defines the interface for sending error alerts.
// Implementations can forward alerts to chat, paging or monitoring systems.
type Provider interface {
	// SendError sends an error alert.
	//
	// errCode identifies the error, msg is a human-readable message, operation names
	// the failing handler and details carries additional key-value context such as
	// invocation metadata.
	SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, errCode, msg, operation string, details map[string]string) error

// SendError calls f.
func (f ProviderFunc) SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error {
	return f(ctx, errCode, msg, operation, details)
}

type logProvider struct {
	log logger.Logger
}

// NewLogProvider returns a Provider that writes alerts as error log entries.
// It is the fallback when no external alerting system is configured.
func NewLogProvider(log logger.Logger) Provider {
	return &logProvider{log: log.Named("alert")}
}

func (p *logProvider) SendError(
	ctx context.Context,
	errCode, msg, operation string,
	details map[string]string,
) error {
	p.log.
		WithContext(ctx).
		With("error_code", errCode).
		With("operation", operation).
		With("service", meta.GetServiceName()).
		With("service_version", meta.GetServiceVersion()).
		With("details", details).
		Error(msg)
	return nil
}
