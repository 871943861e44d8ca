// Package telemetry installs the OpenTelemetry providers every package
// logger writes through.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// SetupLogging routes the records of all otelslog loggers to w, one JSON
// record per line. Loggers created before the call are redirected too. The
// returned func flushes and uninstalls the provider.
func SetupLogging(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdoutlog.New(stdoutlog.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
	)
	previous := global.GetLoggerProvider()
	global.SetLoggerProvider(provider)

	return func(ctx context.Context) error {
		global.SetLoggerProvider(previous)
		return provider.Shutdown(ctx)
	}, nil
}
