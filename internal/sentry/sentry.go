package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures the global Sentry client. An empty DSN disables error
// reporting without failing startup.
func Init(dsn, env, serviceName, serviceVersion string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		ServerName:       serviceName,
		Release:          serviceVersion,
		AttachStacktrace: true,
		// Tracing is handled by OpenTelemetry
		TracesSampleRate: 0.0,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	return nil
}

// Flush blocks until buffered events are sent or the timeout passes.
// Call during graceful shutdown.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// Recover reports a panic to Sentry. Meant for deferred use at the top of
// a goroutine.
func Recover() {
	sentry.Recover()
}
