package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
)

// LogAndReportSentryError logs the error with its stack and sends it to sentry, tagged with the given key/value pairs.
func LogAndReportSentryError(ctx context.Context, err error, tags ...string) {
	logger := LoggerFromContext(ctx)
	logger.ErrorContext(ctx, fmt.Sprintf("%+v", err))

	// context errors have been handled by whoever canceled the context
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		logger.DebugContext(ctx, fmt.Sprintf("Deadline exceeded or context canceled: %v", err))
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for i := 0; i+1 < len(tags); i += 2 {
			scope.SetTag(tags[i], tags[i+1])
		}
		hub.CaptureException(err)
	})
}
