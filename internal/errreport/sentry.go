package errreport

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter sends errors and panics to Sentry, tagging each event with
// the Context's Kind/Detail and any caller-supplied tags/extras.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the underlying sentry.ClientOptions.
type SentryOption func(*sentry.ClientOptions)

// WithEnvironment sets the environment tag for every reported event.
func WithEnvironment(env string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// WithRelease sets the release tag for every reported event.
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// NewSentryReporter initializes the Sentry SDK with dsn and returns a
// Reporter backed by it. An empty dsn disables sending, useful in tests.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, o := range opts {
		o(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("errreport: sentry init: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) scope(ctx Context, fn func(*sentry.Scope)) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", ctx.Kind)
		scope.SetTag("detail", ctx.Detail)
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		for k, v := range ctx.Extra {
			scope.SetExtra(k, v)
		}
		fn(scope)
	})
}

func (r *SentryReporter) ReportError(err error, ctx Context) {
	r.scope(ctx, func(*sentry.Scope) {
		r.hub.CaptureException(err)
	})
}

func (r *SentryReporter) ReportPanic(recovered any, ctx Context) {
	r.scope(ctx, func(scope *sentry.Scope) {
		scope.SetExtra("panic_value", recovered)
		r.hub.CaptureException(fmt.Errorf("panic in %s (%s): %v", ctx.Kind, ctx.Detail, recovered))
	})
}

// Flush blocks until pending events are sent or timeout elapses.
func (r *SentryReporter) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
