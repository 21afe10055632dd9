// Package errreport provides an optional error-reporting sink for the
// errors vlist catches and continues past: adapter failures (data.Manager)
// and template panics (render.Renderer). Event handler panics are recovered
// by event.Emitter and logged via internal/debug directly; they do not pass
// through a Reporter. The default Reporter logs via internal/debug; a
// Sentry-backed Reporter can be installed instead.
//
// Grounded on the teacher pack's bubblyui observability.SentryReporter: a
// small interface, context carried as tags/extras, install via a package
// level setter rather than threading a reporter through every call site.
package errreport

import (
	"sync"

	"github.com/vlist-tui/vlist/internal/debug"
)

// Context carries the situational detail attached to a reported error: what
// kind of failure it was and where it happened.
type Context struct {
	Kind   string // "adapter", "template", "handler"
	Detail string // event name, chunk index, item id — whatever identifies the site
	Tags   map[string]string
	Extra  map[string]any
}

// Reporter receives errors and recovered panics the engine catches rather
// than propagates.
type Reporter interface {
	ReportError(err error, ctx Context)
	ReportPanic(recovered any, ctx Context)
}

// noopReporter logs to internal/debug and nothing else; this is the
// zero-configuration default.
type noopReporter struct{}

func (noopReporter) ReportError(err error, ctx Context) {
	debug.Logf("%s error (%s): %v", ctx.Kind, ctx.Detail, err)
}

func (noopReporter) ReportPanic(recovered any, ctx Context) {
	debug.Logf("%s panic (%s): %v", ctx.Kind, ctx.Detail, recovered)
}

var (
	mu      sync.RWMutex
	current Reporter = noopReporter{}
)

// SetGlobalReporter installs r as the process-wide error sink. Pass nil to
// restore the debug-log-only default.
func SetGlobalReporter(r Reporter) {
	mu.Lock()
	defer mu.Unlock()
	if r == nil {
		r = noopReporter{}
	}
	current = r
}

// ReportError forwards err to the currently installed Reporter.
func ReportError(err error, ctx Context) {
	mu.RLock()
	r := current
	mu.RUnlock()
	r.ReportError(err, ctx)
}

// ReportPanic forwards a recovered panic value to the currently installed
// Reporter.
func ReportPanic(recovered any, ctx Context) {
	mu.RLock()
	r := current
	mu.RUnlock()
	r.ReportPanic(recovered, ctx)
}
