// Package event provides a small named-event Emitter, grounded on the
// teacher's Observable.Subscribe/notify pattern but generalized from a
// single typed change stream to arbitrary named events with per-handler
// panic isolation.
package event

import (
	"fmt"

	"github.com/vlist-tui/vlist/internal/debug"
)

// Handler receives the payload emitted for one event name.
type Handler func(payload any)

// Emitter dispatches named events to zero or more registered handlers. A
// panic inside one handler is recovered and logged; it never prevents
// sibling handlers for the same event from running, mirroring spec.md's
// per-handler try/catch discipline.
type Emitter struct {
	handlers map[string][]Handler
}

// NewEmitter constructs an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]Handler)}
}

// On registers fn for name and returns an unsubscribe function. Unsubscribe
// nils the slot rather than reslicing, so an Emit iterating the slice
// concurrently with an Off call never observes a shifted index.
func (e *Emitter) On(name string, fn Handler) func() {
	e.handlers[name] = append(e.handlers[name], fn)
	idx := len(e.handlers[name]) - 1
	return func() {
		if hs := e.handlers[name]; idx < len(hs) {
			hs[idx] = nil
		}
	}
}

// Off removes every handler previously registered for name.
func (e *Emitter) Off(name string) {
	delete(e.handlers, name)
}

// Emit invokes every live handler registered for name with payload. Each
// call is isolated: a panic is recovered, logged via internal/debug, and
// does not stop subsequent handlers from running.
func (e *Emitter) Emit(name string, payload any) {
	for _, fn := range e.handlers[name] {
		if fn == nil {
			continue
		}
		e.safeCall(name, fn, payload)
	}
}

func (e *Emitter) safeCall(name string, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			debug.Logf("event: handler for %q panicked: %v", name, r)
		}
	}()
	fn(payload)
}

// Clear removes all handlers for all events, used on destroy.
func (e *Emitter) Clear() {
	e.handlers = make(map[string][]Handler)
}

// HandlerCount reports how many live handlers are registered for name,
// diagnostic only.
func (e *Emitter) HandlerCount(name string) int {
	n := 0
	for _, fn := range e.handlers[name] {
		if fn != nil {
			n++
		}
	}
	return n
}

// ErrorPayload is the payload shape emitted on the "error" event.
type ErrorPayload struct {
	Context string
	Err     error
}

func (p ErrorPayload) String() string {
	return fmt.Sprintf("%s: %v", p.Context, p.Err)
}
