package data

import tea "github.com/charmbracelet/bubbletea"

// Velocity-gated scheduling: spec.md §4.10 says new adapter requests are
// simply suppressed above a cancelThreshold (in-flight requests still
// complete and merge), and §9's preloadThreshold widens how far ahead of
// the visible range the manager dispatches speculative loads. On top of
// that gate, a token-bucket rate limiter throttles how many concurrent
// fetches EnsureRange is allowed to kick off per second, so a fast drag
// across a huge list doesn't fire one goroutine per frame.

const (
	// DefaultPreloadThreshold: at or above this velocity (cells/ms), and
	// below the cancel threshold, the manager preloads beyond the render
	// range.
	DefaultPreloadThreshold = 2.0
	// DefaultCancelThreshold: at or above this velocity, new requests are
	// suppressed outright; only already-in-flight requests are allowed to
	// resolve.
	DefaultCancelThreshold = 8.0
)

// Gate decides, from the current scroll velocity, whether EnsureRange
// should dispatch new fetches at all, and whether it should widen its
// range to preload ahead of the visible window.
type Gate struct {
	PreloadThreshold float64
	CancelThreshold  float64
}

// NewGate returns a Gate with DefaultPreloadThreshold and
// DefaultCancelThreshold.
func NewGate() Gate {
	return Gate{PreloadThreshold: DefaultPreloadThreshold, CancelThreshold: DefaultCancelThreshold}
}

// Decision reports what EnsureRange should do at the current velocity.
type Decision struct {
	Suppress bool // true: fire no new requests this frame
	Preload  bool // true: widen the requested range by the caller's preload overscan
}

// Decide evaluates velocity (absolute value; direction is irrelevant here)
// against the gate's thresholds. Velocity readings that aren't yet
// reliable (tracker.IsTracking() == false) should be treated as 0 by the
// caller, which Decide maps to "neither suppress nor preload" — the normal
// range-load case, the common default right after scrolling starts or
// while idle.
func (g Gate) Decide(velocity float64) Decision {
	if velocity < 0 {
		velocity = -velocity
	}
	return Decision{
		Suppress: velocity >= g.CancelThreshold,
		Preload:  velocity >= g.PreloadThreshold && velocity < g.CancelThreshold,
	}
}

// EnsureRangeGated is EnsureRange gated by a velocity Decision and the
// manager's token-bucket limiter: when the decision suppresses loading, or
// the limiter has no tokens available, it returns no commands at all
// (in-flight fetches are left alone; nothing new is dispatched).
func (m *Manager[T]) EnsureRangeGated(offset, limit int, decision Decision) []tea.Cmd {
	if decision.Suppress {
		return nil
	}
	if !m.limiter.Allow() {
		return nil
	}
	return m.EnsureRange(offset, limit)
}
