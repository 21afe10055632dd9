// Package scrollctl unifies scroll-position tracking, idle detection, and
// velocity sampling behind one Controller, driven by tea.Msg dispatch in
// place of the DOM's scroll/wheel events and RAF/setTimeout timers.
package scrollctl

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects how the Controller interprets incoming messages and maps
// position to the underlying surface.
type Mode int

const (
	// Native tracks the position bubbletea's own viewport reports, akin to
	// listening passively to the browser's native scroll event.
	Native Mode = iota
	// Compressed disables delegating to any outer scroll surface and
	// tracks position purely from intercepted wheel deltas, the terminal
	// analogue of overflow:hidden plus manual wheel handling.
	Compressed
	// Window tracks the position of the component within the real
	// terminal's own scroll region rather than an internal viewport,
	// modeling "the document scrolls, not the div".
	Window
)

const defaultIdleTimeout = 150 * time.Millisecond

// tickMsg is the internal message driving idle detection, the tea.Tick
// substitute for setTimeout(idleTimeout).
type tickMsg struct{ gen int }

// Controller owns scroll position, direction, scrolling/idle state, and a
// velocity tracker, and exposes OnScroll/OnIdle callbacks mirroring
// spec.md's onScroll/onIdle contract.
type Controller struct {
	mode Mode

	position  int
	maxScroll int

	direction   Direction
	isScrolling bool
	idleTimeout time.Duration
	idleGen     int

	velocity *VelocityTracker
	now      func() time.Time

	wheelScrollEnabled bool
	lastVelocity       float64

	anim    *animation
	animGen int

	OnScroll func(position int, direction Direction, velocity float64)
	OnIdle   func()
}

// Direction mirrors viewport.Direction without importing it, so scrollctl
// has no dependency on viewport; Controller callers translate as needed.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// Option configures a Controller at construction.
type Option func(*Controller)

// WithIdleTimeout overrides the default 150ms idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Controller) { c.idleTimeout = d }
}

// WithVelocityTracker installs a pre-sized VelocityTracker (size 8 for
// scrollbar consumers, 5 for async consumers, per spec.md §4.6).
func WithVelocityTracker(v *VelocityTracker) Option {
	return func(c *Controller) { c.velocity = v }
}

// NewController builds a Controller in the given mode with maxScroll as the
// clamp ceiling for Position.
func NewController(mode Mode, maxScroll int, opts ...Option) *Controller {
	c := &Controller{
		mode:               mode,
		maxScroll:          maxScroll,
		idleTimeout:        defaultIdleTimeout,
		velocity:           NewVelocityTracker(8, 3),
		now:                time.Now,
		wheelScrollEnabled: true,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Position returns the current clamped scroll position.
func (c *Controller) Position() int { return c.position }

// IsScrolling reports whether the controller considers the list actively
// scrolling (an idle tick has not yet fired since the last update).
func (c *Controller) IsScrolling() bool { return c.isScrolling }

// Direction returns the most recently detected monotonic scroll direction.
func (c *Controller) Direction() Direction { return c.direction }

// SetWheelScrollEnabled toggles whether wheel messages move the position at
// all; when false, all wheel events are blocked outright.
func (c *Controller) SetWheelScrollEnabled(enabled bool) { c.wheelScrollEnabled = enabled }

// SetMaxScroll updates the clamp ceiling, e.g. after content size changes.
func (c *Controller) SetMaxScroll(max int) {
	if max < 0 {
		max = 0
	}
	c.maxScroll = max
	if c.position > max {
		c.position = max
	}
}

// AdjustPosition shifts the position by delta and re-clamps it, without
// touching direction, velocity, or scrolling/idle state. Used to correct
// for content growing or shrinking above the visible range (Mode B
// remeasurement) — a layout correction, not a user-driven scroll — so it
// must not perturb velocity sampling or fire OnScroll.
func (c *Controller) AdjustPosition(delta int) int {
	c.position = c.clamp(c.position + delta)
	return c.position
}

// SetMode switches scroll mode, converting the current position by the
// ratio of the old and new ceilings so the visual scroll fraction survives
// the switch.
func (c *Controller) SetMode(mode Mode, newMaxScroll int) {
	oldMax := c.maxScroll
	c.mode = mode
	if oldMax > 0 && newMaxScroll > 0 {
		ratio := float64(c.position) / float64(oldMax)
		c.position = int(ratio * float64(newMaxScroll))
	}
	c.SetMaxScroll(newMaxScroll)
}

func (c *Controller) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > c.maxScroll {
		return c.maxScroll
	}
	return pos
}

// WheelMsg is the terminal analogue of a DOM WheelEvent, carrying raw
// deltas along both axes.
type WheelMsg struct {
	DeltaX, DeltaY int
}

// SetPositionMsg requests an immediate (non-animated) jump to Position,
// e.g. from a track-click or thumb-drag on the scrollbar feature.
type SetPositionMsg struct {
	Position int
}

// HandleMsg processes one incoming message, updating position/velocity/
// scrolling state as needed. It returns whether the visible state changed
// (the caller should re-render) and a tea.Cmd to run (idle-tick
// scheduling), matching bubbletea's Update contract.
func (c *Controller) HandleMsg(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	switch m := msg.(type) {
	case WheelMsg:
		if !c.wheelScrollEnabled {
			return false, nil
		}
		delta := m.DeltaY
		if m.DeltaX != 0 {
			delta = m.DeltaX
		}
		return c.applyDelta(delta)
	case SetPositionMsg:
		return c.applyAbsolute(m.Position)
	case tickMsg:
		if m.gen != c.idleGen {
			return false, nil // superseded by a later reschedule; last-timer-wins
		}
		if c.isScrolling {
			c.isScrolling = false
			if c.OnIdle != nil {
				c.OnIdle()
			}
			return true, nil
		}
		return false, nil
	case smoothTickMsg:
		return c.stepAnimation(m)
	}
	return false, nil
}

func (c *Controller) stepAnimation(m smoothTickMsg) (bool, tea.Cmd) {
	if c.anim == nil || m.gen != c.anim.gen {
		return false, nil
	}
	a := c.anim
	elapsed := c.now().Sub(a.start)
	t := float64(elapsed) / float64(a.duration)
	if t >= 1 {
		c.applyAbsolute(a.targetPos)
		c.anim = nil
		return true, nil
	}
	eased := easeInOutQuad(t)
	pos := a.startPos + int(float64(a.targetPos-a.startPos)*eased)
	c.applyAbsolute(pos)
	gen := a.gen
	cmd := tea.Tick(smoothStepMillis, func(time.Time) tea.Msg {
		return smoothTickMsg{gen: gen}
	})
	return true, cmd
}

func (c *Controller) applyDelta(delta int) (bool, tea.Cmd) {
	return c.applyAbsolute(c.position + delta)
}

func (c *Controller) applyAbsolute(newPos int) (bool, tea.Cmd) {
	clamped := c.clamp(newPos)
	prev := c.position

	dir := DirectionNone
	switch {
	case clamped > prev:
		dir = DirectionForward
	case clamped < prev:
		dir = DirectionBackward
	}

	c.position = clamped
	c.direction = dir
	c.isScrolling = true

	vel := c.velocity.Update(clamped, c.now().UnixMilli())
	c.lastVelocity = vel

	if c.OnScroll != nil {
		c.OnScroll(clamped, dir, vel)
	}

	c.idleGen++
	gen := c.idleGen
	cmd := tea.Tick(c.idleTimeout, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})

	return clamped != prev || dir != DirectionNone, cmd
}

// Velocity returns the most recently computed velocity reading and whether
// the tracker considers it reliable yet.
func (c *Controller) Velocity() (v float64, reliable bool) {
	return c.lastVelocity, c.velocity.IsTracking()
}
