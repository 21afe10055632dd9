package scrollctl

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// smoothStepMillis is the animation frame interval for ScrollTo(smooth).
const smoothStepMillis = 16 * time.Millisecond

// animGen guards against a stale animation's ticks outstepping a newer
// ScrollTo call, the same last-timer-wins discipline as idle detection.
type smoothTickMsg struct {
	gen int
}

// animation tracks an in-flight smooth scroll.
type animation struct {
	startPos, targetPos int
	start               time.Time
	duration            time.Duration
	gen                 int
}

// ScrollTo moves the controller to pos. When smooth is false the jump is
// immediate. When smooth is true, it animates over duration using
// easeInOutQuad, returning a tea.Cmd that drives the animation frames; each
// frame sets the physical position (and therefore the velocity tracker's
// last sample) before the caller's next render, matching spec.md's
// requirement that lastScrollTop update before triggering render.
func (c *Controller) ScrollTo(pos int, smooth bool, duration time.Duration) tea.Cmd {
	target := c.clamp(pos)
	if !smooth {
		c.applyAbsolute(target)
		return nil
	}
	if duration <= 0 {
		duration = 250 * time.Millisecond
	}
	c.animGen++
	c.anim = &animation{
		startPos: c.position,
		targetPos: target,
		start:     c.now(),
		duration:  duration,
		gen:       c.animGen,
	}
	gen := c.animGen
	return tea.Tick(smoothStepMillis, func(time.Time) tea.Msg {
		return smoothTickMsg{gen: gen}
	})
}

// easeInOutQuad is the standard quadratic ease used by spec.md's smooth
// scroll animation.
func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// CancelScroll aborts any in-flight smooth-scroll animation in place.
func (c *Controller) CancelScroll() {
	c.anim = nil
	c.animGen++
}
