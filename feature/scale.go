package feature

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
)

const (
	dragSampleWindow  = 120 * time.Millisecond
	momentumDecay     = 0.92
	momentumStopSpeed = 0.5
	momentumStepMs    = 16 * time.Millisecond
)

// momentumTickMsg drives the inertial-decay loop, generation-guarded the
// same way scrollctl's idle/smooth-scroll ticks are.
type momentumTickMsg struct{ gen int }

type dragState struct {
	active     bool
	lastY      int
	lastTime   time.Time
	velocity   float64 // rows per millisecond, signed
	momentumGen int
}

type scaleFeature[T render.Identifiable] struct {
	ctx  *vlist.Context[T]
	drag dragState
}

// WithScale installs mouse-drag momentum; it registers no compression
// hook, since Instance recomputes compression on every range refresh.
// Terminal mice have no touch events, so a press+move+release sequence on tea.MouseMsg
// drives the same inertial-decay state machine spec.md describes for touch,
// with edge clamping supplied by the existing scroll controller clamp.
func WithScale[T render.Identifiable]() vlist.Feature[T] {
	return &scaleFeature[T]{}
}

func (f *scaleFeature[T]) Name() string       { return "scale" }
func (f *scaleFeature[T]) Priority() int       { return 20 }
func (f *scaleFeature[T]) Conflicts() []string { return []string{"page"} }

func (f *scaleFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.ctx = ctx
	ctx.RawMsg = append(ctx.RawMsg, f.onRawMsg)
	return nil
}

func (f *scaleFeature[T]) onRawMsg(ctx *vlist.Context[T], msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.MouseMsg:
		return f.onMouse(ctx, m)
	case momentumTickMsg:
		return f.stepMomentum(ctx, m)
	}
	return nil
}

func (f *scaleFeature[T]) onMouse(ctx *vlist.Context[T], m tea.MouseMsg) tea.Cmd {
	now := time.Now()
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return nil
		}
		f.drag = dragState{active: true, lastY: m.Y, lastTime: now}
	case tea.MouseActionMotion:
		if !f.drag.active {
			return nil
		}
		dy := f.drag.lastY - m.Y
		dt := now.Sub(f.drag.lastTime)
		if dt > 0 {
			f.drag.velocity = float64(dy) / float64(dt.Milliseconds()+1)
		}
		f.drag.lastY = m.Y
		f.drag.lastTime = now
		ctx.Scroll.HandleMsg(scrollctl.SetPositionMsg{Position: ctx.Scroll.Position() + dy})
		ctx.RequestRender()
	case tea.MouseActionRelease:
		if !f.drag.active {
			return nil
		}
		f.drag.active = false
		if now.Sub(f.drag.lastTime) > dragSampleWindow {
			f.drag.velocity = 0
		}
		return f.startMomentum()
	}
	return nil
}

func (f *scaleFeature[T]) startMomentum() tea.Cmd {
	if f.drag.velocity == 0 {
		return nil
	}
	f.drag.momentumGen++
	return scheduleMomentumTick(f.drag.momentumGen)
}

func scheduleMomentumTick(gen int) tea.Cmd {
	return tea.Tick(momentumStepMs, func(time.Time) tea.Msg {
		return momentumTickMsg{gen: gen}
	})
}

func (f *scaleFeature[T]) stepMomentum(ctx *vlist.Context[T], m momentumTickMsg) tea.Cmd {
	if m.gen != f.drag.momentumGen {
		return nil
	}
	f.drag.velocity *= momentumDecay
	if f.drag.velocity > -momentumStopSpeed && f.drag.velocity < momentumStopSpeed {
		return nil
	}
	delta := int(f.drag.velocity * float64(momentumStepMs.Milliseconds()))
	ctx.Scroll.HandleMsg(scrollctl.SetPositionMsg{Position: ctx.Scroll.Position() + delta})
	ctx.RequestRender()
	return scheduleMomentumTick(m.gen)
}
