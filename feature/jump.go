package feature

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

// jumpLabelChars mirrors the teacher's home-row-first label alphabet: the
// characters easiest to reach land on the first (most common) targets.
var jumpLabelChars = []rune{
	'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l',
	'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
	'z', 'x', 'c', 'v', 'b', 'n', 'm',
}

// generateJumpLabels produces n unique labels: single characters while
// n fits the alphabet, two-character combinations beyond that.
func generateJumpLabels(n int) []string {
	if n <= 0 {
		return nil
	}
	labels := make([]string, 0, n)
	if n <= len(jumpLabelChars) {
		for i := 0; i < n; i++ {
			labels = append(labels, string(jumpLabelChars[i]))
		}
		return labels
	}
	for _, first := range jumpLabelChars {
		for _, second := range jumpLabelChars {
			if len(labels) >= n {
				return labels
			}
			labels = append(labels, string(first)+string(second))
		}
	}
	return labels
}

// JumpConfig configures WithJump.
type JumpConfig struct {
	// TriggerKey activates jump mode; defaults to "f" when empty.
	TriggerKey string
}

// DefaultJumpConfig matches the teacher's single-key activation style.
func DefaultJumpConfig() JumpConfig {
	return JumpConfig{TriggerKey: "f"}
}

type jumpTarget struct {
	index int
	label string
}

type jumpFeature[T render.Identifiable] struct {
	cfg     JumpConfig
	active  bool
	input   string
	targets []jumpTarget
}

// WithJump overlays single/double-character labels on the currently
// visible rows, letting the user type a label to jump straight to that
// row instead of scrolling. TriggerKey enters jump mode; Escape or an
// unmatched keystroke cancels it.
func WithJump[T render.Identifiable](cfg JumpConfig) vlist.Feature[T] {
	if cfg.TriggerKey == "" {
		cfg.TriggerKey = "f"
	}
	return &jumpFeature[T]{cfg: cfg}
}

func (f *jumpFeature[T]) Name() string       { return "jump" }
func (f *jumpFeature[T]) Priority() int       { return 70 }
func (f *jumpFeature[T]) Conflicts() []string { return nil }

func (f *jumpFeature[T]) Setup(ctx *vlist.Context[T]) error {
	ctx.Keydown = append(ctx.Keydown, f.onKeydown)
	ctx.Methods["jumpTargets"] = func(args ...any) (any, error) {
		return append([]jumpTarget{}, f.targets...), nil
	}
	ctx.Methods["jumpActive"] = func(args ...any) (any, error) {
		return f.active, nil
	}
	return nil
}

func (f *jumpFeature[T]) onKeydown(ctx *vlist.Context[T], msg tea.KeyMsg) bool {
	key := msg.String()
	if !f.active {
		if key == f.cfg.TriggerKey {
			f.enter(ctx)
			return true
		}
		return false
	}

	switch key {
	case "esc":
		f.exit()
		return true
	}

	candidate := f.input + key
	if target := f.findTarget(candidate); target != nil {
		ctx.Emit("jump:select", map[string]any{"index": target.index})
		f.exit()
		return true
	}
	if f.hasPartialMatch(candidate) {
		f.input = candidate
		return true
	}
	// No label starts with this input; cancel rather than eat the
	// keystroke silently.
	f.exit()
	return false
}

func (f *jumpFeature[T]) enter(ctx *vlist.Context[T]) {
	f.active = true
	f.input = ""
	start, end := ctx.State.Visible.Start, ctx.State.Visible.End
	labels := generateJumpLabels(end - start)
	f.targets = f.targets[:0]
	for i := start; i < end; i++ {
		f.targets = append(f.targets, jumpTarget{index: i, label: labels[i-start]})
	}
	ctx.Emit("jump:enter", map[string]any{"count": len(f.targets)})
}

func (f *jumpFeature[T]) exit() {
	f.active = false
	f.input = ""
	f.targets = f.targets[:0]
}

func (f *jumpFeature[T]) findTarget(label string) *jumpTarget {
	for i := range f.targets {
		if f.targets[i].label == label {
			return &f.targets[i]
		}
	}
	return nil
}

func (f *jumpFeature[T]) hasPartialMatch(prefix string) bool {
	for _, t := range f.targets {
		if len(t.label) > len(prefix) && t.label[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
