package feature

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestJumpTriggerAssignsLabelsToVisibleRows(t *testing.T) {
	c := baseConfig(100)
	inst, err := vlist.New(c).Use(WithJump[item](DefaultJumpConfig())).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	ctx := inst.Context()
	for _, fn := range ctx.Keydown {
		fn(ctx, keyRune('f'))
	}
	active, _ := inst.Call("jumpActive")
	if active.(bool) != true {
		t.Fatalf("expected jump mode active after trigger key")
	}
	targets, _ := inst.Call("jumpTargets")
	list := targets.([]jumpTarget)
	if len(list) == 0 {
		t.Fatalf("expected labels assigned to visible rows")
	}
	if list[0].label != "a" {
		t.Fatalf("first visible row should get the first home-row label, got %q", list[0].label)
	}
}

func TestJumpSelectEmitsAndExits(t *testing.T) {
	c := baseConfig(100)
	inst, err := vlist.New(c).Use(WithJump[item](DefaultJumpConfig())).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	ctx := inst.Context()
	var selectedIndex int
	var fired bool
	inst.On("jump:select", func(payload any) {
		fired = true
		m := payload.(map[string]any)
		selectedIndex = m["index"].(int)
	})

	for _, fn := range ctx.Keydown {
		fn(ctx, keyRune('f'))
	}
	for _, fn := range ctx.Keydown {
		fn(ctx, keyRune('a'))
	}
	if !fired {
		t.Fatalf("expected jump:select to fire for the first labeled row")
	}
	if selectedIndex != 0 {
		t.Fatalf("selectedIndex = %d, want 0", selectedIndex)
	}
	active, _ := inst.Call("jumpActive")
	if active.(bool) {
		t.Fatalf("expected jump mode to exit after a successful selection")
	}
}

func TestJumpEscapeCancels(t *testing.T) {
	c := baseConfig(100)
	inst, err := vlist.New(c).Use(WithJump[item](DefaultJumpConfig())).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	ctx := inst.Context()
	for _, fn := range ctx.Keydown {
		fn(ctx, keyRune('f'))
	}
	for _, fn := range ctx.Keydown {
		fn(ctx, tea.KeyMsg{Type: tea.KeyEsc})
	}
	active, _ := inst.Call("jumpActive")
	if active.(bool) {
		t.Fatalf("expected jump mode cancelled after esc")
	}
}
