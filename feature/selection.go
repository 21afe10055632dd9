// Package feature implements vlist.Feature[T] plugins: selection, the
// custom scrollbar, async loading, sections, grid layout, scroll snapshots,
// window-scroll mode, inertial momentum, and two supplemented features
// (jump labels, fuzzy filtering).
package feature

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

// selectionKeys are the bindings onKeydown matches against, named and
// grouped the way the pack's TUIs declare their keymaps.
var selectionKeys = struct {
	Up, Down, ShiftUp, ShiftDown, Toggle, SelectAll, Clear key.Binding
}{
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	ShiftUp:   key.NewBinding(key.WithKeys("shift+up")),
	ShiftDown: key.NewBinding(key.WithKeys("shift+down")),
	Toggle:    key.NewBinding(key.WithKeys(" ")),
	SelectAll: key.NewBinding(key.WithKeys("ctrl+a")),
	Clear:     key.NewBinding(key.WithKeys("esc")),
}

// SelectionMode controls whether more than one item may be selected.
type SelectionMode int

const (
	SelectionSingle SelectionMode = iota
	SelectionMultiple
)

// SelectionConfig configures WithSelection.
type SelectionConfig struct {
	Mode SelectionMode
}

type selectionFeature[T render.Identifiable] struct {
	cfg    SelectionConfig
	ctx    *vlist.Context[T]
	anchor int // last index selected without extend, for Shift+arrow/click ranges
}

// WithSelection registers click and keyboard handlers that maintain
// ctx.State.SelectedIDs: a plain click selects only the clicked item;
// in multiple mode Shift+click extends a contiguous range from the anchor
// and Ctrl+click toggles membership without clearing the rest (in single
// mode both act as a plain click); arrow keys move focus and select only
// the newly focused item (Shift+arrow extends the range in multiple mode);
// Space toggles the focused item; Ctrl+A selects all (multiple mode only);
// and Escape clears the set.
// Emits "selection:change" after every mutation.
func WithSelection[T render.Identifiable](cfg SelectionConfig) vlist.Feature[T] {
	return &selectionFeature[T]{cfg: cfg}
}

func (f *selectionFeature[T]) Name() string     { return "selection" }
func (f *selectionFeature[T]) Priority() int     { return 50 }
func (f *selectionFeature[T]) Conflicts() []string { return nil }

func (f *selectionFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.ctx = ctx
	ctx.Click = append(ctx.Click, f.onClick)
	ctx.Keydown = append(ctx.Keydown, f.onKeydown)
	return nil
}

func (f *selectionFeature[T]) onClick(ctx *vlist.Context[T], index int, mods vlist.ClickMods) {
	switch {
	case mods.Ctrl && f.cfg.Mode == SelectionMultiple:
		f.toggle(ctx, index)
	case mods.Shift && f.cfg.Mode == SelectionMultiple:
		f.extendTo(ctx, index)
	default:
		f.selectOnly(ctx, index)
	}
	ctx.State.FocusedIndex = index
	f.emitChange(ctx)
}

func (f *selectionFeature[T]) onKeydown(ctx *vlist.Context[T], msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, selectionKeys.Up):
		f.moveFocus(ctx, -1, false)
	case key.Matches(msg, selectionKeys.Down):
		f.moveFocus(ctx, 1, false)
	case key.Matches(msg, selectionKeys.ShiftUp):
		f.moveFocus(ctx, -1, f.cfg.Mode == SelectionMultiple)
	case key.Matches(msg, selectionKeys.ShiftDown):
		f.moveFocus(ctx, 1, f.cfg.Mode == SelectionMultiple)
	case key.Matches(msg, selectionKeys.Toggle):
		if ctx.State.FocusedIndex >= 0 {
			f.toggle(ctx, ctx.State.FocusedIndex)
			f.emitChange(ctx)
		}
	case key.Matches(msg, selectionKeys.SelectAll):
		if f.cfg.Mode != SelectionMultiple {
			return false
		}
		f.selectAll(ctx)
		f.emitChange(ctx)
	case key.Matches(msg, selectionKeys.Clear):
		f.clear(ctx)
		f.emitChange(ctx)
	default:
		return false
	}
	return true
}

func (f *selectionFeature[T]) moveFocus(ctx *vlist.Context[T], delta int, extend bool) {
	total := ctx.Total()
	if total == 0 {
		return
	}
	next := ctx.State.FocusedIndex + delta
	if next < 0 {
		next = 0
	}
	if next >= total {
		next = total - 1
	}
	ctx.State.FocusedIndex = next
	if extend {
		f.extendTo(ctx, next)
	} else {
		f.selectOnly(ctx, next)
	}
}

func (f *selectionFeature[T]) selectOnly(ctx *vlist.Context[T], index int) {
	item, ok := ctx.ItemAt(index)
	if !ok {
		return
	}
	clearSelection(ctx)
	ctx.State.SelectedIDs[item.ItemID()] = true
	f.anchor = index
}

func (f *selectionFeature[T]) toggle(ctx *vlist.Context[T], index int) {
	item, ok := ctx.ItemAt(index)
	if !ok {
		return
	}
	id := item.ItemID()
	if ctx.State.SelectedIDs[id] {
		delete(ctx.State.SelectedIDs, id)
	} else {
		ctx.State.SelectedIDs[id] = true
	}
	f.anchor = index
}

func (f *selectionFeature[T]) extendTo(ctx *vlist.Context[T], index int) {
	lo, hi := f.anchor, index
	if lo > hi {
		lo, hi = hi, lo
	}
	clearSelection(ctx)
	for i := lo; i <= hi; i++ {
		if item, ok := ctx.ItemAt(i); ok {
			ctx.State.SelectedIDs[item.ItemID()] = true
		}
	}
}

func (f *selectionFeature[T]) selectAll(ctx *vlist.Context[T]) {
	clearSelection(ctx)
	total := ctx.Total()
	for i := 0; i < total; i++ {
		if item, ok := ctx.ItemAt(i); ok {
			ctx.State.SelectedIDs[item.ItemID()] = true
		}
	}
}

func (f *selectionFeature[T]) clear(ctx *vlist.Context[T]) {
	clearSelection(ctx)
}

func clearSelection[T render.Identifiable](ctx *vlist.Context[T]) {
	for id := range ctx.State.SelectedIDs {
		delete(ctx.State.SelectedIDs, id)
	}
}

func (f *selectionFeature[T]) emitChange(ctx *vlist.Context[T]) {
	ids := make([]string, 0, len(ctx.State.SelectedIDs))
	for id := range ctx.State.SelectedIDs {
		ids = append(ids, id)
	}
	ctx.Emit("selection:change", map[string]any{"selected": ids})
}
