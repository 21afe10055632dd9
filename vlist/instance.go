package vlist

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
	"github.com/vlist-tui/vlist/sizecache"
)

// wheelStep is the row/column delta applied per wheel notch, matching the
// typical terminal line-scroll step (no DOM deltaY magnitude is reported,
// just a discrete up/down/left/right event per notch).
const wheelStep = 3

// wheelDelta translates a tea.MouseMsg wheel event into the Controller's
// internal WheelMsg, per SPEC_FULL.md §0's "wheel events -> tea.MouseMsg
// (tea.MouseWheelUp/Down)" mapping. Non-wheel mouse events (press/release/
// motion) are left to dispatchClick/feature RawMsg handlers instead.
func wheelDelta(m tea.MouseMsg) (scrollctl.WheelMsg, bool) {
	switch m.Button {
	case tea.MouseButtonWheelUp:
		return scrollctl.WheelMsg{DeltaY: -wheelStep}, true
	case tea.MouseButtonWheelDown:
		return scrollctl.WheelMsg{DeltaY: wheelStep}, true
	case tea.MouseButtonWheelLeft:
		return scrollctl.WheelMsg{DeltaX: -wheelStep}, true
	case tea.MouseButtonWheelRight:
		return scrollctl.WheelMsg{DeltaX: wheelStep}, true
	}
	return scrollctl.WheelMsg{}, false
}

// Instance is the built, running list: the public facade spec.md §4.8
// returns from .build(). Always-available methods are plain Go methods;
// feature-contributed ones are reached through Call.
type Instance[T render.Identifiable] struct {
	ctx   *Context[T]
	frame render.Frame

	// contentSizePending is set when a Mode B remeasurement changes total
	// content size while the controller is actively scrolling; the
	// ContentSize hooks are held back until OnIdle flushes them, so a
	// content-size write doesn't land mid-gesture (see flushContentSize,
	// wired to Scroll.OnIdle in Builder.Build).
	contentSizePending bool
}

// Context exposes the underlying Context for feature-authored code that
// needs direct access (e.g. a bubbletea model embedding an Instance).
func (i *Instance[T]) Context() *Context[T] { return i.ctx }

// View returns the last composited frame's content, ready to place inside
// a bubbletea View().
func (i *Instance[T]) View() string { return i.frame.Content }

// Frame returns the last composited frame, including per-index positions.
func (i *Instance[T]) Frame() render.Frame { return i.frame }

// Total returns the current logical item/row count.
func (i *Instance[T]) Total() int { return i.ctx.Total() }

// Init returns any tea.Cmd a feature's Setup queued to run as soon as the
// Instance joins the host bubbletea program (e.g. withAsync's initial page
// load), batched into one command. Call once, typically from the host
// Model's own Init.
func (i *Instance[T]) Init() tea.Cmd {
	if len(i.ctx.InitCmds) == 0 {
		return nil
	}
	cmds := i.ctx.InitCmds
	i.ctx.InitCmds = nil
	return tea.Batch(cmds...)
}

func (i *Instance[T]) refreshRanges() {
	refreshCompression(i.ctx)
	refreshVisibleAndRenderRanges(i.ctx)
}

func (i *Instance[T]) atMaxScroll() bool {
	return i.ctx.Scroll.Position() >= maxScrollFor(i.ctx)
}

func (i *Instance[T]) render() {
	start := time.Now()
	atMax := i.atMaxScroll()
	i.frame = i.ctx.Renderer.Render(
		i.ctx.ItemAt,
		i.ctx.State.Render,
		i.ctx.State.SelectedIDs,
		i.ctx.State.FocusedIndex,
		i.ctx.SizeCache,
		i.ctx.State.Compression,
		i.ctx.Config.ContainerSize,
		atMax,
	)
	defer i.recordRenderMetrics(start)
	if len(i.frame.Measurements) > 0 {
		// Mode B: the cells just entered were sized from the estimate; fold
		// the real readings into the cache and correct the scroll position
		// for any growth/shrinkage above the fold, so content arriving
		// off-screen doesn't shift what the user is looking at.
		if measured, ok := i.ctx.SizeCache.(*sizecache.Measured); ok {
			result := render.ApplyMeasurements(measured, i.ctx.Total(), i.ctx.State.Visible.Start, i.frame.Measurements)
			if result.ScrollDelta != 0 {
				i.ctx.Scroll.AdjustPosition(result.ScrollDelta)
			}
			i.ctx.Scroll.SetMaxScroll(maxScrollFor(i.ctx))
			atMax = i.atMaxScroll()
			i.frame = i.ctx.Renderer.Render(
				i.ctx.ItemAt,
				i.ctx.State.Render,
				i.ctx.State.SelectedIDs,
				i.ctx.State.FocusedIndex,
				i.ctx.SizeCache,
				i.ctx.State.Compression,
				i.ctx.Config.ContainerSize,
				atMax,
			)
			if result.TotalSizeChanged {
				if i.ctx.Scroll.IsScrolling() {
					i.contentSizePending = true
				} else {
					i.flushContentSize()
				}
				return
			}
		}
	}
	i.flushContentSize()
}

// recordRenderMetrics reports one render() pass's duration, item count, and
// pool reuse counters to the configured metrics sink.
func (i *Instance[T]) recordRenderMetrics(start time.Time) {
	m := i.ctx.Metrics()
	m.RecordRender(time.Since(start), i.ctx.State.Render.Len())
	stats := i.ctx.Renderer.Stats()
	m.RecordPoolStats(stats.Created, stats.Reused, stats.PoolSize)
}

// flushContentSize runs the registered ContentSize hooks (e.g. the
// scrollbar feature's thumb-size recompute). Called directly after a
// normal render, or from Scroll.OnIdle once a deferred Mode B content-size
// change is safe to publish without perturbing an in-flight scroll gesture.
func (i *Instance[T]) flushContentSize() {
	for _, fn := range i.ctx.ContentSize {
		fn(i.ctx)
	}
}

// SetItems replaces the item slice wholesale, rebuilds the size cache, and
// re-renders.
func (i *Instance[T]) SetItems(items []T) {
	i.ctx.Config.Items = items
	i.ctx.State.Total = len(items)
	i.rebuildSizeCache()
	i.ctx.Renderer.Reset()
	i.refreshRanges()
	i.render()
}

// AppendItems adds items to the end, preserving the render/size state of
// existing indices.
func (i *Instance[T]) AppendItems(items []T) {
	i.ctx.Config.Items = append(i.ctx.Config.Items, items...)
	i.ctx.State.Total = len(i.ctx.Config.Items)
	i.rebuildSizeCache()
	i.refreshRanges()
	i.render()
}

// PrependItems adds items to the front. Because every existing index
// shifts, pooled cells are reset the same as SetItems.
func (i *Instance[T]) PrependItems(items []T) {
	i.ctx.Config.Items = append(append([]T{}, items...), i.ctx.Config.Items...)
	i.ctx.State.Total = len(i.ctx.Config.Items)
	i.rebuildSizeCache()
	i.ctx.Renderer.Reset()
	i.refreshRanges()
	i.render()
}

// UpdateItem replaces the item with the given id in place, a silent no-op
// if the id is unknown.
func (i *Instance[T]) UpdateItem(id string, updated T) {
	for idx, it := range i.ctx.Config.Items {
		if it.ItemID() == id {
			i.ctx.Config.Items[idx] = updated
			i.render()
			return
		}
	}
}

// RemoveItem removes the item with the given id, a silent no-op if the id
// is unknown. Triggers a size-cache rebuild since total shrinks.
func (i *Instance[T]) RemoveItem(id string) {
	items := i.ctx.Config.Items
	for idx, it := range items {
		if it.ItemID() == id {
			i.ctx.Config.Items = append(items[:idx], items[idx+1:]...)
			i.ctx.State.Total = len(i.ctx.Config.Items)
			i.rebuildSizeCache()
			i.ctx.Renderer.Reset()
			i.refreshRanges()
			i.render()
			return
		}
	}
}

func (i *Instance[T]) rebuildSizeCache() {
	total := i.ctx.Total()
	if i.ctx.SizeCache != nil {
		i.ctx.SizeCache.Rebuild(total)
	}
	i.ctx.Scroll.SetMaxScroll(maxScrollFor(i.ctx))
}

func maxScrollFor[T render.Identifiable](ctx *Context[T]) int {
	max := ctx.SizeCache.TotalSize() - ctx.Config.ContainerSize
	if max < 0 {
		max = 0
	}
	return max
}

// ScrollToIndex moves the scroll position so index is visible per align,
// animating if smooth is true. Returns the tea.Cmd to run (nil if smooth
// is false).
func (i *Instance[T]) ScrollToIndex(index int, align Align, smooth bool, duration time.Duration) tea.Cmd {
	total := i.ctx.Total()
	if total == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}

	var pos int
	if i.ctx.State.Compression.IsCompressed {
		pos = compressAlign(i.ctx, index, align)
	} else {
		pos = simpleAlign(i.ctx, index, align)
	}

	cmd := i.ctx.Scroll.ScrollTo(pos, smooth, duration)
	if !smooth {
		i.refreshRanges()
		i.render()
	}
	return cmd
}

func simpleAlign[T render.Identifiable](ctx *Context[T], index int, align Align) int {
	offset := ctx.SizeCache.Offset(index)
	size := ctx.SizeCache.Size(index)
	switch align {
	case AlignEnd:
		pos := offset + size - ctx.Config.ContainerSize
		if pos < 0 {
			pos = 0
		}
		return pos
	case AlignCenter:
		pos := offset + size/2 - ctx.Config.ContainerSize/2
		if pos < 0 {
			pos = 0
		}
		return pos
	default:
		return offset
	}
}

func compressAlign[T render.Identifiable](ctx *Context[T], index int, align Align) int {
	alignStr := "start"
	switch align {
	case AlignEnd:
		alignStr = "end"
	case AlignCenter:
		alignStr = "center"
	}
	return scrollToIndexCompressed(ctx, index, alignStr)
}

// GetScrollPosition returns the current physical scroll position.
func (i *Instance[T]) GetScrollPosition() int { return i.ctx.Scroll.Position() }

// CancelScroll aborts any in-flight smooth-scroll animation.
func (i *Instance[T]) CancelScroll() { i.ctx.Scroll.CancelScroll() }

// On registers an event handler.
func (i *Instance[T]) On(name string, fn func(payload any)) func() { return i.ctx.On(name, fn) }

// Off removes all handlers for an event name.
func (i *Instance[T]) Off(name string) { i.ctx.Emitter.Off(name) }

// Call invokes a feature-contributed method by name.
func (i *Instance[T]) Call(name string, args ...any) (any, error) {
	fn, ok := i.ctx.Methods[name]
	if !ok {
		return nil, fmt.Errorf("vlist: no such method %q", name)
	}
	return fn(args...)
}

// Destroy marks the instance destroyed and runs destroy hooks in reverse
// registration order, then clears the emitter.
func (i *Instance[T]) Destroy() {
	i.ctx.State.IsDestroyed = true
	for idx := len(i.ctx.DestroyHooks) - 1; idx >= 0; idx-- {
		i.ctx.DestroyHooks[idx](i.ctx)
	}
	i.ctx.Emitter.Clear()
}

// HandleMsg routes a tea.Msg through the scroll controller and registered
// handlers, re-rendering if anything changed. It returns the resulting
// tea.Cmd (batched across the controller and any feature-installed async
// loads).
func (i *Instance[T]) HandleMsg(msg tea.Msg) tea.Cmd {
	if i.ctx.State.IsDestroyed {
		return nil
	}

	var cmds []tea.Cmd
	for _, fn := range i.ctx.RawMsg {
		if c := fn(i.ctx, msg); c != nil {
			cmds = append(cmds, c)
		}
	}

	scrollMsg := msg
	switch m := msg.(type) {
	case tea.KeyMsg:
		i.dispatchKeydown(m)
	case tea.MouseMsg:
		if wheel, ok := wheelDelta(m); ok {
			scrollMsg = wheel
		} else {
			i.dispatchClick(m)
		}
	case tea.WindowSizeMsg:
		i.dispatchResize(m)
	}

	changed, cmd := i.ctx.Scroll.HandleMsg(scrollMsg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	// A RawMsg handler may have altered state a scroll-position diff can't
	// see (an async load resolving, scale's direct Scroll writes bypassing
	// scrollMsg entirely) — render for that too, but only fire scroll
	// events/AfterScroll when the position actually changed.
	rerender := changed || i.ctx.renderRequested
	i.ctx.renderRequested = false

	if rerender {
		i.refreshRanges()
		i.render()
	}
	if changed {
		if velocity, ok := i.ctx.Scroll.Velocity(); ok {
			i.ctx.Metrics().RecordScroll(velocity)
		}
		i.ctx.Emit("scroll", map[string]any{
			"scrollPosition": i.ctx.Scroll.Position(),
			"direction":      i.ctx.Scroll.Direction(),
		})
		for _, fn := range i.ctx.AfterScroll {
			if c := fn(i.ctx); c != nil {
				cmds = append(cmds, c)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (i *Instance[T]) dispatchKeydown(msg tea.KeyMsg) {
	for _, fn := range i.ctx.Keydown {
		if fn(i.ctx, msg) {
			i.refreshRanges()
			i.render()
			return
		}
	}
}

func (i *Instance[T]) dispatchClick(m tea.MouseMsg) {
	if len(i.ctx.Click) == 0 {
		return
	}
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return
	}
	idx := i.indexAtRow(m.Y)
	if idx < 0 {
		return
	}
	item, ok := i.ctx.ItemAt(idx)
	if ok {
		i.ctx.Emit("item:click", map[string]any{"item": item, "index": idx})
	}
	mods := ClickMods{Shift: m.Shift, Ctrl: m.Ctrl}
	for _, fn := range i.ctx.Click {
		fn(i.ctx, idx, mods)
	}
	i.render()
}

// indexAtRow maps a mouse row (relative to the viewport's top edge) to an
// item index, accounting for the current scroll position and compression.
func (i *Instance[T]) indexAtRow(row int) int {
	total := i.ctx.Total()
	if total == 0 || i.ctx.SizeCache == nil {
		return -1
	}
	pos := i.ctx.Scroll.Position()
	offset := pos + row
	if i.ctx.State.Compression.IsCompressed {
		ratio := i.ctx.State.Compression.Ratio
		if ratio <= 0 {
			ratio = 1
		}
		offset = int(float64(offset) / ratio)
	}
	if offset < 0 || offset >= i.ctx.SizeCache.TotalSize() {
		return -1
	}
	return i.ctx.SizeCache.IndexAtOffset(offset)
}

func (i *Instance[T]) dispatchResize(m tea.WindowSizeMsg) {
	size := m.Height
	if i.ctx.Config.Orientation == Horizontal {
		size = m.Width
	}
	i.ctx.Config.ContainerSize = size
	for _, fn := range i.ctx.Resize {
		fn(i.ctx, size)
	}
	// A Resize hook (withGrid recomputing columns from width) may have
	// changed what VirtualTotal/SizeFuncOverride report, so rebuild the
	// cache against the new index space before re-deriving max scroll.
	if i.ctx.SizeFuncOverride != nil {
		i.ctx.SizeCache.Rebuild(i.ctx.Total())
	}
	i.ctx.Scroll.SetMaxScroll(maxScrollFor(i.ctx))
	i.refreshRanges()
	i.render()
}
