package vlist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist/compress"
	"github.com/vlist-tui/vlist/data"
	"github.com/vlist-tui/vlist/event"
	"github.com/vlist-tui/vlist/internal/metrics"
	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
	"github.com/vlist-tui/vlist/sizecache"
	"github.com/vlist-tui/vlist/viewport"
)

// State is the mutable, per-instance state a Builder assembles and
// features read/write during Setup and afterward.
type State struct {
	Total        int
	FocusedIndex int
	SelectedIDs  map[string]bool
	IsDestroyed  bool
	IsScrolling  bool

	Visible viewport.Range
	Render  viewport.Range

	Compression compress.State
}

// Feature is a pluggable unit of behavior a Builder assembles into a
// Context during Build. Priority controls setup order (ascending; default
// 50). Conflicts lists other feature Names that cannot coexist with this
// one; Builder.Build rejects the combination with an error.
type Feature[T render.Identifiable] interface {
	Name() string
	Priority() int
	Setup(ctx *Context[T]) error
	Conflicts() []string
}

// Destroyable is implemented by features that need cleanup when the
// instance is destroyed.
type Destroyable interface {
	Destroy()
}

// ClickMods carries the modifier keys held during a click, since terminal
// mouse reporting has no DOM MouseEvent to inspect after the fact.
type ClickMods struct {
	Shift bool
	Ctrl  bool
}

// MethodFunc is a feature-contributed public method, reachable from the
// built Instance's Call.
type MethodFunc func(args ...any) (any, error)

// Context is assembled once by Builder.Build and passed to every feature's
// Setup. Core refs (SizeCache, Emitter, Renderer, Scroll, Config) are
// conceptually owned by the Builder; features may still replace Renderer/
// Scroll/DataManager wholesale (e.g. withSections swaps Renderer, withAsync
// swaps DataManager) because Go has no access-control finer than the
// package boundary, but by convention only Setup does so, never runtime
// handlers.
type Context[T render.Identifiable] struct {
	Config Config[T]

	SizeCache sizecache.SizeCache
	Emitter   *event.Emitter
	Scroll    *scrollctl.Controller
	Renderer  *render.Renderer[T]

	// DataManager is non-nil only once a feature (withAsync) installs one;
	// Items() falls back to Config.Items when it's nil.
	DataManager *data.Manager[T]

	Items func() []T

	// ItemAtFunc, when set, answers ItemAt (and therefore every render)
	// directly by index instead of requiring a full []T materialized by
	// Items — the path withAsync installs so the renderer only ever
	// touches the handful of indices actually entering the render range,
	// rather than every logical index on every frame.
	ItemAtFunc func(index int) (T, bool)

	State State

	// Handler arrays, appended to only by features, iterated only by the
	// Builder/Instance driving the bubbletea Update loop.
	AfterScroll []func(ctx *Context[T]) tea.Cmd
	Click       []func(ctx *Context[T], index int, mods ClickMods)
	// Keydown receives the raw tea.KeyMsg so handlers can match against
	// bubbles/key bindings; return true to mark it handled and stop
	// propagation to the remaining handlers.
	Keydown      []func(ctx *Context[T], msg tea.KeyMsg) bool
	Resize       []func(ctx *Context[T], size int)
	ContentSize  []func(ctx *Context[T])
	DestroyHooks []func(ctx *Context[T])


	// RawMsg receives every tea.Msg HandleMsg is given, ahead of scroll
	// processing — for features needing a message shape none of the typed
	// handler arrays cover (e.g. withScale's mouse-drag momentum capture).
	// Any returned tea.Cmd is batched into HandleMsg's result.
	RawMsg []func(ctx *Context[T], msg tea.Msg) tea.Cmd

	// InitCmds collects tea.Cmd values a feature's Setup wants run as soon
	// as the Instance enters the host bubbletea program (e.g. withAsync's
	// initial page load), surfaced through Instance.Init().
	InitCmds []tea.Cmd

	Methods map[string]MethodFunc

	// SizeFuncOverride, when non-nil, supersedes Config.Item.Height/Width
	// for per-index size lookups built into a fresh SizeCache — set by
	// withSections to splice in header sizes at group boundaries.
	SizeFuncOverride SizeFunc

	// VirtualTotal, when non-nil, supersedes State.Total for the purpose
	// of size-cache/viewport math — set by withGrid to report row count
	// instead of item count.
	VirtualTotal func() int

	features []Feature[T]

	renderRequested bool
}

// RequestRender marks that state changed outside the scroll controller's
// own notion of "changed" (e.g. an async load resolving, or scale's direct
// drag-scroll writes to Scroll) and a render is owed before HandleMsg
// returns, even though the scroll position itself may not have moved.
func (c *Context[T]) RequestRender() { c.renderRequested = true }

// On registers an event handler and returns an unsubscribe function.
func (c *Context[T]) On(name string, fn event.Handler) func() {
	return c.Emitter.On(name, fn)
}

// Emit publishes an event to every registered handler.
func (c *Context[T]) Emit(name string, payload any) {
	c.Emitter.Emit(name, payload)
}

// ItemAt returns the item at index, falling back to Config.Items when no
// Items accessor has been installed.
func (c *Context[T]) ItemAt(index int) (T, bool) {
	if c.ItemAtFunc != nil {
		return c.ItemAtFunc(index)
	}
	items := c.itemsSlice()
	if index < 0 || index >= len(items) {
		var zero T
		return zero, false
	}
	return items[index], true
}

func (c *Context[T]) itemsSlice() []T {
	if c.Items != nil {
		return c.Items()
	}
	return c.Config.Items
}

// Metrics returns the instance's metrics sink (never nil once built).
func (c *Context[T]) Metrics() metrics.Metrics { return c.Config.Metrics }

// Total reports the logical item/row count, honoring VirtualTotal if a
// feature (withGrid) installed one.
func (c *Context[T]) Total() int {
	if c.VirtualTotal != nil {
		return c.VirtualTotal()
	}
	return c.State.Total
}
