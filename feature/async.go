package feature

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/data"
	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
)

// AsyncConfig configures WithAsync.
type AsyncConfig struct {
	// ChunkSize overrides data.DefaultChunkSize when nonzero.
	ChunkSize int
	// PreloadAhead is the number of extra items requested beyond the
	// render range, in the direction of travel, once velocity crosses the
	// gate's PreloadThreshold.
	PreloadAhead int
	Gate         data.Gate
}

// DefaultAsyncConfig preloads 20 items ahead and gates loads with
// data.NewGate()'s default thresholds.
func DefaultAsyncConfig() AsyncConfig {
	return AsyncConfig{PreloadAhead: 20, Gate: data.NewGate()}
}

type asyncFeature[T render.Identifiable] struct {
	cfg     AsyncConfig
	adapter data.Adapter[T]
	mgr     *data.Manager[T]
}

// WithAsync replaces the Context's item source with a sparse, chunked
// data.Manager backed by adapter, and registers an AfterScroll hook that
// issues velocity-aware range loads: suppressed entirely above the gate's
// cancel threshold, widened by PreloadAhead items in the scroll direction
// between the preload and cancel thresholds, a plain range load otherwise.
// Emits "load:start"/"load:end"/"error" per spec.md §6.
func WithAsync[T render.Identifiable](adapter data.Adapter[T], cfg AsyncConfig) vlist.Feature[T] {
	if (cfg.Gate == data.Gate{}) {
		cfg.Gate = data.NewGate()
	}
	return &asyncFeature[T]{cfg: cfg, adapter: adapter}
}

func (f *asyncFeature[T]) Name() string       { return "async" }
func (f *asyncFeature[T]) Priority() int       { return 30 }
func (f *asyncFeature[T]) Conflicts() []string { return nil }

func (f *asyncFeature[T]) Setup(ctx *vlist.Context[T]) error {
	var opts []data.Option[T]
	if f.cfg.ChunkSize > 0 {
		opts = append(opts, data.WithChunkSize[T](f.cfg.ChunkSize))
	}
	f.mgr = data.NewManager[T](f.adapter, opts...)
	ctx.DataManager = f.mgr

	// ItemAtFunc is the path the renderer actually drives: one mgr.Item call
	// per index entering the render range, so LRU recency tracks what's
	// genuinely on screen instead of every logical index every frame.
	ctx.ItemAtFunc = func(index int) (T, bool) { return f.mgr.Item(index) }

	// Items stays available (O(total), rebuilt on demand rather than per
	// render) for features that need the full set as a []T, such as
	// WithFilter layered on top of WithAsync.
	ctx.Items = func() []T {
		total := f.mgr.Total()
		items := make([]T, total)
		for i := 0; i < total; i++ {
			item, loaded := f.mgr.Item(i)
			if loaded {
				items[i] = item
			}
		}
		return items
	}
	ctx.VirtualTotal = f.mgr.Total

	ctx.AfterScroll = append(ctx.AfterScroll, f.afterScroll)
	ctx.RawMsg = append(ctx.RawMsg, f.onRawMsg)
	ctx.InitCmds = append(ctx.InitCmds, f.mgr.Reload(data.DefaultInitialPageSize))
	return nil
}

func (f *asyncFeature[T]) afterScroll(ctx *vlist.Context[T]) tea.Cmd {
	velocity, reliable := ctx.Scroll.Velocity()
	if !reliable {
		velocity = 0
	}
	decision := f.cfg.Gate.Decide(velocity)

	offset := ctx.State.Render.Start
	limit := ctx.State.Render.Len()
	switch {
	case decision.Preload && ctx.Scroll.Direction() == scrollctl.DirectionForward:
		limit += f.cfg.PreloadAhead
	case decision.Preload && ctx.Scroll.Direction() == scrollctl.DirectionBackward:
		offset -= f.cfg.PreloadAhead
		if offset < 0 {
			offset = 0
		}
		limit += f.cfg.PreloadAhead
	}
	if limit <= 0 {
		return nil
	}

	cmds := f.mgr.EnsureRangeGated(offset, limit, decision)
	if len(cmds) == 0 {
		return nil
	}
	ctx.Emit("load:start", map[string]any{"offset": offset, "limit": limit})
	return tea.Batch(cmds...)
}

func (f *asyncFeature[T]) onRawMsg(ctx *vlist.Context[T], msg tea.Msg) tea.Cmd {
	changed, err, ok := f.mgr.HandleMsg(msg)
	if !ok {
		return nil
	}
	if err != nil {
		ctx.Emit("error", map[string]any{"error": err, "context": "async load"})
	}
	ctx.Emit("load:end", map[string]any{"total": f.mgr.Total()})
	if changed {
		ctx.SizeCache.Rebuild(f.mgr.Total())
		ctx.State.Total = f.mgr.Total()
		ctx.Scroll.SetMaxScroll(maxScroll(ctx))
		ctx.RequestRender()
	}
	return nil
}
