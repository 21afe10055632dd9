package vlist

import (
	"fmt"
	"sort"

	"github.com/vlist-tui/vlist/compress"
	"github.com/vlist-tui/vlist/event"
	"github.com/vlist-tui/vlist/internal/metrics"
	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
	"github.com/vlist-tui/vlist/sizecache"
	"github.com/vlist-tui/vlist/viewport"
)

// Builder assembles a Config and a set of Features into an Instance.
// New(config).Use(feature).Build() mirrors spec.md's vlist(config)
// .use(feature).build() chain.
type Builder[T render.Identifiable] struct {
	config   Config[T]
	features []Feature[T]
}

// New starts a Builder from config.
func New[T render.Identifiable](config Config[T]) *Builder[T] {
	return &Builder[T]{config: config}
}

// Use registers a feature to run during Build, in addition to any already
// registered. Returns the Builder for chaining.
func (b *Builder[T]) Use(f Feature[T]) *Builder[T] {
	b.features = append(b.features, f)
	return b
}

// Build validates the configuration, constructs the core engine, runs each
// feature's Setup in ascending-priority order, performs the initial
// render, and returns the resulting Instance. It returns an error rather
// than panicking on invalid configuration — the idiomatic Go analogue of
// spec.md's "fail loudly at .build()".
func (b *Builder[T]) Build() (*Instance[T], error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if b.config.Metrics == nil {
		b.config.Metrics = metrics.GetGlobalMetrics()
	}

	ctx := &Context[T]{
		Config:  b.config,
		Emitter: event.NewEmitter(),
		Methods: make(map[string]MethodFunc),
		State: State{
			Total:        len(b.config.Items),
			FocusedIndex: -1,
			SelectedIDs:  make(map[string]bool),
		},
		Items:    func() []T { return b.config.Items },
		features: append([]Feature[T]{}, b.features...),
	}

	ctx.SizeCache = b.buildSizeCache()

	tracker := scrollctl.NewVelocityTracker(8, 3)
	ctx.Scroll = scrollctl.NewController(scrollctl.Native, ctx.SizeCache.TotalSize(),
		scrollctl.WithIdleTimeout(b.config.Scroll.IdleTimeout),
		scrollctl.WithVelocityTracker(tracker),
	)
	ctx.Scroll.SetWheelScrollEnabled(b.config.Scroll.Wheel)

	orientation := render.Vertical
	if b.config.Orientation == Horizontal {
		orientation = render.Horizontal
	}
	ctx.Renderer = render.NewRenderer[T]("option", b.config.Item.Template, orientation)

	if err := b.checkConflicts(); err != nil {
		return nil, err
	}

	sort.SliceStable(ctx.features, func(i, j int) bool {
		return ctx.features[i].Priority() < ctx.features[j].Priority()
	})

	for _, f := range ctx.features {
		if err := f.Setup(ctx); err != nil {
			return nil, fmt.Errorf("vlist: feature %q setup: %w", f.Name(), err)
		}
	}

	// A feature may have installed SizeFuncOverride and/or VirtualTotal
	// (withSections, withGrid) during Setup — these change what "index"
	// means to the size cache, so rebuild it against the new index space
	// rather than the one buildSizeCache resolved before Setup ran.
	if ctx.SizeFuncOverride != nil || ctx.VirtualTotal != nil {
		total := ctx.Total()
		sizeFn := ctx.SizeFuncOverride
		if sizeFn == nil {
			sizeFn = b.config.sizeFunc()
		}
		ctx.SizeCache = sizecache.NewVariable(total, sizecache.SizeFunc(sizeFn))
		ctx.Scroll.SetMaxScroll(maxScrollFor(ctx))
	}

	inst := &Instance[T]{ctx: ctx}
	ctx.Scroll.OnIdle = func() {
		if inst.contentSizePending {
			inst.contentSizePending = false
			inst.flushContentSize()
		}
	}
	inst.refreshRanges()
	inst.render()
	return inst, nil
}

func (b *Builder[T]) validate() error {
	if b.config.Item.Template == nil {
		return fmt.Errorf("vlist: Item.Template is required")
	}
	if !b.config.hasExplicitSize() && !b.config.hasEstimatedSize() {
		axis := "Height/EstimatedHeight"
		if b.config.Orientation == Horizontal {
			axis = "Width/EstimatedWidth"
		}
		return fmt.Errorf("vlist: Item.%s: an explicit or estimated size must be set", axis)
	}
	return nil
}

func (b *Builder[T]) checkConflicts() error {
	present := make(map[string]bool, len(b.features))
	for _, f := range b.features {
		present[f.Name()] = true
	}
	for _, f := range b.features {
		for _, c := range f.Conflicts() {
			if present[c] {
				return fmt.Errorf("vlist: feature %q conflicts with %q", f.Name(), c)
			}
		}
	}
	if b.config.Orientation == Horizontal {
		for _, name := range []string{"sections", "grid"} {
			if present[name] {
				return fmt.Errorf("vlist: horizontal orientation is incompatible with feature %q", name)
			}
		}
		if b.config.Reverse {
			return fmt.Errorf("vlist: horizontal orientation is incompatible with Reverse")
		}
	}
	return nil
}

func (b *Builder[T]) buildSizeCache() sizecache.SizeCache {
	total := len(b.config.Items)
	if explicit := b.config.sizeFunc(); explicit != nil {
		return sizecache.NewVariable(total, sizecache.SizeFunc(explicit))
	}
	return sizecache.NewMeasured(total, b.config.estimatedSize())
}

// refreshCompression recomputes the Context's compression state from the
// current SizeCache/total, per spec.md §4.2.
func refreshCompression[T render.Identifiable](ctx *Context[T]) {
	ctx.State.Compression = compress.Compute(ctx.Total(), ctx.SizeCache)
}

// refreshVisibleAndRenderRanges recomputes both Range fields in place from
// the current scroll position, matching spec.md §4.3's zero-alloc
// discipline.
func refreshVisibleAndRenderRanges[T render.Identifiable](ctx *Context[T]) {
	pos := ctx.Scroll.Position()
	total := ctx.Total()
	if ctx.State.Compression.IsCompressed {
		var cr compress.Range
		compress.VisibleRange(pos, ctx.Config.ContainerSize, ctx.SizeCache, total, ctx.State.Compression, &cr)
		ctx.State.Visible = viewport.Range{Start: cr.Start, End: cr.End}
	} else {
		viewport.VisibleRange(pos, ctx.Config.ContainerSize, ctx.SizeCache, total, &ctx.State.Visible)
	}
	viewport.RenderRange(ctx.State.Visible, ctx.Config.Overscan, total, &ctx.State.Render)
}
