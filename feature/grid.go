package feature

import (
	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

// GridConfig configures WithGrid.
type GridConfig struct {
	// Columns is the fixed column count. ColumnWidth, if provided, is
	// consulted on Resize to recompute Columns as ContainerWidth/ColumnWidth
	// instead of holding it fixed.
	Columns     int
	ColumnWidth int
}

type gridFeature[T render.Identifiable] struct {
	cfg       GridConfig
	baseItems func() []T
	columns   int
	rowHeight int
}

// WithGrid reinterprets the list as a row-major grid: VirtualTotal reports
// row count (ceil(len(items)/columns)) instead of item count, and the
// renderer's per-index Template receives the first item of each row —
// callers wanting true multi-column rendering supply a Template that reads
// the remaining row items off ctx via a closure captured at construction.
// Conflicts with "sections"; meaningless with Horizontal orientation.
func WithGrid[T render.Identifiable](cfg GridConfig) vlist.Feature[T] {
	if cfg.Columns <= 0 {
		cfg.Columns = 1
	}
	return &gridFeature[T]{cfg: cfg, columns: cfg.Columns}
}

func (f *gridFeature[T]) Name() string       { return "grid" }
func (f *gridFeature[T]) Priority() int       { return 40 }
func (f *gridFeature[T]) Conflicts() []string { return []string{"sections"} }

func (f *gridFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.baseItems = ctx.Items
	if f.baseItems == nil {
		f.baseItems = func() []T { return ctx.Config.Items }
	}
	f.rowHeight = ctx.Config.Item.EstimatedHeight
	if ctx.Config.Orientation == vlist.Horizontal {
		f.rowHeight = ctx.Config.Item.EstimatedWidth
	}
	if ctx.SizeCache != nil && ctx.SizeCache.Total() > 0 {
		f.rowHeight = ctx.SizeCache.Size(0)
	}

	ctx.Items = func() []T {
		base := f.baseItems()
		rows := f.rowCount(len(base))
		out := make([]T, rows)
		for r := 0; r < rows; r++ {
			first := r * f.columns
			if first < len(base) {
				out[r] = base[first]
			}
		}
		return out
	}
	ctx.VirtualTotal = func() int { return f.rowCount(len(f.baseItems())) }
	ctx.SizeFuncOverride = func(int) int { return f.rowHeight }

	ctx.Resize = append(ctx.Resize, f.onResize)
	ctx.Methods["gridColumns"] = func(args ...any) (any, error) { return f.columns, nil }
	return nil
}

func (f *gridFeature[T]) rowCount(itemCount int) int {
	if f.columns <= 0 {
		return itemCount
	}
	rows := itemCount / f.columns
	if itemCount%f.columns != 0 {
		rows++
	}
	return rows
}

// onResize recomputes the column count from the new container width when
// ColumnWidth was configured; a fixed Columns count ignores resizes.
func (f *gridFeature[T]) onResize(ctx *vlist.Context[T], size int) {
	if f.cfg.ColumnWidth <= 0 || ctx.Config.Orientation == vlist.Horizontal {
		return
	}
	cols := size / f.cfg.ColumnWidth
	if cols <= 0 {
		cols = 1
	}
	f.columns = cols
}
