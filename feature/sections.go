package feature

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

// SectionsConfig configures WithSections.
type SectionsConfig[T render.Identifiable] struct {
	// GroupKey returns the group an item belongs to. Consecutive items
	// sharing a key are treated as one group; a new group starts whenever
	// the key changes, so pre-sort items by group key for stable sections.
	GroupKey func(item T) string
	// HeaderHeight is the main-axis size reserved for a header row.
	HeaderHeight int
	// HeaderTemplate renders a header row given its group key and the
	// number of items in the group.
	HeaderTemplate func(groupKey string, count int) string
}

type sectionEntry struct {
	isHeader  bool
	groupKey  string
	count     int
	itemIndex int
}

type sectionsFeature[T render.Identifiable] struct {
	cfg       SectionsConfig[T]
	baseItems func() []T
	entries   []sectionEntry
	sticky    string
}

// WithSections splices a synthetic header row ahead of every run of items
// sharing a GroupKey, renumbering the virtual index space to interleave
// headers and items. Conflicts with "grid" since both replace VirtualTotal
// and the per-index size function, and is meaningless with Horizontal
// orientation.
func WithSections[T render.Identifiable](cfg SectionsConfig[T]) vlist.Feature[T] {
	return &sectionsFeature[T]{cfg: cfg}
}

func (f *sectionsFeature[T]) Name() string       { return "sections" }
func (f *sectionsFeature[T]) Priority() int       { return 40 }
func (f *sectionsFeature[T]) Conflicts() []string { return []string{"grid"} }

func (f *sectionsFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.baseItems = ctx.Items
	if f.baseItems == nil {
		f.baseItems = func() []T { return ctx.Config.Items }
	}
	originalSizeCache := ctx.SizeCache
	originalTemplate := ctx.Config.Item.Template

	f.rebuild()

	ctx.Config.Item.Template = func(item T, idx int, cell *render.Cell) string {
		if idx >= 0 && idx < len(f.entries) && f.entries[idx].isHeader {
			e := f.entries[idx]
			return f.cfg.HeaderTemplate(e.groupKey, e.count)
		}
		return originalTemplate(item, idx, cell)
	}

	orientation := render.Vertical
	if ctx.Config.Orientation == vlist.Horizontal {
		orientation = render.Horizontal
	}
	ctx.Renderer = render.NewRenderer[T]("option", ctx.Config.Item.Template, orientation)

	ctx.Items = func() []T {
		base := f.baseItems()
		out := make([]T, len(f.entries))
		for i, e := range f.entries {
			if !e.isHeader && e.itemIndex < len(base) {
				out[i] = base[e.itemIndex]
			}
		}
		return out
	}
	ctx.VirtualTotal = func() int { return len(f.entries) }
	ctx.SizeFuncOverride = func(virtualIdx int) int {
		if virtualIdx < 0 || virtualIdx >= len(f.entries) {
			return 0
		}
		e := f.entries[virtualIdx]
		if e.isHeader {
			return f.cfg.HeaderHeight
		}
		return originalSizeCache.Size(e.itemIndex)
	}

	ctx.AfterScroll = append(ctx.AfterScroll, f.afterScroll)
	ctx.Methods["stickyHeader"] = func(args ...any) (any, error) {
		return f.sticky, nil
	}
	return nil
}

// rebuild recomputes the virtual entries list from the live item slice. It
// must run again whenever the underlying items change shape (SetItems and
// friends don't currently notify features, so callers driving dynamic
// sections should reconstruct the Instance rather than mutate in place).
func (f *sectionsFeature[T]) rebuild() {
	items := f.baseItems()
	entries := make([]sectionEntry, 0, len(items)+8)
	var curKey string
	var curStart int
	flush := func(end int) {
		if end <= curStart {
			return
		}
		entries = append(entries, sectionEntry{isHeader: true, groupKey: curKey, count: end - curStart})
		for i := curStart; i < end; i++ {
			entries = append(entries, sectionEntry{itemIndex: i})
		}
	}
	for i, item := range items {
		key := f.cfg.GroupKey(item)
		if i == 0 {
			curKey, curStart = key, 0
			continue
		}
		if key != curKey {
			flush(i)
			curKey, curStart = key, i
		}
	}
	if len(items) > 0 {
		flush(len(items))
	}
	f.entries = entries
}

// afterScroll tracks which group header currently sits at (or above) the
// top of the viewport, for a host UI to render pinned above the list.
func (f *sectionsFeature[T]) afterScroll(ctx *vlist.Context[T]) tea.Cmd {
	if ctx.SizeCache == nil {
		return nil
	}
	pos := ctx.Scroll.Position()
	idx := ctx.SizeCache.IndexAtOffset(pos)
	for i := idx; i >= 0; i-- {
		if i < len(f.entries) && f.entries[i].isHeader {
			f.sticky = f.entries[i].groupKey
			break
		}
	}
	return nil
}
