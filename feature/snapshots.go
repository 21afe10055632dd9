package feature

import (
	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
)

// Snapshot is the serializable scroll/selection state spec.md calls
// "persisted state" — the caller owns storage (disk, session, wherever).
type Snapshot struct {
	Index        int
	OffsetInItem int
	Total        int
	SelectedIDs  []string
}

type snapshotsFeature[T render.Identifiable] struct {
	ctx *vlist.Context[T]
}

// WithSnapshots exposes "getScrollSnapshot" and "restoreScroll" methods on
// the built Instance (reachable via Instance.Call), letting a caller persist
// and later reproduce a list's exact scroll/selection state.
func WithSnapshots[T render.Identifiable]() vlist.Feature[T] {
	return &snapshotsFeature[T]{}
}

func (f *snapshotsFeature[T]) Name() string       { return "snapshots" }
func (f *snapshotsFeature[T]) Priority() int       { return 80 }
func (f *snapshotsFeature[T]) Conflicts() []string { return nil }

func (f *snapshotsFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.ctx = ctx
	ctx.Methods["getScrollSnapshot"] = f.getSnapshot
	ctx.Methods["restoreScroll"] = f.restore
	return nil
}

func (f *snapshotsFeature[T]) getSnapshot(args ...any) (any, error) {
	ctx := f.ctx
	total := ctx.Total()
	pos := ctx.Scroll.Position()
	index := 0
	offsetInItem := 0
	if total > 0 && ctx.SizeCache != nil {
		index = ctx.SizeCache.IndexAtOffset(pos)
		offsetInItem = pos - ctx.SizeCache.Offset(index)
	}
	ids := make([]string, 0, len(ctx.State.SelectedIDs))
	for id := range ctx.State.SelectedIDs {
		ids = append(ids, id)
	}
	return Snapshot{Index: index, OffsetInItem: offsetInItem, Total: total, SelectedIDs: ids}, nil
}

// restore rebuilds the size cache to snap.Total (if nonzero and different
// from the current total — e.g. reopening a list whose backing data has
// since changed) then scrolls to reproduce the prior view. Expects a
// Snapshot as args[0].
func (f *snapshotsFeature[T]) restore(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	snap, ok := args[0].(Snapshot)
	if !ok {
		return nil, nil
	}
	ctx := f.ctx
	if ctx.SizeCache == nil {
		return nil, nil
	}
	if snap.Total > 0 && snap.Total != ctx.Total() {
		ctx.SizeCache.Rebuild(snap.Total)
	}
	if snap.Index < 0 || snap.Index >= ctx.Total() {
		return nil, nil
	}
	pos := ctx.SizeCache.Offset(snap.Index) + snap.OffsetInItem
	ctx.Scroll.SetMaxScroll(maxScroll(ctx))
	ctx.Scroll.HandleMsg(scrollctl.SetPositionMsg{Position: pos})
	if snap.SelectedIDs != nil {
		for id := range ctx.State.SelectedIDs {
			delete(ctx.State.SelectedIDs, id)
		}
		for _, id := range snap.SelectedIDs {
			ctx.State.SelectedIDs[id] = true
		}
	}
	return nil, nil
}

func maxScroll[T render.Identifiable](ctx *vlist.Context[T]) int {
	m := ctx.SizeCache.TotalSize() - ctx.Config.ContainerSize
	if m < 0 {
		m = 0
	}
	return m
}
