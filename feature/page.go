package feature

import (
	"os"

	"golang.org/x/term"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
	"github.com/vlist-tui/vlist/scrollctl"
)

type pageFeature[T render.Identifiable] struct {
	ctx *vlist.Context[T]
}

// WithPage switches the scroll controller to scrollctl.Window mode,
// tracking the real terminal's scroll region (queried via
// golang.org/x/term.GetSize on the controlling tty) instead of the
// component's own managed viewport — "the document scrolls, not the div".
// Disables the wheel handler, since window mode takes its position from the
// outer terminal rather than intercepted deltas.
func WithPage[T render.Identifiable]() vlist.Feature[T] {
	return &pageFeature[T]{}
}

func (f *pageFeature[T]) Name() string       { return "page" }
func (f *pageFeature[T]) Priority() int       { return 10 }
func (f *pageFeature[T]) Conflicts() []string { return []string{"scale"} }

func (f *pageFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.ctx = ctx
	ctx.Scroll.SetWheelScrollEnabled(false)

	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 0 {
		ctx.Config.ContainerSize = h
		ctx.Scroll.SetMaxScroll(maxScroll(ctx))
	}

	ctx.Resize = append(ctx.Resize, func(ctx *vlist.Context[T], size int) {
		ctx.Scroll.SetMode(scrollctl.Window, maxScroll(ctx))
	})

	ctx.Scroll.SetMode(scrollctl.Window, maxScroll(ctx))
	return nil
}
