package vlist

import (
	"github.com/vlist-tui/vlist/compress"
	"github.com/vlist-tui/vlist/render"
)

// scrollToIndexCompressed wraps compress.ScrollToIndex with the Context's
// current size cache/compression state.
func scrollToIndexCompressed[T render.Identifiable](ctx *Context[T], index int, align string) int {
	return compress.ScrollToIndex(index, ctx.SizeCache, ctx.State.Compression, ctx.Config.ContainerSize, ctx.Total(), align)
}
