package feature

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

const (
	defaultMinThumb = 1
	trackGlyph      = '│'
	thumbGlyph      = '┃'
)

// ScrollbarConfig configures WithScrollbar's appearance.
type ScrollbarConfig struct {
	MinThumb   int
	TrackStyle lipgloss.Style
	ThumbStyle lipgloss.Style
}

// DefaultScrollbarConfig matches the teacher's bright-black track / white
// thumb palette.
func DefaultScrollbarConfig() ScrollbarConfig {
	return ScrollbarConfig{
		MinThumb:   defaultMinThumb,
		TrackStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ThumbStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	}
}

type scrollbarFeature[T render.Identifiable] struct {
	cfg    ScrollbarConfig
	ctx    *vlist.Context[T]
	column string
}

// WithScrollbar attaches a box-drawing scrollbar column recomputed on
// AfterScroll/ContentSize/Resize. Thumb position/size follow spec.md §4.7:
// thumbSize = max(minThumb, containerSize/totalSize*trackSize); thumbPos =
// scrollRatio*(trackSize-thumbSize). When compression is active the ratio
// is taken against the virtual (compressed) size, not the physical one —
// the "virtual sizing" spec.md calls for.
func WithScrollbar[T render.Identifiable](cfg ScrollbarConfig) vlist.Feature[T] {
	return &scrollbarFeature[T]{cfg: cfg}
}

func (f *scrollbarFeature[T]) Name() string       { return "scrollbar" }
func (f *scrollbarFeature[T]) Priority() int       { return 60 }
func (f *scrollbarFeature[T]) Conflicts() []string { return nil }

func (f *scrollbarFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.ctx = ctx
	ctx.AfterScroll = append(ctx.AfterScroll, func(ctx *vlist.Context[T]) tea.Cmd { f.recompute(ctx); return nil })
	ctx.ContentSize = append(ctx.ContentSize, f.recompute)
	ctx.Resize = append(ctx.Resize, func(ctx *vlist.Context[T], size int) { f.recompute(ctx) })
	ctx.Methods["scrollbarView"] = func(args ...any) (any, error) {
		return f.column, nil
	}
	f.recompute(ctx)
	return nil
}

func (f *scrollbarFeature[T]) recompute(ctx *vlist.Context[T]) {
	if s := ctx.Config.Scroll.Scrollbar; s == "native" || s == "none" {
		f.column = ""
		return
	}
	trackSize := ctx.Config.ContainerSize
	if trackSize <= 0 || ctx.SizeCache == nil {
		f.column = ""
		return
	}

	totalSize := ctx.SizeCache.TotalSize()
	position := ctx.Scroll.Position()
	if ctx.State.Compression.IsCompressed {
		totalSize = ctx.State.Compression.VirtualSize
	}
	if totalSize <= trackSize {
		f.column = ""
		return
	}

	minThumb := f.cfg.MinThumb
	if minThumb <= 0 {
		minThumb = defaultMinThumb
	}
	thumbSize := trackSize * trackSize / totalSize
	if thumbSize < minThumb {
		thumbSize = minThumb
	}
	if thumbSize > trackSize {
		thumbSize = trackSize
	}

	maxScroll := totalSize - trackSize
	maxThumbTravel := trackSize - thumbSize
	thumbPos := 0
	if maxScroll > 0 {
		thumbPos = position * maxThumbTravel / maxScroll
	}
	if thumbPos < 0 {
		thumbPos = 0
	}
	if thumbPos > maxThumbTravel {
		thumbPos = maxThumbTravel
	}

	var b strings.Builder
	for row := 0; row < trackSize; row++ {
		if row >= thumbPos && row < thumbPos+thumbSize {
			b.WriteString(f.cfg.ThumbStyle.Render(string(thumbGlyph)))
		} else {
			b.WriteString(f.cfg.TrackStyle.Render(string(trackGlyph)))
		}
		if row < trackSize-1 {
			b.WriteByte('\n')
		}
	}
	f.column = b.String()
}
