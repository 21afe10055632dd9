package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vlist-tui/vlist/compress"
	"github.com/vlist-tui/vlist/internal/errreport"
	"github.com/vlist-tui/vlist/sizecache"
	"github.com/vlist-tui/vlist/viewport"
)

// Identifiable is the minimal contract an item must satisfy: a stable,
// caller-owned identifier. The engine never mutates items and only reads
// this identifier to track selection and pool membership across renders.
type Identifiable interface {
	ItemID() string
}

// Template renders item at index into cell, returning the string placed in
// the composited frame for that row/column. cell carries the pool's reused
// state (Selected/Focused/Size are pre-populated by Render before the call)
// so a Template can read-then-overwrite instead of starting from nothing.
type Template[T Identifiable] func(item T, index int, cell *Cell) string

// Orientation selects which axis Position offsets are expressed along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Renderer brings a composited frame into sync with a new render range,
// diffing against the previous range so only newly-visible items are
// acquired and only newly-hidden items are released.
type Renderer[T Identifiable] struct {
	pool        *Pool
	template    Template[T]
	orientation Orientation

	prevRange viewport.Range
	cells     map[int]*Cell
}

// NewRenderer constructs a Renderer backed by a fresh Cell pool tagged with
// role (mirroring the ARIA role spec.md assigns pooled DOM elements).
func NewRenderer[T Identifiable](role string, tmpl Template[T], orientation Orientation) *Renderer[T] {
	return &Renderer[T]{
		pool:        NewPool(role),
		template:    tmpl,
		orientation: orientation,
		cells:       make(map[int]*Cell),
	}
}

// Frame is the output of a render pass: the composited content plus the
// per-index placement needed by a caller to position each row/column.
type Frame struct {
	Content   string
	Positions map[int]int // index -> main-axis offset

	// Measurements holds a fresh Mode B reading for every newly-entered
	// cell this pass discovered wasn't measured yet (sizecache.Measured
	// only, otherwise always empty). The caller is expected to fold these
	// into the cache via ApplyMeasurements — which also reports the
	// scroll-position correction for growth/shrinkage above the visible
	// range — then render once more so layout reflects the real size.
	Measurements []Measurement
}

// Measure reports the on-screen height (line count) and max line width (in
// display cells, ANSI escapes stripped) of rendered content — the terminal
// analogue of measuring a DOM element's scrollHeight/scrollWidth after
// first paint, for Mode B ("measure after render") sizing.
func Measure(content string) (height, width int) {
	lines := strings.Split(content, "\n")
	height = len(lines)
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > width {
			width = w
		}
	}
	return height, width
}

// Render recomputes the composited frame for newRange. Indices leaving the
// previous range are released back to the pool; indices entering it are
// acquired and passed through the template. Every surviving cell is
// repositioned using cache/compression so scroll drag keeps the window
// visually stable.
//
// Rendering an empty range (Len() == 0) clears all cells. A range with
// end < start is a no-op, matching the DOM renderer's contract.
//
// itemAt is called only for indices actually entering the render range
// (a handful per frame, bounded by containerSize+overscan) rather than
// requiring a caller-materialized slice across the whole logical index
// space — the index-addressed accessor a sparse/chunked data.Manager needs
// to avoid synthesizing (and LRU-touching) every off-screen index on every
// frame.
func (r *Renderer[T]) Render(
	itemAt func(index int) (T, bool),
	newRange viewport.Range,
	selectedIDs map[string]bool,
	focusedIndex int,
	cache sizecache.SizeCache,
	st compress.State,
	containerSize int,
	atMaxScroll bool,
) Frame {
	if newRange.End < newRange.Start {
		return r.currentFrame(cache, st, containerSize, atMaxScroll)
	}
	if newRange.Len() == 0 {
		for idx, c := range r.cells {
			r.pool.Release(c)
			delete(r.cells, idx)
		}
		r.prevRange = newRange
		return Frame{Positions: map[int]int{}}
	}

	enter, leave := viewport.DiffRanges(r.prevRange, newRange)

	for _, idx := range leave {
		if c, ok := r.cells[idx]; ok {
			r.pool.Release(c)
			delete(r.cells, idx)
		}
	}

	measuredCache, usesMeasured := cache.(*sizecache.Measured)
	var measurements []Measurement

	for _, idx := range enter {
		item, ok := itemAt(idx)
		if !ok {
			continue
		}
		cell := r.pool.Acquire()
		cell.Index = idx
		cell.ID = item.ItemID()
		cell.Selected = selectedIDs[cell.ID]
		cell.Focused = idx == focusedIndex
		cell.Size = 0
		if cache != nil && (!usesMeasured || measuredCache.IsMeasured(idx)) {
			cell.Size = cache.Size(idx)
		}
		// A panicking template is reported and leaves the cell empty; the
		// rest of the batch still renders.
		cell.Content = func() (content string) {
			defer func() {
				if rec := recover(); rec != nil {
					errreport.ReportPanic(rec, errreport.Context{Kind: "template", Detail: cell.ID})
					content = ""
				}
			}()
			return r.template(item, idx, cell)
		}()
		r.cells[idx] = cell

		if usesMeasured && !measuredCache.IsMeasured(idx) {
			height, width := Measure(cell.Content)
			size := height
			if r.orientation == Horizontal {
				size = width
			}
			measurements = append(measurements, Measurement{Index: idx, Size: size})
		}
	}

	// Selection/focus can change without the range shifting; keep surviving
	// cells' flags current so a re-render after a selection toggle doesn't
	// require a full re-acquire.
	for idx, c := range r.cells {
		c.Selected = selectedIDs[c.ID]
		c.Focused = idx == focusedIndex
	}

	r.prevRange = newRange
	frame := r.currentFrame(cache, st, containerSize, atMaxScroll)
	frame.Measurements = measurements
	return frame
}

// currentFrame composites the surviving cells, in index order, into one
// strings.Builder fragment — the terminal analogue of batching DOM
// insertions into a single DocumentFragment append. atMaxScroll reports
// whether the controller is actually scrolled to its ceiling right now;
// only then does the last item get the end-snap treatment that flushes it
// against the container's bottom edge, rather than every frame that merely
// happens to render the last index.
func (r *Renderer[T]) currentFrame(cache sizecache.SizeCache, st compress.State, containerSize int, atMaxScroll bool) Frame {
	positions := make(map[int]int, len(r.cells))
	if len(r.cells) == 0 {
		return Frame{Positions: positions}
	}

	indices := make([]int, 0, len(r.cells))
	for idx := range r.cells {
		indices = append(indices, idx)
	}
	sortInts(indices)

	var b strings.Builder
	rangeStart := r.prevRange.Start
	physicalRangeStart := 0
	if cache != nil {
		physicalRangeStart = int(float64(cache.Offset(rangeStart)) * st.Ratio)
	}

	for i, idx := range indices {
		c := r.cells[idx]
		pos := physicalRangeStart
		if cache != nil {
			total := cache.Total()
			pos = compress.ItemPosition(idx, rangeStart, physicalRangeStart, cache, st, atMaxScroll, containerSize, total)
		}
		positions[idx] = pos
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(c.Content)
	}

	return Frame{Content: b.String(), Positions: positions}
}

// Reset releases every pooled cell and clears tracked range, for list
// teardown or a full content-shape change (e.g. filter applied).
func (r *Renderer[T]) Reset() {
	for idx, c := range r.cells {
		r.pool.Release(c)
		delete(r.cells, idx)
	}
	r.prevRange = viewport.Range{}
}

// Stats exposes pool diagnostics.
func (r *Renderer[T]) Stats() PoolStats { return r.pool.Stats() }

func sortInts(s []int) {
	// Render ranges are small (viewport height plus overscan), so an
	// insertion sort avoids pulling in sort.Ints for a handful of elements.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// PlaceholderID formats the stable masked identifier for an unloaded index,
// shared with the data package's sparse store.
func PlaceholderID(index int) string {
	return "__placeholder_" + strconv.Itoa(index)
}
