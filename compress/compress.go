// Package compress remaps logical content sizes that exceed a safe terminal
// scroll-space ceiling onto a bounded virtual range.
//
// Most terminals and the programs that drive them have no trouble with
// arbitrarily large scroll positions, but a uniform internal representation
// keeps the rest of the engine (scrollctl, viewport) from having to special
// case enormous lists. When the logical size of the content would exceed the
// ceiling, State compresses it down to that ceiling and every position
// computed against it is expressed in the compressed space, then mapped back
// to a logical index on read.
package compress

import "github.com/vlist-tui/vlist/sizecache"

// Threshold is the design ceiling for virtual scroll-space size, chosen to
// stay well inside what any terminal emulator or multiplexer can represent
// internally without overflow or precision loss.
const Threshold = 16_000_000

// State describes whether compression is active for the current content
// size and, if so, the ratio between virtual and actual space.
type State struct {
	ActualSize  int
	VirtualSize int
	Ratio       float64
	IsCompressed bool
}

// Compute derives a State from the total item count and the size cache that
// describes them. Compression activates only once the actual size exceeds
// Threshold; otherwise the ratio is 1 and the two spaces coincide.
func Compute(total int, cache sizecache.SizeCache) State {
	actual := 0
	if cache != nil {
		actual = cache.TotalSize()
	}
	if actual <= Threshold {
		return State{ActualSize: actual, VirtualSize: actual, Ratio: 1, IsCompressed: false}
	}
	return State{
		ActualSize:   actual,
		VirtualSize:  Threshold,
		Ratio:        float64(Threshold) / float64(actual),
		IsCompressed: true,
	}
}

// Range is the result of VisibleRange: a half-open logical index span and
// the physical offset at which Start begins rendering.
type Range struct {
	Start, End    int
	PhysicalStart int
}

// VisibleRange maps a physical scroll position, expressed in virtual space,
// to a logical index range that fills containerSize. It walks forward from
// the mapped start, accumulating logical sizes until the container is full.
func VisibleRange(scrollPosition, containerSize int, cache sizecache.SizeCache, total int, st State, out *Range) {
	if out == nil {
		return
	}
	if total <= 0 || cache == nil {
		*out = Range{}
		return
	}
	if scrollPosition < 0 {
		scrollPosition = 0
	}

	logicalPos := virtualToLogical(scrollPosition, st)
	start := cache.IndexAtOffset(logicalPos)
	if start < 0 {
		start = 0
	}
	if start >= total {
		start = total - 1
	}

	physicalStart := int(float64(cache.Offset(start)) * st.Ratio)

	end := start
	filled := 0
	for end < total && filled < containerSize {
		filled += cache.Size(end)
		end++
	}
	if end <= start {
		end = start + 1
	}
	if end > total {
		end = total
	}

	out.Start = start
	out.End = end
	out.PhysicalStart = physicalStart
}

// ItemPosition returns the physical (virtual-space) offset at which index
// should render, pinned relative to rangeStart/physicalRangeStart so that
// the whole visible window holds still as the user drags — rather than
// recomputing an absolute virtual offset for every item independently,
// which would jitter under floating point rounding as the ratio shifts
// frame to frame.
//
// atBottom snaps the result flush to the end of the container so the final
// row never leaves a gap below it when index is the last item.
func ItemPosition(index, rangeStart, physicalRangeStart int, cache sizecache.SizeCache, st State, atBottom bool, containerSize, total int) int {
	if atBottom && index == total-1 && cache != nil {
		itemSize := cache.Size(index)
		pos := int(float64(cache.TotalSize())*st.Ratio) - itemSize
		if pos < 0 {
			pos = 0
		}
		alt := containerSize - itemSize
		if alt > pos {
			pos = alt
		}
		return pos
	}
	if cache == nil {
		return physicalRangeStart
	}
	delta := virtualOffset(cache.Offset(index), st) - virtualOffset(cache.Offset(rangeStart), st)
	return delta + physicalRangeStart
}

// ScrollToIndex returns the virtual-space scroll position that brings index
// into view under the requested alignment ("start", "center", or "end").
// align == "end" uses the exact-bottom form so the item lands flush with
// the container's bottom edge rather than merely visible.
func ScrollToIndex(index int, cache sizecache.SizeCache, st State, containerSize, total int, align string) int {
	if cache == nil || total <= 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}

	logicalOffset := cache.Offset(index)
	itemSize := cache.Size(index)

	switch align {
	case "end":
		logicalBottom := logicalOffset + itemSize
		pos := virtualOffset(logicalBottom, st) - containerSize
		if pos < 0 {
			pos = 0
		}
		return pos
	case "center":
		center := logicalOffset + itemSize/2 - containerSize/2
		if center < 0 {
			center = 0
		}
		return virtualOffset(center, st)
	default: // "start"
		return virtualOffset(logicalOffset, st)
	}
}

// virtualOffset maps a logical (actual-space) offset into virtual space.
func virtualOffset(logical int, st State) int {
	if !st.IsCompressed {
		return logical
	}
	return int(float64(logical) * st.Ratio)
}

// virtualToLogical maps a virtual-space position back into logical space,
// the inverse of virtualOffset.
func virtualToLogical(virtual int, st State) int {
	if !st.IsCompressed || st.Ratio == 0 {
		return virtual
	}
	return int(float64(virtual) / st.Ratio)
}
