// Package viewport computes the visible and render index ranges for a
// scrollable list from its scroll position, container size, and size cache.
//
// Both hot functions mutate a caller-supplied *Range rather than returning a
// new one, so a frame that hasn't changed shape costs zero allocations —
// mirroring the two persistent Range instances (visible, render) that a
// Builder owns for the life of a list.
package viewport

import "github.com/vlist-tui/vlist/sizecache"

// Range is a half-open index span [Start, End) with End >= Start.
type Range struct {
	Start, End int
}

// Len reports the number of indices the range covers.
func (r Range) Len() int { return r.End - r.Start }

// VisibleRange computes the half-open index range that is actually visible
// at scrollPosition within containerSize, for the fixed/variable
// non-compressed path: IndexAtOffset locates the start in O(1) (Fixed)
// or O(log n) (Variable), then a forward walk accumulates sizes until the
// container is filled.
func VisibleRange(pos, container int, cache sizecache.SizeCache, total int, out *Range) {
	if out == nil {
		return
	}
	if total <= 0 || cache == nil || container <= 0 {
		out.Start, out.End = 0, 0
		return
	}
	if pos < 0 {
		pos = 0
	}

	start := cache.IndexAtOffset(pos)
	if start < 0 {
		start = 0
	}
	if start >= total {
		start = total - 1
	}

	end := start
	filled := 0
	for end < total && filled < container {
		filled += cache.Size(end)
		end++
	}
	if end <= start {
		end = start + 1
	}
	if end > total {
		end = total
	}

	out.Start, out.End = start, end
}

// RenderRange expands visible by overscan items on each side, clamped to
// [0, total).
func RenderRange(visible Range, overscan, total int, out *Range) {
	if out == nil {
		return
	}
	if total <= 0 {
		out.Start, out.End = 0, 0
		return
	}
	start := visible.Start - overscan
	if start < 0 {
		start = 0
	}
	end := visible.End + overscan
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	out.Start, out.End = start, end
}

// RangesEqual reports whether a and b cover the same span.
func RangesEqual(a, b Range) bool {
	return a.Start == b.Start && a.End == b.End
}

// DiffRanges returns the indices present in next but not prev (enter) and
// the indices present in prev but not next (leave). Used by the renderer to
// acquire only newly-visible elements and release only newly-hidden ones.
func DiffRanges(prev, next Range) (enter, leave []int) {
	if prev.Len() > 0 {
		leave = make([]int, 0, prev.Len())
	}
	if next.Len() > 0 {
		enter = make([]int, 0, next.Len())
	}
	for i := prev.Start; i < prev.End; i++ {
		if i < next.Start || i >= next.End {
			leave = append(leave, i)
		}
	}
	for i := next.Start; i < next.End; i++ {
		if i < prev.Start || i >= prev.End {
			enter = append(enter, i)
		}
	}
	return enter, leave
}

// Direction is the monotonic scroll direction detected between two
// successive scroll positions.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// DetectDirection compares a previous and current scroll position.
func DetectDirection(prevPos, currPos int) Direction {
	switch {
	case currPos > prevPos:
		return DirectionForward
	case currPos < prevPos:
		return DirectionBackward
	default:
		return DirectionNone
	}
}
