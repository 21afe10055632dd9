package viewport

import (
	"testing"

	"github.com/vlist-tui/vlist/sizecache"
)

func TestVisibleRangeFixed(t *testing.T) {
	cache := sizecache.NewFixed(1000, 20)
	var r Range
	VisibleRange(200, 100, cache, 1000, &r)
	// pos=200 -> index 10; container 100 / 20 per row = 5 rows -> end=15
	if r.Start != 10 {
		t.Fatalf("Start = %d, want 10", r.Start)
	}
	if r.End != 15 {
		t.Fatalf("End = %d, want 15", r.End)
	}
}

func TestVisibleRangeEmpty(t *testing.T) {
	var r Range
	VisibleRange(0, 100, sizecache.NewFixed(0, 20), 0, &r)
	if r.Start != 0 || r.End != 0 {
		t.Fatalf("empty cache should yield zero range, got %+v", r)
	}
}

func TestRenderRangeOverscanClamping(t *testing.T) {
	var r Range
	RenderRange(Range{Start: 2, End: 10}, 5, 12, &r)
	if r.Start != 0 {
		t.Fatalf("Start should clamp to 0, got %d", r.Start)
	}
	if r.End != 12 {
		t.Fatalf("End should clamp to total, got %d", r.End)
	}
}

func TestRenderRangeNoClampNeeded(t *testing.T) {
	var r Range
	RenderRange(Range{Start: 50, End: 60}, 3, 1000, &r)
	if r.Start != 47 || r.End != 63 {
		t.Fatalf("got {%d,%d}, want {47,63}", r.Start, r.End)
	}
}

func TestRangesEqual(t *testing.T) {
	if !RangesEqual(Range{1, 5}, Range{1, 5}) {
		t.Fatalf("identical ranges should compare equal")
	}
	if RangesEqual(Range{1, 5}, Range{1, 6}) {
		t.Fatalf("different ranges should not compare equal")
	}
}

func TestDiffRanges(t *testing.T) {
	prev := Range{10, 20}
	next := Range{15, 25}
	enter, leave := DiffRanges(prev, next)

	wantEnter := []int{20, 21, 22, 23, 24}
	wantLeave := []int{10, 11, 12, 13, 14}

	if !equalInts(enter, wantEnter) {
		t.Fatalf("enter = %v, want %v", enter, wantEnter)
	}
	if !equalInts(leave, wantLeave) {
		t.Fatalf("leave = %v, want %v", leave, wantLeave)
	}
}

func TestDiffRangesNoOverlap(t *testing.T) {
	prev := Range{0, 5}
	next := Range{100, 105}
	enter, leave := DiffRanges(prev, next)
	if len(enter) != 5 || len(leave) != 5 {
		t.Fatalf("disjoint ranges should fully enter/leave, got enter=%v leave=%v", enter, leave)
	}
}

func TestDetectDirection(t *testing.T) {
	if DetectDirection(10, 20) != DirectionForward {
		t.Fatalf("expected forward")
	}
	if DetectDirection(20, 10) != DirectionBackward {
		t.Fatalf("expected backward")
	}
	if DetectDirection(10, 10) != DirectionNone {
		t.Fatalf("expected none")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
