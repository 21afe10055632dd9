package sizecache

import "testing"

func TestFixedBasics(t *testing.T) {
	f := NewFixed(1000, 50)
	if got := f.Offset(0); got != 0 {
		t.Fatalf("Offset(0) = %d, want 0", got)
	}
	if got := f.TotalSize(); got != 50000 {
		t.Fatalf("TotalSize() = %d, want 50000", got)
	}
	if got := f.Offset(100); got != 5000 {
		t.Fatalf("Offset(100) = %d, want 5000", got)
	}
	if got := f.IndexAtOffset(5000); got != 100 {
		t.Fatalf("IndexAtOffset(5000) = %d, want 100", got)
	}
}

func TestFixedEmpty(t *testing.T) {
	f := NewFixed(0, 50)
	if f.TotalSize() != 0 {
		t.Fatalf("empty cache TotalSize() != 0")
	}
	if f.IndexAtOffset(10) != 0 {
		t.Fatalf("empty cache IndexAtOffset should clamp to 0")
	}
	f2 := NewFixed(-5, 50)
	if f2.Total() != 0 {
		t.Fatalf("negative total should yield empty valid cache")
	}
}

func TestFixedClamping(t *testing.T) {
	f := NewFixed(10, 10)
	if got := f.IndexAtOffset(-5); got != 0 {
		t.Fatalf("negative offset should clamp to 0, got %d", got)
	}
	if got := f.IndexAtOffset(10000); got != 9 {
		t.Fatalf("overflow offset should clamp to total-1, got %d", got)
	}
}

func TestVariableScenario2(t *testing.T) {
	// Spec scenario 2: alternating sizes [30,40,30,40,...] for 1000 items.
	sizes := make([]int, 1000)
	for i := range sizes {
		if i%2 == 0 {
			sizes[i] = 30
		} else {
			sizes[i] = 40
		}
	}
	v := NewVariable(1000, func(i int) int { return sizes[i] })

	if got := v.Offset(0); got != 0 {
		t.Fatalf("Offset(0) = %d, want 0", got)
	}
	// 30+40+30+40+30+40+30+40+30 = 310 at i=9 boundary start
	if got := v.Offset(9); got != 310 {
		t.Fatalf("Offset(9) = %d, want 310", got)
	}
	// index at offset 340 should be 9 (350 is boundary to 10)
	if got := v.IndexAtOffset(340); got != 9 {
		t.Fatalf("IndexAtOffset(340) = %d, want 9", got)
	}
}

func TestVariableInvariant(t *testing.T) {
	sizes := []int{5, 10, 0, 20, 1}
	v := NewVariable(len(sizes), func(i int) int { return sizes[i] })
	for i := 0; i < len(sizes); i++ {
		if got, want := v.Offset(i+1)-v.Offset(i), v.Size(i); got != want {
			t.Fatalf("offset delta at %d = %d, want Size() = %d", i, got, want)
		}
	}
	if v.Offset(0) != 0 {
		t.Fatalf("Offset(0) must be 0")
	}
	if v.Offset(len(sizes)) != v.TotalSize() {
		t.Fatalf("Offset(n) must equal TotalSize()")
	}
}

func TestVariableRebuildPreservesNothingButRecomputes(t *testing.T) {
	calls := 0
	v := NewVariable(5, func(i int) int { calls++; return i + 1 })
	if calls != 5 {
		t.Fatalf("expected 5 calls building, got %d", calls)
	}
	v.Rebuild(3)
	if v.Total() != 3 {
		t.Fatalf("Total() after rebuild = %d, want 3", v.Total())
	}
}

func TestMeasuredFallsBackToEstimate(t *testing.T) {
	m := NewMeasured(10, 120)
	if got := m.Size(3); got != 120 {
		t.Fatalf("unmeasured Size(3) = %d, want estimate 120", got)
	}
	m.Record(3, 180)
	m.Rebuild(10)
	if got := m.Size(3); got != 180 {
		t.Fatalf("measured Size(3) = %d, want 180", got)
	}
	if !m.IsMeasured(3) {
		t.Fatalf("IsMeasured(3) should be true")
	}
	if m.IsMeasured(4) {
		t.Fatalf("IsMeasured(4) should be false")
	}
}

func TestMeasuredRebuildDropsOutOfRange(t *testing.T) {
	m := NewMeasured(10, 50)
	m.Record(8, 99)
	m.Rebuild(5) // index 8 no longer exists
	if m.IsMeasured(8) {
		t.Fatalf("measurement for dropped index should be gone")
	}
	// simulate growth back past 8: should fall back to estimate, not stale 99.
	m.Rebuild(10)
	if got := m.Size(8); got != 50 {
		t.Fatalf("regrown index should use estimate, got %d", got)
	}
}

func TestScenario5MeasurementDelta(t *testing.T) {
	// Spec scenario 5: 5000 posts, estimatedHeight=120, 100 measured items,
	// half at 180 (+60), half at 80 (-40); net delta = 50*60 - 50*40 = +1000.
	m := NewMeasured(5000, 120)
	for i := 0; i < 50; i++ {
		m.Record(i, 180)
	}
	for i := 50; i < 100; i++ {
		m.Record(i, 80)
	}
	before := make([]int, 100)
	for i := range before {
		before[i] = 120 // estimate prior to measurement
	}
	m.Rebuild(5000)
	delta := 0
	for i := 0; i < 100; i++ {
		delta += m.Size(i) - before[i]
	}
	if delta != 1000 {
		t.Fatalf("net measurement delta = %d, want 1000", delta)
	}
}
