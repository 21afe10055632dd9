// Package sizecache maps item indices to main-axis offsets and sizes.
//
// Three immutable-per-build implementations share one interface: Fixed (every
// item the same size), Variable (a precomputed size per index), and Measured
// (Variable plus a sparse map of after-render measurements that override the
// estimate). All three are axis-neutral: the same code serves row heights in
// vertical orientation and column widths in horizontal orientation.
package sizecache

import "sort"

// SizeCache maps index <-> offset along one axis.
type SizeCache interface {
	// Offset returns the main-axis offset at which index i begins.
	Offset(i int) int
	// Size returns the size of item i.
	Size(i int) int
	// IndexAtOffset returns the index whose half-open [Offset(i),
	// Offset(i+1)) span contains x, clamped to [0, Total()-1].
	IndexAtOffset(x int) int
	// TotalSize returns Offset(Total()).
	TotalSize() int
	// Total returns the item count this cache was built for.
	Total() int
	// Rebuild recomputes internal state for a new item count. Callers must
	// rebuild after any mutation to the inputs (item count, per-item sizes)
	// before the next render.
	Rebuild(total int)
	// IsVariable reports whether items may have differing sizes.
	IsVariable() bool
}

// Fixed is the O(1) variant: every item occupies the same size.
type Fixed struct {
	total int
	size  int
}

// NewFixed builds a fixed-size cache. total <= 0 yields an empty, valid
// cache (TotalSize() == 0); size is clamped to >= 0.
func NewFixed(total, size int) *Fixed {
	if size < 0 {
		size = 0
	}
	f := &Fixed{size: size}
	f.Rebuild(total)
	return f
}

func (f *Fixed) Rebuild(total int) {
	if total < 0 {
		total = 0
	}
	f.total = total
}

func (f *Fixed) Offset(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= f.total {
		return f.total * f.size
	}
	return i * f.size
}

func (f *Fixed) Size(i int) int { return f.size }

func (f *Fixed) IndexAtOffset(x int) int {
	if f.total <= 0 {
		return 0
	}
	if x < 0 {
		return 0
	}
	total := f.TotalSize()
	if x >= total {
		return f.total - 1
	}
	if f.size <= 0 {
		return 0
	}
	idx := x / f.size
	if idx >= f.total {
		idx = f.total - 1
	}
	return idx
}

func (f *Fixed) TotalSize() int { return f.total * f.size }
func (f *Fixed) Total() int     { return f.total }
func (f *Fixed) IsVariable() bool { return false }

// SizeFunc returns the size, in main-axis units, of item i (0-indexed).
type SizeFunc func(i int) int

// Variable is the O(log n) variant: an immutable-after-build prefix-sum
// array, built once from a SizeFunc, with binary search for IndexAtOffset.
type Variable struct {
	fn     SizeFunc
	prefix []int // len == total+1; prefix[i] == Offset(i)
}

// NewVariable builds a variable-size cache by sampling fn for every index
// in [0, total). Rebuild is O(n); IndexAtOffset is O(log n); Offset/Size
// are O(1).
func NewVariable(total int, fn SizeFunc) *Variable {
	v := &Variable{fn: fn}
	v.Rebuild(total)
	return v
}

func (v *Variable) Rebuild(total int) {
	if total < 0 {
		total = 0
	}
	v.prefix = make([]int, total+1)
	for i := 0; i < total; i++ {
		size := 0
		if v.fn != nil {
			size = v.fn(i)
			if size < 0 {
				size = 0
			}
		}
		v.prefix[i+1] = v.prefix[i] + size
	}
}

func (v *Variable) Total() int { return len(v.prefix) - 1 }

func (v *Variable) Offset(i int) int {
	n := v.Total()
	if i <= 0 {
		return 0
	}
	if i > n {
		return v.prefix[n]
	}
	return v.prefix[i]
}

func (v *Variable) Size(i int) int {
	n := v.Total()
	if i < 0 || i >= n {
		return 0
	}
	return v.prefix[i+1] - v.prefix[i]
}

// IndexAtOffset returns the index i such that prefix[i] <= x < prefix[i+1],
// via binary search over the prefix-sum array.
func (v *Variable) IndexAtOffset(x int) int {
	n := v.Total()
	if n <= 0 {
		return 0
	}
	if x < 0 {
		return 0
	}
	total := v.prefix[n]
	if x >= total {
		return n - 1
	}
	// sort.Search finds the smallest i in [0,n] with prefix[i+1] > x;
	// that i is the index whose span contains x.
	i := sort.Search(n, func(i int) bool { return v.prefix[i+1] > x })
	if i >= n {
		i = n - 1
	}
	return i
}

func (v *Variable) TotalSize() int {
	n := v.Total()
	if n < 0 {
		return 0
	}
	return v.prefix[n]
}

func (v *Variable) IsVariable() bool { return true }

// Measured layers after-render measurements over an Variable cache: the
// measurement map is consulted first, the estimate function second. Rebuild
// preserves measurements for indices that still exist after a resize.
type Measured struct {
	estimate    int
	measured    map[int]int
	inner       *Variable
}

// NewMeasured builds a measured-size cache. estimatedSize seeds every index
// that has not yet been measured.
func NewMeasured(total, estimatedSize int) *Measured {
	if estimatedSize < 0 {
		estimatedSize = 0
	}
	m := &Measured{
		estimate: estimatedSize,
		measured: make(map[int]int),
	}
	m.inner = NewVariable(total, m.sizeAt)
	return m
}

func (m *Measured) sizeAt(i int) int {
	if sz, ok := m.measured[i]; ok {
		return sz
	}
	return m.estimate
}

// Record stores an observed size for index i. Callers must call Rebuild
// after recording a batch of measurements so prefix sums reflect them.
func (m *Measured) Record(i, size int) {
	if i < 0 {
		return
	}
	if size < 0 {
		size = 0
	}
	m.measured[i] = size
}

// IsMeasured reports whether index i has an observed size on file.
func (m *Measured) IsMeasured(i int) bool {
	_, ok := m.measured[i]
	return ok
}

// Measurement returns the recorded size for i and whether it was measured.
func (m *Measured) Measurement(i int) (int, bool) {
	sz, ok := m.measured[i]
	return sz, ok
}

// SetEstimate updates the fallback estimate used for unmeasured indices.
// Does not itself trigger a rebuild.
func (m *Measured) SetEstimate(size int) {
	if size < 0 {
		size = 0
	}
	m.estimate = size
}

func (m *Measured) Rebuild(total int) {
	if total < 0 {
		total = 0
	}
	// Drop measurements for indices that no longer exist so a shrink
	// doesn't leak stale entries that could resurface after a later growth.
	for i := range m.measured {
		if i >= total {
			delete(m.measured, i)
		}
	}
	m.inner.Rebuild(total)
}

func (m *Measured) Offset(i int) int        { return m.inner.Offset(i) }
func (m *Measured) Size(i int) int          { return m.inner.Size(i) }
func (m *Measured) IndexAtOffset(x int) int { return m.inner.IndexAtOffset(x) }
func (m *Measured) TotalSize() int          { return m.inner.TotalSize() }
func (m *Measured) Total() int              { return m.inner.Total() }
func (m *Measured) IsVariable() bool        { return true }
