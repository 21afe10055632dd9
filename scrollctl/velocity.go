package scrollctl

// VelocityTracker is a fixed-size circular buffer of (position, time)
// samples used to estimate scroll velocity in cells per millisecond.
//
// A gap of more than staleGapMillis between samples resets tracking
// entirely (the user stopped and started scrolling, or this is the first
// sample since idle): the buffer is seeded with just the new sample and
// velocity reads as 0 until a second sample arrives. isTracking only
// becomes true once sampleCount reaches minReliable, so callers that gate
// decisions on velocity (async preload/cancel thresholds) don't act on a
// single noisy sample right after scrolling resumes.
type VelocityTracker struct {
	positions   []int
	times       []int64 // milliseconds
	size        int
	head        int
	sampleCount int
	minReliable int

	lastPos  int
	lastTime int64
	hasLast  bool
}

const staleGapMillis = 100

// NewVelocityTracker creates a tracker with the given circular-buffer size
// and reliability threshold (spec.md §4.6: size 8/minReliable 3 for
// scrollbar consumers, size 5/minReliable 2 for async consumers).
func NewVelocityTracker(size, minReliable int) *VelocityTracker {
	if size < 1 {
		size = 1
	}
	if minReliable < 1 {
		minReliable = 1
	}
	return &VelocityTracker{
		positions:   make([]int, size),
		times:       make([]int64, size),
		size:        size,
		minReliable: minReliable,
	}
}

// Update records a new (position, nowMillis) sample and returns the
// average velocity, in position units per millisecond, from the oldest
// buffered sample to this one.
func (v *VelocityTracker) Update(position int, nowMillis int64) float64 {
	if v.hasLast && nowMillis-v.lastTime > staleGapMillis {
		v.reset(position, nowMillis)
		return 0
	}
	if !v.hasLast {
		v.reset(position, nowMillis)
		return 0
	}

	v.positions[v.head] = position
	v.times[v.head] = nowMillis
	v.head = (v.head + 1) % v.size
	if v.sampleCount < v.size {
		v.sampleCount++
	}
	v.lastPos = position
	v.lastTime = nowMillis

	if v.sampleCount < 2 {
		return 0
	}

	oldestIdx := v.head
	if v.sampleCount < v.size {
		oldestIdx = 0
	}
	oldestPos := v.positions[oldestIdx]
	oldestTime := v.times[oldestIdx]
	dt := nowMillis - oldestTime
	if dt <= 0 {
		return 0
	}
	return float64(position-oldestPos) / float64(dt)
}

func (v *VelocityTracker) reset(position int, nowMillis int64) {
	for i := range v.positions {
		v.positions[i] = 0
		v.times[i] = 0
	}
	v.positions[0] = position
	v.times[0] = nowMillis
	v.head = 1 % v.size
	v.sampleCount = 1
	v.hasLast = true
	v.lastPos = position
	v.lastTime = nowMillis
}

// IsTracking reports whether enough samples have accumulated since the
// last reset for Velocity readings to be considered reliable.
func (v *VelocityTracker) IsTracking() bool {
	return v.sampleCount >= v.minReliable
}

// SampleCount returns the number of samples accumulated since the last
// stale-gap reset, saturating at the buffer size.
func (v *VelocityTracker) SampleCount() int { return v.sampleCount }
