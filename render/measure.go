package render

import "github.com/vlist-tui/vlist/sizecache"

// Measurement is one observed size for an index, arriving in a batch after
// a frame that rendered items unconstrained (Mode B: estimated-size lists
// whose actual size is only known once the content is laid out).
type Measurement struct {
	Index int
	Size  int
}

// MeasurementResult reports the scroll correction and content-size-change
// signal produced by applying a batch of measurements.
type MeasurementResult struct {
	// ScrollDelta is the sum of size changes at indices strictly above
	// firstVisible; apply it to the current scroll position immediately so
	// content appearing/shrinking above the fold doesn't shift the user's
	// place.
	ScrollDelta int
	// TotalSizeChanged reports whether any measurement altered the cache's
	// TotalSize(), signaling the caller should write (or defer, if
	// scrolling) an updated content-size.
	TotalSizeChanged bool
}

// ApplyMeasurements records a batch of measurements into cache, rebuilds its
// prefix sums, and computes the scroll correction for any measured index
// above firstVisible. Mirrors spec.md's Mode B flow: record, rebuild,
// accumulate delta for off-screen changes, let the caller decide whether to
// apply a content-size write now or defer it to idle.
func ApplyMeasurements(cache *sizecache.Measured, total, firstVisible int, batch []Measurement) MeasurementResult {
	beforeTotal := cache.TotalSize()

	type prior struct {
		size int
		had  bool
	}
	before := make(map[int]prior, len(batch))
	for _, m := range batch {
		sz, had := cache.Measurement(m.Index)
		if !had {
			sz = cache.Size(m.Index)
		}
		before[m.Index] = prior{size: sz, had: had}
		cache.Record(m.Index, m.Size)
	}
	cache.Rebuild(total)

	delta := 0
	for _, m := range batch {
		if m.Index >= firstVisible {
			continue
		}
		delta += m.Size - before[m.Index].size
	}

	return MeasurementResult{
		ScrollDelta:      delta,
		TotalSizeChanged: cache.TotalSize() != beforeTotal,
	}
}
