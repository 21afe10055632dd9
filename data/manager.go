// Package data implements the async, sparse-loaded item store used when a
// list is backed by a remote adapter instead of an in-memory slice.
//
// Items are kept in fixed-size chunks, loaded on demand, evicted under an
// LRU policy outside a protection zone around the visible range, and
// synthesized as shape-matching placeholders for indices nothing has
// loaded yet — the terminal-independent core of spec.md §4.10, grounded on
// gioverse-chat's Loader/Resource/worker-pool shape as the closest pack
// analogue to a frame-staleness-aware async resource loader.
package data

import (
	"context"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/vlist-tui/vlist/internal/debug"
	"github.com/vlist-tui/vlist/internal/errreport"
	"github.com/vlist-tui/vlist/internal/metrics"
)

// DefaultChunkSize matches spec.md's sparse store default.
const DefaultChunkSize = 100

// DefaultMaxCachedItems and DefaultEvictionBuffer match spec.md §3's sparse
// data store defaults.
const (
	DefaultMaxCachedItems  = 10_000
	DefaultEvictionBuffer  = 500
	DefaultInitialPageSize = 50
)

// ReadResult is what an Adapter returns for one page of items.
type ReadResult[T any] struct {
	Items      []T
	Total      int // total item count known to the adapter, -1 if unknown
	NextCursor string
}

// Adapter is the caller-supplied data source. Read is expected to block
// until the page is available or ctx is cancelled; the manager dispatches
// it off the UI goroutine via a tea.Cmd.
type Adapter[T any] interface {
	Read(ctx context.Context, offset, limit int, cursor string) (ReadResult[T], error)
}

// Range is a half-open index span used for loadedRanges bookkeeping.
type Range struct{ Start, End int }

// Manager is the sparse, chunked, LRU-evicting item store.
type Manager[T any] struct {
	adapter   Adapter[T]
	chunkSize int

	mu           sync.Mutex
	chunks       map[int][]T // chunkIndex -> items
	loadedRanges []Range     // sorted, merged, disjoint
	total        int
	cursor       string
	pending      map[string]struct{} // rangeKey of in-flight requests, for dedup
	lruTouch     map[int]int64       // chunkIndex -> logical touch counter
	touchCounter int64
	sampleItems  []T // up to N loaded items, used for placeholder shape sampling

	maxCachedItems int
	evictionBuffer int

	limiter *rate.Limiter
	metrics metrics.Metrics
}

// Option configures a Manager at construction.
type Option[T any] func(*Manager[T])

// WithChunkSize overrides DefaultChunkSize.
func WithChunkSize[T any](size int) Option[T] {
	return func(m *Manager[T]) {
		if size > 0 {
			m.chunkSize = size
		}
	}
}

// WithCacheLimits overrides DefaultMaxCachedItems/DefaultEvictionBuffer.
func WithCacheLimits[T any](maxCached, evictionBuffer int) Option[T] {
	return func(m *Manager[T]) {
		m.maxCachedItems = maxCached
		m.evictionBuffer = evictionBuffer
	}
}

// WithMetrics installs a metrics.Metrics sink; defaults to the global one.
func WithMetrics[T any](mx metrics.Metrics) Option[T] {
	return func(m *Manager[T]) { m.metrics = mx }
}

// NewManager constructs a Manager over adapter.
func NewManager[T any](adapter Adapter[T], opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		adapter:        adapter,
		chunkSize:      DefaultChunkSize,
		chunks:         make(map[int][]T),
		pending:        make(map[string]struct{}),
		lruTouch:       make(map[int]int64),
		maxCachedItems: DefaultMaxCachedItems,
		evictionBuffer: DefaultEvictionBuffer,
		limiter:        rate.NewLimiter(rate.Limit(8), 8),
		metrics:        metrics.GetGlobalMetrics(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Total returns the last known total item count (may exceed loaded count).
func (m *Manager[T]) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Item returns the item at index i if loaded, or a synthesized placeholder
// and false otherwise.
func (m *Manager[T]) Item(i int) (item T, loaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chunkIdx := i / m.chunkSize
	offsetInChunk := i % m.chunkSize
	if chunk, ok := m.chunks[chunkIdx]; ok && offsetInChunk < len(chunk) {
		m.touchCounter++
		m.lruTouch[chunkIdx] = m.touchCounter
		m.metrics.RecordCacheHit()
		return chunk[offsetInChunk], true
	}
	m.metrics.RecordCacheMiss()
	return Placeholder[T](m.sampleItems, i), false
}

// missingGaps returns the sub-ranges of [offset, offset+limit) not covered
// by loadedRanges, with contiguous/adjacent gaps merged.
func (m *Manager[T]) missingGaps(offset, limit int) []Range {
	want := Range{Start: offset, End: offset + limit}
	covered := make([]bool, limit)
	for _, r := range m.loadedRanges {
		lo := max(r.Start, want.Start)
		hi := min(r.End, want.End)
		for i := lo; i < hi; i++ {
			covered[i-want.Start] = true
		}
	}
	var gaps []Range
	i := 0
	for i < limit {
		if covered[i] {
			i++
			continue
		}
		start := i
		for i < limit && !covered[i] {
			i++
		}
		gaps = append(gaps, Range{Start: want.Start + start, End: want.Start + i})
	}
	return gaps
}

func rangeKey(r Range) string {
	return itoa(r.Start) + ":" + itoa(r.End)
}

// loadResultMsg is delivered back to the bubbletea Update loop once an
// adapter fetch resolves (success or failure).
type loadResultMsg[T any] struct {
	gap      Range
	result   ReadResult[T]
	err      error
	duration time.Duration
}

// StartLoadMsg / EndLoadMsg are emitted (via the returned cmds, not the
// event.Emitter directly, to stay on the bubbletea message path) so a
// caller's Update loop can toggle loading indicators without reaching into
// the manager's internals.
type StartLoadMsg struct{ Range Range }
type EndLoadMsg struct {
	Range Range
	Err   error
}

// EnsureRange is the read-before-write guard: it computes missing gaps
// within [offset, offset+limit) and returns a batch of tea.Cmd, one per
// gap not already in flight, that fetch and merge results when run.
// Gating on velocity (cancelThreshold/preloadThreshold) is the caller's
// responsibility via Gate.Decide and EnsureRangeGated, matching spec.md's "no adapter
// cancellation, just suppress new requests" policy.
func (m *Manager[T]) EnsureRange(offset, limit int) []tea.Cmd {
	m.mu.Lock()
	gaps := m.missingGaps(offset, limit)
	var toFetch []Range
	for _, g := range gaps {
		key := rangeKey(g)
		if _, inFlight := m.pending[key]; inFlight {
			continue
		}
		m.pending[key] = struct{}{}
		toFetch = append(toFetch, g)
	}
	m.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(toFetch))
	for _, g := range toFetch {
		cmds = append(cmds, m.fetchCmd(g))
	}
	return cmds
}

func (m *Manager[T]) fetchCmd(g Range) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx := context.Background()
		res, err := m.adapter.Read(ctx, g.Start, g.End-g.Start, m.cursorSnapshot())
		return loadResultMsg[T]{gap: g, result: res, err: err, duration: time.Since(start)}
	}
}

func (m *Manager[T]) cursorSnapshot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// HandleMsg is the exported entry point for a host bubbletea Update loop:
// it recognizes the Manager's own internal load-result message type (not
// nameable outside this package) and delegates to HandleLoadResult,
// returning ok=false for any message the Manager doesn't own.
func (m *Manager[T]) HandleMsg(msg tea.Msg) (changed bool, err error, ok bool) {
	lr, isLoadResult := msg.(loadResultMsg[T])
	if !isLoadResult {
		return false, nil, false
	}
	changed, err = m.HandleLoadResult(lr)
	return changed, err, true
}

// HandleLoadResult merges a resolved or failed fetch into the store. It
// returns the StartLoad/EndLoad-equivalent info for the caller to emit on
// its event.Emitter, and whether the merge changed loaded content (so the
// caller knows to trigger a re-render).
func (m *Manager[T]) HandleLoadResult(msg loadResultMsg[T]) (changed bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pending, rangeKey(msg.gap))
	m.metrics.RecordChunkLoad(msg.duration, msg.err == nil)

	if msg.err != nil {
		errreport.ReportError(msg.err, errreport.Context{Kind: "adapter", Detail: rangeKey(msg.gap)})
		debug.Logf("data: adapter read failed for %v: %v", msg.gap, msg.err)
		return false, msg.err
	}

	if msg.result.Total >= 0 {
		m.total = msg.result.Total
	}
	if msg.result.NextCursor != "" {
		m.cursor = msg.result.NextCursor
	}

	for i, item := range msg.result.Items {
		idx := msg.gap.Start + i
		if idx >= msg.gap.End {
			break
		}
		m.setItem(idx, item)
		if len(m.sampleItems) < 16 {
			m.sampleItems = append(m.sampleItems, item)
		}
	}
	m.mergeLoadedRange(msg.gap)
	m.evictIfNeeded(-1)
	return true, nil
}

func (m *Manager[T]) setItem(index int, item T) {
	chunkIdx := index / m.chunkSize
	offsetInChunk := index % m.chunkSize
	chunk, ok := m.chunks[chunkIdx]
	if !ok {
		chunk = make([]T, m.chunkSize)
	}
	if offsetInChunk >= len(chunk) {
		grown := make([]T, offsetInChunk+1)
		copy(grown, chunk)
		chunk = grown
	}
	chunk[offsetInChunk] = item
	m.chunks[chunkIdx] = chunk
	m.touchCounter++
	m.lruTouch[chunkIdx] = m.touchCounter
}

func (m *Manager[T]) mergeLoadedRange(r Range) {
	ranges := append(m.loadedRanges, r)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	merged := ranges[:0]
	for _, cur := range ranges {
		if len(merged) > 0 && cur.Start <= merged[len(merged)-1].End {
			if cur.End > merged[len(merged)-1].End {
				merged[len(merged)-1].End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}
	m.loadedRanges = merged
}

// cachedItemCount counts loaded items across all chunks, diagnostic and
// eviction-threshold use only.
func (m *Manager[T]) cachedItemCount() int {
	n := 0
	for _, r := range m.loadedRanges {
		n += r.End - r.Start
	}
	return n
}

// evictIfNeeded drops least-recently-touched chunks once the cached item
// count exceeds maxCachedItems, leaving a protection zone of
// evictionBuffer items around protectCenter (the current visible range's
// midpoint; -1 means "no protection zone known yet, evict purely by LRU").
func (m *Manager[T]) evictIfNeeded(protectCenter int) {
	if m.cachedItemCount() <= m.maxCachedItems {
		return
	}
	type entry struct {
		chunk int
		touch int64
	}
	entries := make([]entry, 0, len(m.chunks))
	for idx, t := range m.lruTouch {
		entries = append(entries, entry{chunk: idx, touch: t})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].touch < entries[j].touch })

	for _, e := range entries {
		if m.cachedItemCount() <= m.maxCachedItems {
			break
		}
		chunkStart := e.chunk * m.chunkSize
		chunkEnd := chunkStart + m.chunkSize
		if protectCenter >= 0 {
			if chunkEnd >= protectCenter-m.evictionBuffer && chunkStart <= protectCenter+m.evictionBuffer {
				continue // inside protection zone, skip
			}
		}
		delete(m.chunks, e.chunk)
		delete(m.lruTouch, e.chunk)
		m.removeFromLoadedRanges(Range{Start: chunkStart, End: chunkEnd})
		m.metrics.RecordChunkEviction()
	}
}

func (m *Manager[T]) removeFromLoadedRanges(evicted Range) {
	var next []Range
	for _, r := range m.loadedRanges {
		if evicted.End <= r.Start || evicted.Start >= r.End {
			next = append(next, r)
			continue
		}
		if evicted.Start > r.Start {
			next = append(next, Range{Start: r.Start, End: evicted.Start})
		}
		if evicted.End < r.End {
			next = append(next, Range{Start: evicted.End, End: r.End})
		}
	}
	m.loadedRanges = next
}

// Reload clears all chunks, loaded ranges, and pending requests, then
// returns a tea.Cmd that loads the first page of size pageSize from
// offset 0 (pageSize <= 0 uses DefaultInitialPageSize).
func (m *Manager[T]) Reload(pageSize int) tea.Cmd {
	if pageSize <= 0 {
		pageSize = DefaultInitialPageSize
	}
	m.mu.Lock()
	m.chunks = make(map[int][]T)
	m.loadedRanges = nil
	m.pending = make(map[string]struct{})
	m.lruTouch = make(map[int]int64)
	m.cursor = ""
	m.sampleItems = nil
	m.mu.Unlock()

	cmds := m.EnsureRange(0, pageSize)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// RemoveItem drops the item at index from its chunk, shifting nothing
// else — downstream prefix-sum rebuild is the caller's (sizecache)
// responsibility once it observes the shrink.
func (m *Manager[T]) RemoveItem(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chunkIdx := index / m.chunkSize
	offsetInChunk := index % m.chunkSize
	chunk, ok := m.chunks[chunkIdx]
	if !ok || offsetInChunk >= len(chunk) {
		return
	}
	var zero T
	chunk[offsetInChunk] = zero
	m.removeFromLoadedRanges(Range{Start: index, End: index + 1})
	if m.total > 0 {
		m.total--
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
