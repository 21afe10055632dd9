package feature

import (
	"strings"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

// filterScored pairs a source index with its match score for sorting.
type filterScored struct {
	index int
	score int
}

// fuzzyScore reports whether every rune in query appears in text in order
// (case-insensitive), and if so a score rewarding tighter, earlier matches.
// This is a minimal, dependency-free stand-in for a true fzf-style scorer:
// it has no smart-case or bonus-character handling, just order-preserving
// subsequence matching with a proximity bonus.
func fuzzyScore(query, text string) (int, bool) {
	if query == "" {
		return 0, true
	}
	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(text))

	score := 0
	ti := 0
	lastMatch := -1
	for _, qr := range q {
		found := false
		for ; ti < len(t); ti++ {
			if t[ti] == qr {
				if lastMatch >= 0 && ti == lastMatch+1 {
					score += 3 // contiguous match
				} else {
					score += 1
				}
				lastMatch = ti
				ti++
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	// Reward matches that start earlier in the text and consume less of it.
	score += max(0, 20-lastMatch)
	return score, true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FilterConfig configures WithFilter.
type FilterConfig[T render.Identifiable] struct {
	// Extract returns the text fuzzy-matched against the query.
	Extract func(item T) string
}

type filterFeature[T render.Identifiable] struct {
	cfg       FilterConfig[T]
	baseItems func() []T
	query     string
	indices   []int // indices[i] = index into the base slice for filtered position i
}

// WithFilter narrows the logical item set to those matching a live query,
// re-deriving Total/SizeCache against the filtered index space. Query
// changes invalidate the size cache since the visible set shrinks/grows;
// callers drive the query through the "filterQuery" method. Conflicts with
// "grid" since both replace Items/VirtualTotal in incompatible ways.
func WithFilter[T render.Identifiable](cfg FilterConfig[T]) vlist.Feature[T] {
	return &filterFeature[T]{cfg: cfg}
}

func (f *filterFeature[T]) Name() string       { return "filter" }
func (f *filterFeature[T]) Priority() int       { return 40 }
func (f *filterFeature[T]) Conflicts() []string { return []string{"grid"} }

func (f *filterFeature[T]) Setup(ctx *vlist.Context[T]) error {
	f.baseItems = ctx.Items
	if f.baseItems == nil {
		f.baseItems = func() []T { return ctx.Config.Items }
	}
	f.reset()

	ctx.Items = func() []T {
		base := f.baseItems()
		out := make([]T, len(f.indices))
		for i, orig := range f.indices {
			if orig < len(base) {
				out[i] = base[orig]
			}
		}
		return out
	}
	ctx.VirtualTotal = func() int { return len(f.indices) }

	ctx.Methods["filterQuery"] = func(args ...any) (any, error) {
		if len(args) == 0 {
			return f.query, nil
		}
		q, _ := args[0].(string)
		f.update(ctx, q)
		return nil, nil
	}
	ctx.Methods["filterActive"] = func(args ...any) (any, error) {
		return f.query != "", nil
	}
	ctx.Methods["filterOriginalIndex"] = func(args ...any) (any, error) {
		if len(args) == 0 {
			return -1, nil
		}
		idx, _ := args[0].(int)
		if idx < 0 || idx >= len(f.indices) {
			return -1, nil
		}
		return f.indices[idx], nil
	}
	return nil
}

func (f *filterFeature[T]) reset() {
	base := f.baseItems()
	f.indices = make([]int, len(base))
	for i := range f.indices {
		f.indices[i] = i
	}
	f.query = ""
}

func (f *filterFeature[T]) update(ctx *vlist.Context[T], query string) {
	if query == f.query {
		return
	}
	f.query = query
	if query == "" {
		f.reset()
		f.afterFilterChange(ctx)
		return
	}

	base := f.baseItems()
	matches := make([]filterScored, 0, len(base))
	for i, item := range base {
		text := f.cfg.Extract(item)
		if score, ok := fuzzyScore(query, text); ok {
			matches = append(matches, filterScored{index: i, score: score})
		}
	}
	for i := 1; i < len(matches); i++ {
		j := i
		for j > 0 && scoredLess(matches[j], matches[j-1]) {
			matches[j], matches[j-1] = matches[j-1], matches[j]
			j--
		}
	}

	f.indices = f.indices[:0]
	for _, m := range matches {
		f.indices = append(f.indices, m.index)
	}
	f.afterFilterChange(ctx)
}

func scoredLess(a, b filterScored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.index < b.index
}

func (f *filterFeature[T]) afterFilterChange(ctx *vlist.Context[T]) {
	total := ctx.Total()
	ctx.State.Total = total
	if ctx.SizeCache != nil {
		ctx.SizeCache.Rebuild(total)
		max := ctx.SizeCache.TotalSize() - ctx.Config.ContainerSize
		if max < 0 {
			max = 0
		}
		ctx.Scroll.SetMaxScroll(max)
	}
	ctx.Emit("filter:change", map[string]any{"query": f.query, "count": total})
}
