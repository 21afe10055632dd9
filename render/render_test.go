package render

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vlist-tui/vlist/compress"
	"github.com/vlist-tui/vlist/sizecache"
	"github.com/vlist-tui/vlist/viewport"
)

type testItem struct {
	id   string
	text string
}

func (i testItem) ItemID() string { return i.id }

func makeItems(n int) []testItem {
	items := make([]testItem, n)
	for i := range items {
		items[i] = testItem{id: strconv.Itoa(i), text: "row " + strconv.Itoa(i)}
	}
	return items
}

// itemAt adapts a plain slice to the index-addressed accessor Render takes,
// standing in for the sparse data.Manager lookup a real caller would pass.
func itemAt(items []testItem) func(int) (testItem, bool) {
	return func(idx int) (testItem, bool) {
		if idx < 0 || idx >= len(items) {
			return testItem{}, false
		}
		return items[idx], true
	}
}

func TestPoolAcquireReleaseReuse(t *testing.T) {
	p := NewPool("option")
	c1 := p.Acquire()
	if c1.Role != "option" {
		t.Fatalf("role not stamped on creation")
	}
	p.Release(c1)
	c2 := p.Acquire()
	if c2 != c1 {
		t.Fatalf("expected reused cell identity")
	}
	stats := p.Stats()
	if stats.Created != 1 || stats.Reused != 1 {
		t.Fatalf("stats = %+v, want Created=1 Reused=1", stats)
	}
}

func TestPoolReleaseClearsDynamicState(t *testing.T) {
	p := NewPool("option")
	c := p.Acquire()
	c.Index = 5
	c.Content = "hello"
	c.Selected = true
	p.Release(c)
	c2 := p.Acquire()
	if c2.Content != "" || c2.Selected || c2.Index != 0 {
		t.Fatalf("release did not clear dynamic fields: %+v", c2)
	}
	if c2.Role != "option" {
		t.Fatalf("release must not clear the static role")
	}
}

func TestRendererRangeInvariant(t *testing.T) {
	items := makeItems(100)
	cache := sizecache.NewFixed(100, 1)
	st := compress.Compute(100, cache)

	r := NewRenderer[testItem]("option", func(it testItem, idx int, c *Cell) string {
		return it.text
	}, Vertical)

	rng := viewport.Range{Start: 10, End: 20}
	frame := r.Render(itemAt(items), rng, nil, -1, cache, st, 10, false)

	if len(r.cells) != 10 {
		t.Fatalf("expected 10 tracked cells, got %d", len(r.cells))
	}
	for i := 10; i < 20; i++ {
		if _, ok := r.cells[i]; !ok {
			t.Fatalf("index %d missing from tracked cells", i)
		}
		if _, ok := frame.Positions[i]; !ok {
			t.Fatalf("index %d missing from frame positions", i)
		}
	}
}

func TestRendererDiffReleasesLeavingIndices(t *testing.T) {
	items := makeItems(100)
	cache := sizecache.NewFixed(100, 1)
	st := compress.Compute(100, cache)

	r := NewRenderer[testItem]("option", func(it testItem, idx int, c *Cell) string {
		return it.text
	}, Vertical)

	r.Render(itemAt(items), viewport.Range{Start: 0, End: 10}, nil, -1, cache, st, 10, false)
	r.Render(itemAt(items), viewport.Range{Start: 5, End: 15}, nil, -1, cache, st, 10, false)

	for i := 0; i < 5; i++ {
		if _, ok := r.cells[i]; ok {
			t.Fatalf("index %d should have been released", i)
		}
	}
	for i := 5; i < 15; i++ {
		if _, ok := r.cells[i]; !ok {
			t.Fatalf("index %d should still be tracked", i)
		}
	}
	stats := r.Stats()
	if stats.Reused == 0 {
		t.Fatalf("overlapping re-render should reuse at least one cell")
	}
}

func TestRendererEmptyRangeClears(t *testing.T) {
	items := makeItems(10)
	cache := sizecache.NewFixed(10, 1)
	st := compress.Compute(10, cache)

	r := NewRenderer[testItem]("option", func(it testItem, idx int, c *Cell) string {
		return it.text
	}, Vertical)

	r.Render(itemAt(items), viewport.Range{Start: 0, End: 5}, nil, -1, cache, st, 5, false)
	frame := r.Render(itemAt(items), viewport.Range{Start: 3, End: 3}, nil, -1, cache, st, 5, false)

	if len(r.cells) != 0 {
		t.Fatalf("empty range render should clear all cells, got %d", len(r.cells))
	}
	if len(frame.Positions) != 0 {
		t.Fatalf("empty range render should produce no positions")
	}
}

func TestRendererInvalidRangeIsNoOp(t *testing.T) {
	items := makeItems(10)
	cache := sizecache.NewFixed(10, 1)
	st := compress.Compute(10, cache)

	r := NewRenderer[testItem]("option", func(it testItem, idx int, c *Cell) string {
		return it.text
	}, Vertical)

	r.Render(itemAt(items), viewport.Range{Start: 0, End: 5}, nil, -1, cache, st, 5, false)
	before := len(r.cells)
	r.Render(itemAt(items), viewport.Range{Start: 5, End: 2}, nil, -1, cache, st, 5, false)
	if len(r.cells) != before {
		t.Fatalf("invalid range (end<start) must be a no-op")
	}
}

func TestApplyMeasurementsScrollDelta(t *testing.T) {
	cache := sizecache.NewMeasured(1000, 100)
	cache.Rebuild(1000)

	batch := []Measurement{
		{Index: 2, Size: 150}, // above firstVisible=50 -> contributes delta
		{Index: 60, Size: 150}, // below firstVisible -> no delta
	}
	res := ApplyMeasurements(cache, 1000, 50, batch)
	require.Equal(t, 50, res.ScrollDelta, "only index 2 sits above firstVisible")
	require.True(t, res.TotalSizeChanged, "measurements increased total size")
}

func TestPlaceholderID(t *testing.T) {
	require.Equal(t, "__placeholder_42", PlaceholderID(42))
}
