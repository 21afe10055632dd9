package feature

import (
	"testing"

	"github.com/vlist-tui/vlist"
)

func filterConfig() FilterConfig[item] {
	return FilterConfig[item]{Extract: func(it item) string { return it.text }}
}

func TestFilterNarrowsToMatchingItems(t *testing.T) {
	c := baseConfig(20)
	inst, err := vlist.New(c).Use(WithFilter[item](filterConfig())).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if _, err := inst.Call("filterQuery", "item 1"); err != nil {
		t.Fatalf("filterQuery failed: %v", err)
	}
	total := inst.Total()
	// "item 1" subsequence-matches item 1, 10-19 (11 total).
	if total == 0 || total == 20 {
		t.Fatalf("Total() = %d, want a narrowed subset", total)
	}
	active, _ := inst.Call("filterActive")
	if !active.(bool) {
		t.Fatalf("expected filterActive true once a query is set")
	}
}

func TestFilterEmptyQueryRestoresAll(t *testing.T) {
	c := baseConfig(20)
	inst, err := vlist.New(c).Use(WithFilter[item](filterConfig())).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	inst.Call("filterQuery", "item 1")
	inst.Call("filterQuery", "")
	if inst.Total() != 20 {
		t.Fatalf("Total() = %d, want 20 after clearing the query", inst.Total())
	}
	active, _ := inst.Call("filterActive")
	if active.(bool) {
		t.Fatalf("expected filterActive false once the query is cleared")
	}
}

func TestFilterOriginalIndexMapsBack(t *testing.T) {
	c := baseConfig(20)
	inst, err := vlist.New(c).Use(WithFilter[item](filterConfig())).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	inst.Call("filterQuery", "item 5")
	orig, err := inst.Call("filterOriginalIndex", 0)
	if err != nil {
		t.Fatalf("filterOriginalIndex failed: %v", err)
	}
	if orig.(int) != 5 {
		t.Fatalf("filterOriginalIndex(0) = %v, want 5 (best match for \"item 5\")", orig)
	}
}

func TestFuzzyScoreRequiresInOrderSubsequence(t *testing.T) {
	if _, ok := fuzzyScore("xyz", "item 1"); ok {
		t.Fatalf("expected no match for a query with no corresponding subsequence")
	}
	if _, ok := fuzzyScore("im1", "item 1"); !ok {
		t.Fatalf("expected a subsequence match for \"im1\" in \"item 1\"")
	}
}
