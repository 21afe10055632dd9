package feature

import (
	"testing"

	"github.com/vlist-tui/vlist"
)

func TestGridReportsCeiledRowCount(t *testing.T) {
	c := baseConfig(10)
	inst, err := vlist.New(c).Use(WithGrid[item](GridConfig{Columns: 3})).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	// 10 items / 3 columns = 4 rows (ceil).
	if inst.Total() != 4 {
		t.Fatalf("Total() = %d, want 4 rows", inst.Total())
	}
}

func TestGridExactMultipleHasNoPartialRow(t *testing.T) {
	c := baseConfig(9)
	inst, err := vlist.New(c).Use(WithGrid[item](GridConfig{Columns: 3})).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if inst.Total() != 3 {
		t.Fatalf("Total() = %d, want 3 rows", inst.Total())
	}
}

func TestGridRecomputesColumnsOnResize(t *testing.T) {
	c := baseConfig(20)
	inst, err := vlist.New(c).Use(WithGrid[item](GridConfig{Columns: 2, ColumnWidth: 10})).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	ctx := inst.Context()
	colsBefore, _ := inst.Call("gridColumns")
	for _, fn := range ctx.Resize {
		fn(ctx, 50)
	}
	colsAfter, _ := inst.Call("gridColumns")
	if colsAfter.(int) != 5 {
		t.Fatalf("gridColumns() = %v, want 5 after resizing to width 50 with ColumnWidth 10", colsAfter)
	}
	if colsBefore.(int) == colsAfter.(int) {
		t.Fatalf("expected column count to change after resize")
	}
}
