package feature

import (
	"testing"

	"github.com/vlist-tui/vlist"
)

func TestSnapshotCapturesPositionAndSelection(t *testing.T) {
	c := baseConfig(1000)
	inst, err := vlist.New(c).
		Use(WithSelection[item](SelectionConfig{Mode: SelectionMultiple})).
		Use(WithSnapshots[item]()).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	inst.ScrollToIndex(400, vlist.AlignStart, false, 0)
	ctx := inst.Context()
	ctx.State.SelectedIDs["7"] = true

	snapAny, err := inst.Call("getScrollSnapshot")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	snap := snapAny.(Snapshot)
	if snap.Index != 400 {
		t.Fatalf("snap.Index = %d, want 400", snap.Index)
	}
	if snap.Total != 1000 {
		t.Fatalf("snap.Total = %d, want 1000", snap.Total)
	}
	if len(snap.SelectedIDs) != 1 || snap.SelectedIDs[0] != "7" {
		t.Fatalf("snap.SelectedIDs = %v, want [7]", snap.SelectedIDs)
	}
}

func TestSnapshotRestoreReproducesPosition(t *testing.T) {
	c := baseConfig(1000)
	inst, err := vlist.New(c).Use(WithSnapshots[item]()).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	inst.ScrollToIndex(600, vlist.AlignStart, false, 0)
	snapAny, _ := inst.Call("getScrollSnapshot")
	snap := snapAny.(Snapshot)

	inst.ScrollToIndex(0, vlist.AlignStart, false, 0)
	if inst.GetScrollPosition() != 0 {
		t.Fatalf("expected scroll reset to 0 before restore")
	}

	if _, err := inst.Call("restoreScroll", snap); err != nil {
		t.Fatalf("restoreScroll failed: %v", err)
	}
	if inst.GetScrollPosition() != 600 {
		t.Fatalf("GetScrollPosition() = %d, want 600 after restore", inst.GetScrollPosition())
	}
}
