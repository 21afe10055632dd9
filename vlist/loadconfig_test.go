package vlist

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vlist.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDecodesFields(t *testing.T) {
	path := writeTOML(t, `
overscan = 5
orientation = "horizontal"
class_prefix = "mylist"
container_size = 24

[scroll]
wheel = true
wrap = true
idle_timeout_ms = 250
scrollbar = "native"
`)

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if fc.Overscan != 5 {
		t.Fatalf("Overscan = %d, want 5", fc.Overscan)
	}
	if fc.Orientation != "horizontal" {
		t.Fatalf("Orientation = %q, want horizontal", fc.Orientation)
	}
	if fc.ClassPrefix != "mylist" {
		t.Fatalf("ClassPrefix = %q, want mylist", fc.ClassPrefix)
	}
	if fc.ContainerSize != 24 {
		t.Fatalf("ContainerSize = %d, want 24", fc.ContainerSize)
	}
	if !fc.Scroll.Wheel || !fc.Scroll.Wrap {
		t.Fatalf("expected scroll.wheel and scroll.wrap true, got %+v", fc.Scroll)
	}
	if fc.Scroll.IdleTimeoutMS != 250 {
		t.Fatalf("IdleTimeoutMS = %d, want 250", fc.Scroll.IdleTimeoutMS)
	}
	if fc.Scroll.Scrollbar != "native" {
		t.Fatalf("Scrollbar = %q, want native", fc.Scroll.Scrollbar)
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfigMergeOverlaysFileValuesOntoDefaults(t *testing.T) {
	c := baseConfig(10)
	fc := FileConfig{
		Overscan:      7,
		Orientation:   "horizontal",
		ClassPrefix:   "seeded",
		ContainerSize: 42,
	}
	fc.Scroll.Wheel = true
	fc.Scroll.IdleTimeoutMS = 300

	merged := c.Merge(fc)

	if merged.Overscan != 7 {
		t.Fatalf("Overscan = %d, want 7", merged.Overscan)
	}
	if merged.Orientation != Horizontal {
		t.Fatalf("Orientation = %v, want Horizontal", merged.Orientation)
	}
	if merged.ClassPrefix != "seeded" {
		t.Fatalf("ClassPrefix = %q, want seeded", merged.ClassPrefix)
	}
	if merged.ContainerSize != 42 {
		t.Fatalf("ContainerSize = %d, want 42", merged.ContainerSize)
	}
	if merged.Scroll.IdleTimeout != 300*time.Millisecond {
		t.Fatalf("IdleTimeout = %v, want 300ms", merged.Scroll.IdleTimeout)
	}
	// Functions from the original programmatic config survive the merge
	// untouched, since FileConfig has no counterpart for them.
	if merged.Item.Template == nil {
		t.Fatalf("expected Item.Template to survive Merge")
	}
}

func TestConfigMergeLeavesUnsetFieldsAlone(t *testing.T) {
	c := baseConfig(10)
	c.Overscan = 9
	merged := c.Merge(FileConfig{})
	if merged.Overscan != 9 {
		t.Fatalf("Overscan = %d, want unchanged 9", merged.Overscan)
	}
}
