// Package vlist builds and drives a virtualized, scrollable list over a
// bubbletea program: only the items within the current render range are
// ever rendered, regardless of how many items the list logically holds.
package vlist

import (
	"time"

	"github.com/vlist-tui/vlist/internal/metrics"
	"github.com/vlist-tui/vlist/render"
)

// Orientation selects the main scrolling axis.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Align selects where ScrollToIndex positions the target item.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// SizeFunc computes the main-axis size of the item at index.
type SizeFunc func(index int) int

// ItemConfig describes how items are sized and rendered. At least one of
// (Height/Width) or (EstimatedHeight/EstimatedWidth) must be set for the
// configured Orientation; explicit size always wins over an estimate if
// both are set.
type ItemConfig[T render.Identifiable] struct {
	Height          SizeFunc
	Width           SizeFunc
	EstimatedHeight int
	EstimatedWidth  int
	Template        render.Template[T]
}

// ScrollConfig configures the scroll controller a Builder constructs.
type ScrollConfig struct {
	Wheel       bool
	Wrap        bool
	IdleTimeout time.Duration
	// Scrollbar selects "native" (no custom rendering), "none" (no
	// scrollbar at all), or "" (default: custom scrollbar feature, if
	// registered via feature.WithScrollbar).
	Scrollbar string
}

// DefaultScrollConfig matches spec.md's documented defaults.
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{Wheel: true, Wrap: false, IdleTimeout: 150 * time.Millisecond}
}

// Config is the core Builder configuration, the terminal analogue of
// spec.md §6's BuilderConfig/ItemConfig.
type Config[T render.Identifiable] struct {
	Items       []T
	Item        ItemConfig[T]
	Overscan    int
	Orientation Orientation
	Reverse     bool
	ClassPrefix string
	AriaLabel   string
	Scroll      ScrollConfig

	// ContainerSize is the main-axis extent (rows for Vertical, columns
	// for Horizontal) of the viewport this list renders into — the
	// terminal equivalent of the DOM container element's measured size.
	ContainerSize int

	// Metrics receives render/pool/scroll counters as the instance runs;
	// defaults to metrics.GetGlobalMetrics() (a no-op unless the host
	// process has called metrics.SetGlobalMetrics).
	Metrics metrics.Metrics
}

// DefaultConfig returns a Config with spec.md's documented defaults
// (Overscan 3, Vertical orientation, classPrefix "vlist").
func DefaultConfig[T render.Identifiable]() Config[T] {
	return Config[T]{
		Overscan:    3,
		Orientation: Vertical,
		ClassPrefix: "vlist",
		Scroll:      DefaultScrollConfig(),
		Metrics:     metrics.GetGlobalMetrics(),
	}
}

func (c Config[T]) sizeFunc() SizeFunc {
	if c.Orientation == Horizontal {
		return c.Item.Width
	}
	return c.Item.Height
}

func (c Config[T]) estimatedSize() int {
	if c.Orientation == Horizontal {
		return c.Item.EstimatedWidth
	}
	return c.Item.EstimatedHeight
}

func (c Config[T]) hasExplicitSize() bool {
	return c.sizeFunc() != nil
}

func (c Config[T]) hasEstimatedSize() bool {
	return c.estimatedSize() > 0
}
