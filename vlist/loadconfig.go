package vlist

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig is the TOML-decodable subset of Config: every plain-data
// knob a deployment might want to tune without a recompile. Functions
// (Item.Template, Item.Height/Width, Items itself) can only be set in
// code, so they have no FileConfig counterpart.
type FileConfig struct {
	Overscan        int    `toml:"overscan"`
	Orientation     string `toml:"orientation"` // "vertical" or "horizontal"
	Reverse         bool   `toml:"reverse"`
	ClassPrefix     string `toml:"class_prefix"`
	AriaLabel       string `toml:"aria_label"`
	ContainerSize   int    `toml:"container_size"`
	EstimatedHeight int    `toml:"estimated_height"`
	EstimatedWidth  int    `toml:"estimated_width"`

	Scroll struct {
		Wheel       bool   `toml:"wheel"`
		Wrap        bool   `toml:"wrap"`
		IdleTimeoutMS int  `toml:"idle_timeout_ms"`
		Scrollbar   string `toml:"scrollbar"`
	} `toml:"scroll"`
}

// LoadConfig reads a FileConfig from a TOML file at path. Missing keys
// simply leave the corresponding FileConfig field at its zero value.
func LoadConfig(path string) (FileConfig, error) {
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("vlist: load config %s: %w", path, err)
	}
	return fc, nil
}

// Merge overlays fc's fields onto c, seeding the plain-data knobs from
// file before the caller sets the function-valued fields (Item.Template
// and friends) that only code can provide. Call before .Build(), and
// before any programmatic overrides you want to take precedence over
// the file.
func (c Config[T]) Merge(fc FileConfig) Config[T] {
	if fc.Overscan != 0 {
		c.Overscan = fc.Overscan
	}
	switch fc.Orientation {
	case "horizontal":
		c.Orientation = Horizontal
	case "vertical":
		c.Orientation = Vertical
	}
	c.Reverse = fc.Reverse
	if fc.ClassPrefix != "" {
		c.ClassPrefix = fc.ClassPrefix
	}
	if fc.AriaLabel != "" {
		c.AriaLabel = fc.AriaLabel
	}
	if fc.ContainerSize != 0 {
		c.ContainerSize = fc.ContainerSize
	}
	if fc.EstimatedHeight != 0 {
		c.Item.EstimatedHeight = fc.EstimatedHeight
	}
	if fc.EstimatedWidth != 0 {
		c.Item.EstimatedWidth = fc.EstimatedWidth
	}

	c.Scroll.Wheel = fc.Scroll.Wheel
	c.Scroll.Wrap = fc.Scroll.Wrap
	if fc.Scroll.IdleTimeoutMS != 0 {
		c.Scroll.IdleTimeout = time.Duration(fc.Scroll.IdleTimeoutMS) * time.Millisecond
	}
	if fc.Scroll.Scrollbar != "" {
		c.Scroll.Scrollbar = fc.Scroll.Scrollbar
	}
	return c
}
