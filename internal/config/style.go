package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/ww3anim/internal/render"
)

// Style is a reusable YAML preset pinning the palette and per-channel color
// ranges, so repeated renders of the same product line come out identical.
type Style struct {
	Palette  string                  `yaml:"palette"`
	Channels map[string]ChannelStyle `yaml:"channels"`
}

// ChannelStyle pins one channel's color range by channel name.
type ChannelStyle struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// LoadStyle reads a style preset from a YAML file.
func LoadStyle(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var style Style
	if err := yaml.Unmarshal(data, &style); err != nil {
		return nil, fmt.Errorf("parse style %s: %w", path, err)
	}
	for name, ch := range style.Channels {
		if ch.Min >= ch.Max {
			return nil, fmt.Errorf("style %s: channel %s range [%v,%v] is empty", path, name, ch.Min, ch.Max)
		}
	}
	return &style, nil
}

// Apply folds the preset into renderer options. Explicit options win over
// the preset.
func (s *Style) Apply(opts *render.Options) {
	if opts.Palette == "" {
		opts.Palette = s.Palette
	}
	if len(s.Channels) == 0 {
		return
	}
	if opts.ChannelRanges == nil {
		opts.ChannelRanges = make(map[string][2]float64, len(s.Channels))
	}
	for name, ch := range s.Channels {
		if _, pinned := opts.ChannelRanges[name]; !pinned {
			opts.ChannelRanges[name] = [2]float64{ch.Min, ch.Max}
		}
	}
}
