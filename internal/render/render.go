// Package render defines the boundary between the playback engine and the
// map renderer: persistent per-channel render targets hosted on display
// surfaces, created once and mutated in place across time steps.
package render

import (
	"image"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

// SourceLabel is the constant first line of every target title.
const SourceLabel = "NOAA WAVEWATCH III hindcast"

// TimeLayout formats record timestamps for titles. The stored wall-clock
// time is used as-is, with no timezone conversion.
const TimeLayout = "2006-01-02 15:04:05"

// Target is one channel's rendering surface region. It is created once per
// run and mutated thereafter; its identity never changes.
type Target interface {
	// Alive reports whether the hosting surface still exists.
	Alive() bool
	// SetField replaces the displayed cell-edge value matrix and its
	// visibility mask in place. Invisible cells render fully transparent.
	SetField(values [][]float64, visible [][]bool)
	// SetTitle replaces the three-line title: source label, channel
	// description, formatted timestamp.
	SetTitle(source, channel, timestamp string)
	// Surface returns the parent display surface hosting this target.
	Surface() Surface
}

// Surface is a parent display surface hosting one or more targets.
type Surface interface {
	Alive() bool
	// Capture snapshots the current visible content as an immutable frame.
	Capture() image.Image
	// Close destroys the surface. In live playback this is the UI layer's
	// job; the engine only ever observes the result via Alive.
	Close()
}

// Options is the configuration bag forwarded to the renderer at setup.
type Options struct {
	// Width and Height are surface pixel dimensions (defaults 768×512).
	Width  int
	Height int
	// ColorRange pins [min,max] for all channels; nil derives each
	// channel's range from the first record.
	ColorRange *[2]float64
	// ChannelRanges pins ranges for specific channels by name and takes
	// precedence over ColorRange.
	ChannelRanges map[string][2]float64
	// Palette selects the color ramp by name.
	Palette string
	// Parents assigns each channel to a parent surface by ordinal. When
	// nil every channel gets its own surface. Channels sharing an ordinal
	// are tiled side by side on one surface.
	Parents []int
	// FontPath points at a TTF for title text; titles are skipped when
	// empty.
	FontPath string
	// Extra is forwarded verbatim to renderer implementations.
	Extra map[string]any
}

// Renderer builds the initial frame: invoked exactly once per run with the
// first record, it must produce exactly one target per channel plus the
// distinct surfaces hosting them.
type Renderer interface {
	Setup(rec *hindcast.Record, grid hindcast.Grid, channels []hindcast.Channel, opts Options) ([]Target, []Surface, error)
}

// RenderSetupError reports that the renderer could not establish one target
// per channel, e.g. the caller pinned fewer parent surfaces than channels.
type RenderSetupError struct {
	Reason string
}

func (e *RenderSetupError) Error() string {
	return "render setup: " + e.Reason
}
