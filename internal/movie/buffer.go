// Package movie accumulates captured frames, one ordered sequence per
// channel, and exports finished sequences to animated PNG, GIF or an
// ffmpeg-encoded video.
package movie

import (
	"image"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

// Buffer is one channel's ordered frame sequence. Frame k corresponds to
// time step k; a completed run appends exactly one frame per step.
type Buffer struct {
	Channel hindcast.Channel
	frames  []image.Image
}

func NewBuffer(ch hindcast.Channel) *Buffer {
	return &Buffer{Channel: ch}
}

func (b *Buffer) Append(frame image.Image) {
	b.frames = append(b.frames, frame)
}

func (b *Buffer) Len() int {
	return len(b.frames)
}

// Frame returns the frame for time step i.
func (b *Buffer) Frame(i int) image.Image {
	return b.frames[i]
}

// Frames returns the backing sequence; callers must treat it as read-only.
func (b *Buffer) Frames() []image.Image {
	return b.frames
}
