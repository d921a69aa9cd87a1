package movie

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/setanarut/apng"
)

// SaveAPNG writes frames as an animated PNG. delayCS is the per-frame delay
// in hundredths of a second.
func SaveAPNG(path string, frames []image.Image, delayCS int) error {
	if len(frames) == 0 {
		return fmt.Errorf("apng export: no frames")
	}
	return apng.Save(path, frames, uint16(delayCS))
}

// SaveGIF writes frames as an animated GIF, quantized to the standard
// Plan 9 palette. delayCS is the per-frame delay in hundredths of a second.
func SaveGIF(path string, frames []image.Image, delayCS int) error {
	if len(frames) == 0 {
		return fmt.Errorf("gif export: no frames")
	}

	out := &gif.GIF{}
	for _, frame := range frames {
		b := frame.Bounds()
		p := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(p, b, frame, b.Min)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, delayCS)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
