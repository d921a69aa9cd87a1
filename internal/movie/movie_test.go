package movie

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

func solidFrame(c color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestBufferOrder(t *testing.T) {
	b := NewBuffer(hindcast.Channel{Name: "hs"})
	red := solidFrame(color.RGBA{255, 0, 0, 255}, 8, 8)
	blue := solidFrame(color.RGBA{0, 0, 255, 255}, 8, 8)

	b.Append(red)
	b.Append(blue)

	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Frame(0) != red || b.Frame(1) != blue {
		t.Error("frames came back out of order")
	}
}

func TestSaveGIFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	frames := []image.Image{
		solidFrame(color.RGBA{255, 0, 0, 255}, 16, 16),
		solidFrame(color.RGBA{0, 255, 0, 255}, 16, 16),
		solidFrame(color.RGBA{0, 0, 255, 255}, 16, 16),
	}

	if err := SaveGIF(path, frames, 33); err != nil {
		t.Fatalf("SaveGIF failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("decoded %d frames, want 3", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 33 {
			t.Errorf("frame %d delay = %d, want 33", i, d)
		}
	}
}

func TestSaveGIFRejectsEmpty(t *testing.T) {
	if err := SaveGIF(filepath.Join(t.TempDir(), "empty.gif"), nil, 10); err == nil {
		t.Error("expected error for empty frame list")
	}
	if err := SaveAPNG(filepath.Join(t.TempDir(), "empty.png"), nil, 10); err == nil {
		t.Error("expected error for empty frame list")
	}
}

func TestQROutroDimensions(t *testing.T) {
	frame, err := QROutro("https://polar.ncep.noaa.gov/waves/", 128, 96)
	if err != nil {
		t.Fatalf("QROutro failed: %v", err)
	}
	b := frame.Bounds()
	if b.Dx() != 128 || b.Dy() != 96 {
		t.Errorf("outro frame %d×%d, want 128×96", b.Dx(), b.Dy())
	}
}

func TestWriteRawRGBANormalizes(t *testing.T) {
	// An odd-sized frame must come out at the requested even dimensions.
	frame := solidFrame(color.RGBA{10, 20, 30, 255}, 9, 7)
	var sink countWriter
	if err := writeRawRGBA(&sink, frame, 8, 6); err != nil {
		t.Fatalf("writeRawRGBA failed: %v", err)
	}
	if sink.n != 8*6*4 {
		t.Errorf("wrote %d bytes, want %d", sink.n, 8*6*4)
	}
}

type countWriter struct{ n int }

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}
