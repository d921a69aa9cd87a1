package movie

import (
	"image"
	"image/color"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

// QROutro renders a closing frame carrying a QR code for content (typically
// the source archive reference), centered on a white w×h canvas. Appended
// at export time only; playback buffers always hold exactly one frame per
// time step.
func QROutro(content string, w, h int) (image.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	size := w
	if h < size {
		size = h
	}
	size = size * 3 / 4

	code := q.Image(size)
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	cb := code.Bounds()
	offset := image.Pt((w-cb.Dx())/2, (h-cb.Dy())/2)
	draw.Draw(frame, cb.Add(offset), code, cb.Min, draw.Over)
	return frame, nil
}
