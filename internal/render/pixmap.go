package render

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/ivlev/ww3anim/internal/hindcast"
)

const titleBand = 52.0

// PixmapRenderer draws hindcast fields onto software pixmaps via gg. Each
// surface is one gg context; channels assigned to the same parent surface
// are tiled side by side.
type PixmapRenderer struct {
	font text.Face
}

func NewPixmapRenderer() *PixmapRenderer {
	return &PixmapRenderer{}
}

func (r *PixmapRenderer) Setup(rec *hindcast.Record, grid hindcast.Grid, channels []hindcast.Channel, opts Options) ([]Target, []Surface, error) {
	if len(channels) == 0 {
		return nil, nil, &RenderSetupError{Reason: "no channels to render"}
	}
	if rec == nil || len(rec.Fields) != len(channels) {
		return nil, nil, &RenderSetupError{Reason: "first record does not cover every channel"}
	}

	width := opts.Width
	if width <= 0 {
		width = 768
	}
	height := opts.Height
	if height <= 0 {
		height = 512
	}
	if height <= int(titleBand) {
		return nil, nil, &RenderSetupError{Reason: fmt.Sprintf("surface height %d leaves no room below the title band", height)}
	}

	parents := opts.Parents
	if parents == nil {
		parents = make([]int, len(channels))
		for c := range parents {
			parents[c] = c
		}
	} else if len(parents) < len(channels) {
		return nil, nil, &RenderSetupError{
			Reason: fmt.Sprintf("%d parent surfaces pinned for %d channels", len(parents), len(channels)),
		}
	}

	surfaceCount := 0
	for c := range channels {
		p := parents[c]
		if p < 0 || p >= len(channels) {
			return nil, nil, &RenderSetupError{Reason: fmt.Sprintf("channel %d pinned to invalid surface %d", c, p)}
		}
		if p+1 > surfaceCount {
			surfaceCount = p + 1
		}
	}

	if opts.FontPath != "" && r.font == nil {
		src, err := text.NewFontSourceFromFile(opts.FontPath)
		if err != nil {
			return nil, nil, &RenderSetupError{Reason: fmt.Sprintf("load font %s: %v", opts.FontPath, err)}
		}
		r.font = src.Face(13)
	}

	tilesPer := make([]int, surfaceCount)
	for c := range channels {
		tilesPer[parents[c]]++
	}

	surfaces := make([]*mapSurface, surfaceCount)
	for si := range surfaces {
		dc := gg.NewContext(width, height)
		dc.ClearWithColor(gg.White)
		if r.font != nil {
			dc.SetFont(r.font)
		}
		surfaces[si] = &mapSurface{dc: dc}
	}

	pal := paletteByName(opts.Palette)
	nextTile := make([]int, surfaceCount)
	targets := make([]Target, len(channels))
	for c, ch := range channels {
		si := parents[c]
		tiles := tilesPer[si]
		tileW := width / tiles
		tile := nextTile[si]
		nextTile[si]++

		lo, hi := channelRange(ch, rec.Fields[c], opts)
		t := &mapTarget{
			surf: surfaces[si],
			rect: image.Rect(tile*tileW, 0, (tile+1)*tileW, height),
			pal:  pal,
			lo:   lo,
			hi:   hi,
		}
		padded := hindcast.PadCellEdges(rec.Fields[c])
		t.SetField(padded, hindcast.VisibilityMask(padded))
		t.SetTitle(SourceLabel, ch.Description, rec.Time.Format(TimeLayout))
		targets[c] = t
	}

	out := make([]Surface, surfaceCount)
	for si, s := range surfaces {
		out[si] = s
	}
	return targets, out, nil
}

// channelRange resolves the color range for one channel: explicit
// per-channel pin, then the shared pin, then min/max of the first record.
// Whatever is chosen stays fixed for the whole run.
func channelRange(ch hindcast.Channel, field [][]float64, opts Options) (lo, hi float64) {
	if rng, ok := opts.ChannelRanges[ch.Name]; ok {
		return rng[0], rng[1]
	}
	if opts.ColorRange != nil {
		return opts.ColorRange[0], opts.ColorRange[1]
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range field {
		for _, v := range row {
			if hindcast.IsNoData(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		// All cells masked; any finite range works.
		return 0, 1
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// mapSurface is one gg pixmap acting as the parent display surface.
type mapSurface struct {
	dc     *gg.Context
	closed bool
}

func (s *mapSurface) Alive() bool {
	return !s.closed
}

func (s *mapSurface) Capture() image.Image {
	if s.closed {
		return nil
	}
	// gg copies the pixmap, so the frame is immutable.
	return s.dc.Image()
}

func (s *mapSurface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	_ = s.dc.Close()
}

// mapTarget renders one channel into its tile of the parent surface.
type mapTarget struct {
	surf *mapSurface
	rect image.Rectangle
	pal  ramp
	lo   float64
	hi   float64

	values  [][]float64 // cell-edge matrix, (S+1)×(R+1)
	visible [][]bool
	title   [3]string
}

func (t *mapTarget) Alive() bool {
	return t.surf.Alive()
}

func (t *mapTarget) Surface() Surface {
	return t.surf
}

func (t *mapTarget) SetField(values [][]float64, visible [][]bool) {
	t.values = values
	t.visible = visible
	t.redraw()
}

func (t *mapTarget) SetTitle(source, channel, timestamp string) {
	t.title = [3]string{source, channel, timestamp}
	t.redraw()
}

// Mask exposes the current visibility layer for inspection.
func (t *mapTarget) Mask() [][]bool {
	return t.visible
}

// Values exposes the current cell-edge matrix for inspection.
func (t *mapTarget) Values() [][]float64 {
	return t.values
}

func (t *mapTarget) redraw() {
	if !t.surf.Alive() {
		return
	}
	dc := t.surf.dc
	x0 := float64(t.rect.Min.X)
	y0 := float64(t.rect.Min.Y)
	w := float64(t.rect.Dx())
	h := float64(t.rect.Dy())

	// Wipe the whole tile; masked cells stay background, never stale color.
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x0, y0, w, h)
	dc.Fill()

	if len(t.values) > 1 && len(t.values[0]) > 1 {
		lonCells := len(t.values) - 1
		latCells := len(t.values[0]) - 1
		mapH := h - titleBand
		cw := w / float64(lonCells)
		ch := mapH / float64(latCells)

		span := t.hi - t.lo
		for j := 0; j < lonCells; j++ {
			for i := 0; i < latCells; i++ {
				if !t.visible[j][i] {
					continue
				}
				f := (t.values[j][i] - t.lo) / span
				r, g, b := t.pal.at(f)
				dc.SetRGB(r, g, b)
				// Screen y grows downward; the northmost row goes on top.
				y := y0 + titleBand + mapH - float64(i+1)*ch
				dc.DrawRectangle(x0+float64(j)*cw, y, cw+0.5, ch+0.5)
				dc.Fill()
			}
		}
	}

	dc.SetRGB(0, 0, 0)
	for k, line := range t.title {
		dc.DrawString(line, x0+6, y0+15+float64(k)*15)
	}
}
