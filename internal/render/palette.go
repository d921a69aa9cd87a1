package render

// ramp is a piecewise-linear color ramp over [0,1].
type ramp []rampStop

type rampStop struct {
	pos     float64
	r, g, b float64
}

var palettes = map[string]ramp{
	// Deep water to storm crest, the default for wave fields.
	"storm": {
		{0.00, 0.03, 0.11, 0.35},
		{0.25, 0.00, 0.45, 0.70},
		{0.50, 0.10, 0.75, 0.60},
		{0.75, 0.95, 0.85, 0.25},
		{1.00, 0.85, 0.15, 0.10},
	},
	// Ocean-salinity style ramp for signed fields like wind components.
	"haline": {
		{0.00, 0.16, 0.10, 0.42},
		{0.33, 0.06, 0.40, 0.43},
		{0.66, 0.30, 0.68, 0.35},
		{1.00, 0.99, 0.93, 0.60},
	},
	"gray": {
		{0.00, 0.10, 0.10, 0.10},
		{1.00, 0.95, 0.95, 0.95},
	},
}

// paletteByName returns the named ramp, falling back to "storm".
func paletteByName(name string) ramp {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["storm"]
}

// PaletteNames lists the available palette identifiers.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	return names
}

// at maps t in [0,1] to an interpolated color; t is clamped.
func (p ramp) at(t float64) (r, g, b float64) {
	if t <= p[0].pos {
		return p[0].r, p[0].g, p[0].b
	}
	last := p[len(p)-1]
	if t >= last.pos {
		return last.r, last.g, last.b
	}
	for i := 1; i < len(p); i++ {
		if t <= p[i].pos {
			lo, hi := p[i-1], p[i]
			f := (t - lo.pos) / (hi.pos - lo.pos)
			return lo.r + (hi.r-lo.r)*f,
				lo.g + (hi.g-lo.g)*f,
				lo.b + (hi.b-lo.b)*f
		}
	}
	return last.r, last.g, last.b
}
