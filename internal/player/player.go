// Package player drives the animation: it builds the initial render targets
// from the first record, then walks the remaining time steps strictly in
// order — fetch, pace, mutate targets in place, optionally capture — and
// accumulates captured frames into per-channel movie buffers.
package player

import (
	"fmt"
	"image"
	"time"

	"github.com/ivlev/ww3anim/internal/config"
	"github.com/ivlev/ww3anim/internal/hindcast"
	"github.com/ivlev/ww3anim/internal/movie"
	"github.com/ivlev/ww3anim/internal/render"
	"github.com/ivlev/ww3anim/internal/source"
)

// State tracks the run's position in its lifecycle.
type State int

const (
	Building State = iota
	Running
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Running:
		return "running"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TargetLostError reports that a previously established render target is no
// longer live. Fatal: some targets may already be stale while others are
// live, so the run aborts and in-progress buffers are discarded.
type TargetLostError struct {
	Channel int
	Step    int
}

func (e *TargetLostError) Error() string {
	return fmt.Sprintf("render target for channel %d lost at step %d", e.Channel, e.Step)
}

// Timings is the per-phase wall-clock breakdown of a run.
type Timings struct {
	Fetch   time.Duration
	Pace    time.Duration
	Update  time.Duration
	Capture time.Duration
	Steps   int
}

// Player owns the render-target registry and the movie buffers for exactly
// one run. Execution is strictly sequential; the only suspension point is
// the pacing sleep.
type Player struct {
	src      source.RecordSource
	renderer render.Renderer
	cfg      *config.Config

	// sleep isolates the pacing suspension so tests (and a future
	// cancellation mechanism) can intercept it.
	sleep func(time.Duration)

	state      State
	targets    []render.Target
	surfaces   []render.Surface
	surfaceIdx map[render.Surface]int
	buffers    []*movie.Buffer
	timings    Timings
}

func New(src source.RecordSource, renderer render.Renderer, cfg *config.Config) *Player {
	return &Player{
		src:      src,
		renderer: renderer,
		cfg:      cfg,
		sleep:    time.Sleep,
		state:    Building,
	}
}

func (p *Player) State() State {
	return p.state
}

func (p *Player) Timings() Timings {
	return p.timings
}

// Run plays the whole time series. With Movie requested it returns one
// buffer per channel holding exactly one frame per time step; otherwise it
// returns nil buffers. On any error the run aborts and no partial output
// survives.
func (p *Player) Run() ([]*movie.Buffer, error) {
	if err := p.cfg.Validate(); err != nil {
		return p.abort(err)
	}
	n := p.src.RecordCount()
	if n < 1 {
		return p.abort(fmt.Errorf("source reports %d records", n))
	}

	first, err := p.src.Record(0)
	if err != nil {
		return p.abort(fmt.Errorf("fetch record 0: %w", err))
	}
	channels := p.src.Channels()
	targets, surfaces, err := p.renderer.Setup(first, p.src.Grid(), channels, p.cfg.Render)
	if err != nil {
		return p.abort(err)
	}
	if len(targets) != len(channels) {
		return p.abort(&render.RenderSetupError{
			Reason: fmt.Sprintf("renderer produced %d targets for %d channels", len(targets), len(channels)),
		})
	}
	// The registry is fixed here: no later step may add, remove or reorder
	// targets, and lookups never go through the display layer again.
	p.targets = targets
	p.surfaces = surfaces
	p.surfaceIdx = make(map[render.Surface]int, len(surfaces))
	for i, s := range surfaces {
		p.surfaceIdx[s] = i
	}

	if p.cfg.Movie {
		p.buffers = make([]*movie.Buffer, len(channels))
		for c, ch := range channels {
			p.buffers[c] = movie.NewBuffer(ch)
		}
		p.capture()
	}

	p.state = Running
	delay := p.cfg.PaceDelay()
	for i := 1; i < n; i++ {
		if c := p.lostTarget(); c >= 0 {
			return p.abort(&TargetLostError{Channel: c, Step: i})
		}

		t0 := time.Now()
		rec, err := p.src.Record(i)
		if err != nil {
			return p.abort(fmt.Errorf("fetch record %d: %w", i, err))
		}
		p.timings.Fetch += time.Since(t0)

		if delay > 0 {
			t0 = time.Now()
			p.sleep(delay)
			p.timings.Pace += time.Since(t0)
		}

		t0 = time.Now()
		if err := p.update(rec, i); err != nil {
			return p.abort(err)
		}
		p.timings.Update += time.Since(t0)

		if p.cfg.Movie {
			t0 = time.Now()
			p.capture()
			p.timings.Capture += time.Since(t0)
		}
		p.timings.Steps++
	}

	p.state = Done
	return p.buffers, nil
}

// abort moves to the terminal failure state and discards any partially
// built buffers as a whole.
func (p *Player) abort(err error) ([]*movie.Buffer, error) {
	p.state = Aborted
	p.buffers = nil
	return nil, err
}

func (p *Player) lostTarget() int {
	for c, t := range p.targets {
		if !t.Alive() {
			return c
		}
	}
	return -1
}

// update mutates every target in place with the record for step i: padded
// cell-edge values, visibility mask and three-line title. All targets are
// verified live before any is touched.
func (p *Player) update(rec *hindcast.Record, step int) error {
	if c := p.lostTarget(); c >= 0 {
		return &TargetLostError{Channel: c, Step: step}
	}
	if len(rec.Fields) != len(p.targets) {
		return fmt.Errorf("record for step %d has %d channels, expected %d", step, len(rec.Fields), len(p.targets))
	}

	channels := p.src.Channels()
	stamp := rec.Time.Format(render.TimeLayout)
	for c, t := range p.targets {
		padded := hindcast.PadCellEdges(rec.Fields[c])
		t.SetField(padded, hindcast.VisibilityMask(padded))
		t.SetTitle(render.SourceLabel, channels[c].Description, stamp)
	}
	return nil
}

// capture snapshots each distinct surface once and appends the frame to
// every channel buffer whose target lives on it.
func (p *Player) capture() {
	frames := make([]image.Image, len(p.surfaces))
	for si, s := range p.surfaces {
		frames[si] = s.Capture()
	}
	for c, t := range p.targets {
		p.buffers[c].Append(frames[p.surfaceIdx[t.Surface()]])
	}
}
