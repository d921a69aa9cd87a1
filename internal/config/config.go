package config

import (
	"fmt"
	"math"
	"time"

	"github.com/ivlev/ww3anim/internal/render"
)

// DefaultDelay is the pacing delay in seconds applied when the caller does
// not specify one.
const DefaultDelay = 0.33

// Config carries one animation run's settings. Validate must pass before
// any rendering starts.
type Config struct {
	InputPath  string
	OutputPath string

	// Delay is the pacing delay in seconds inserted before each step's
	// update. Zero disables pacing.
	Delay float64

	// Movie requests frame accumulation; without it the run is live
	// playback only.
	Movie  bool
	Format string // apng, gif or mp4
	FPS    int

	Render render.Options

	StylePath string
	Encoder   string
	Quality   int
	QRLink    string
	ShowStats bool
}

// InvalidDelayError reports a delay that fails its validity constraints.
// Detected before any rendering; never retried.
type InvalidDelayError struct {
	Delay float64
}

func (e *InvalidDelayError) Error() string {
	return fmt.Sprintf("invalid delay %v: must be a non-negative real number", e.Delay)
}

// Validate checks the run settings; it is called once at entry.
func (c *Config) Validate() error {
	if c.Delay < 0 || math.IsNaN(c.Delay) || math.IsInf(c.Delay, 0) {
		return &InvalidDelayError{Delay: c.Delay}
	}
	if c.FPS < 1 {
		return fmt.Errorf("invalid fps %d: must be at least 1", c.FPS)
	}
	return nil
}

// PaceDelay converts the configured delay to a duration.
func (c *Config) PaceDelay() time.Duration {
	return time.Duration(c.Delay * float64(time.Second))
}

// Default returns a Config with documented defaults applied.
func Default() *Config {
	return &Config{
		Delay:  DefaultDelay,
		Format: "apng",
		FPS:    10,
	}
}
