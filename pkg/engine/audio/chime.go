// Package audio plays the short tone that marks an edge contact.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// ErrInvalidTone is returned for a non-positive frequency or duration.
var ErrInvalidTone = errors.New("invalid chime tone")

// Chime is a one-note contact sound. The zero value is silent.
type Chime struct {
	mu          sync.Mutex
	freq        float64
	duration    time.Duration
	initialized bool
}

// NewChime returns a chime at freq Hz lasting duration.
func NewChime(freq float64, duration time.Duration) (*Chime, error) {
	if !(freq > 0) || duration <= 0 {
		return nil, fmt.Errorf("%w: %vHz for %v", ErrInvalidTone, freq, duration)
	}
	return &Chime{freq: freq, duration: duration}, nil
}

// Init opens the speaker. The animation runs fine without it, so callers
// log the error and carry on.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Play starts the tone and returns immediately.
func (c *Chime) Play() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	sine, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		return
	}
	n := sampleRate.N(c.duration)
	speaker.Play(NewFade(beep.Take(n, sine), n))
}

// Close silences anything still playing. Play is a no-op afterwards.
func (c *Chime) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		speaker.Clear()
		c.initialized = false
	}
}

// Fade scales a streamer by a linear ramp from full volume down to silence
// over total samples.
type Fade struct {
	s     beep.Streamer
	total int
	pos   int
}

// NewFade wraps s.
func NewFade(s beep.Streamer, total int) *Fade {
	return &Fade{s: s, total: total}
}

func (f *Fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 0.0
		if f.pos < f.total {
			gain = 0.3 * (1 - float64(f.pos)/float64(f.total))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *Fade) Err() error {
	return f.s.Err()
}
