package bounce

import (
	"math/rand"
	"time"
)

// Outcome is the result of one placement attempt.
type Outcome int

const (
	// Retry means geometry is not known yet; try again after RetryPolicy.Delay.
	Retry Outcome = iota
	// Placed means a random position was chosen and the placer is now locked.
	Placed
	// PlacedAtOrigin means the retry budget ran out before geometry showed up.
	PlacedAtOrigin
	// AlreadyPlaced means an earlier attempt succeeded; nothing changed.
	AlreadyPlaced
)

func (o Outcome) String() string {
	switch o {
	case Retry:
		return "retry"
	case Placed:
		return "placed"
	case PlacedAtOrigin:
		return "placed-at-origin"
	case AlreadyPlaced:
		return "already-placed"
	default:
		return "unknown"
	}
}

// RetryPolicy bounds how long placement waits for a usable measurement.
type RetryPolicy struct {
	Delay      time.Duration
	MaxRetries int
}

// DefaultRetryPolicy waits up to three frames' worth of layout settling.
var DefaultRetryPolicy = RetryPolicy{Delay: 100 * time.Millisecond, MaxRetries: 3}

// Placer picks the badge's starting position exactly once.
type Placer struct {
	policy      RetryPolicy
	rng         *rand.Rand
	retries     int
	initialized bool
	motion      Motion
}

// NewPlacer returns an uninitialized placer.
func NewPlacer(policy RetryPolicy, rng *rand.Rand) *Placer {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &Placer{policy: policy, rng: rng}
}

// Policy returns the retry policy the placer was built with.
func (p *Placer) Policy() RetryPolicy {
	return p.policy
}

// Initialized reports whether a position has been locked in.
func (p *Placer) Initialized() bool {
	return p.initialized
}

// Motion returns the locked starting motion. Zero until Initialized.
func (p *Placer) Motion() Motion {
	return p.motion
}

// Place attempts to choose a starting position for dims.
func (p *Placer) Place(dims Dimensions) (Motion, Outcome) {
	if p.initialized {
		return p.motion, AlreadyPlaced
	}

	if !dims.Known() {
		if p.retries < p.policy.MaxRetries {
			p.retries++
			return Motion{}, Retry
		}
		p.lock(Vec{})
		return p.motion, PlacedAtOrigin
	}

	maxX, maxY := dims.Bounds()
	p.lock(Vec{X: p.rng.Float64() * maxX, Y: p.rng.Float64() * maxY})
	return p.motion, Placed
}

func (p *Placer) lock(pos Vec) {
	p.motion = Motion{Position: pos, Direction: Direction{DX: p.sign(), DY: p.sign()}}
	p.initialized = true
}

func (p *Placer) sign() int {
	if p.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
