package gameplay

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/scheduler"
	"badgebounce/pkg/game/renderer"
	"badgebounce/pkg/game/state"
)

// ErrInvalidSpeed is returned when the configured speed is not a positive number.
var ErrInvalidSpeed = errors.New("speed must be a positive number")

// Options configures an Animator.
type Options struct {
	Speed   float64 // surface units per tick
	Palette []color.RGBA
	Retry   bounce.RetryPolicy
	Rand    *rand.Rand // nil seeds from the wall clock

	// OnContact is called once per tick that registered contact.
	OnContact func(bounce.Contact)
}

// Animator owns one scene and drives it from a scheduler.
type Animator struct {
	surface   renderer.Surface
	sched     *scheduler.Scheduler
	tracker   *Tracker
	placer    *bounce.Placer
	selector  *bounce.Selector
	scene     *state.Scene
	onContact func(bounce.Contact)

	frame  *scheduler.Token
	resize *scheduler.Token
	retry  *scheduler.Token

	running bool
}

// New builds an animator for surface. Nothing is scheduled until Start.
func New(surface renderer.Surface, sched *scheduler.Scheduler, opts Options) (*Animator, error) {
	if !(opts.Speed > 0) || math.IsInf(opts.Speed, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, opts.Speed)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	selector, err := bounce.NewSelector(opts.Palette, rng)
	if err != nil {
		return nil, fmt.Errorf("building colour selector: %w", err)
	}

	return &Animator{
		surface:   surface,
		sched:     sched,
		tracker:   NewTracker(surface),
		placer:    bounce.NewPlacer(opts.Retry, rng),
		selector:  selector,
		scene:     state.NewScene(opts.Speed, selector.First()),
		onContact: opts.OnContact,
	}, nil
}

// Start mounts the animation: it subscribes to resizes, attempts the initial
// placement and requests the first frame. Calling Start twice is a no-op.
func (a *Animator) Start() {
	if a.running || a.sched.Closed() {
		return
	}
	a.running = true

	a.resize = a.sched.Listen(scheduler.EventResize, a.onResize)
	a.attemptPlacement()
	a.frame = a.sched.RequestFrame(a.onFrame)
}

// Stop tears the animation down. Pending frame, resize and retry callbacks
// are cancelled; any that still arrive are ignored.
func (a *Animator) Stop() {
	a.running = false
	a.frame.Cancel()
	a.resize.Cancel()
	a.retry.Cancel()
}

// TogglePause freezes or resumes motion and returns the new paused state.
func (a *Animator) TogglePause() bool {
	return a.scene.TogglePause()
}

// Running reports whether the animation is mounted.
func (a *Animator) Running() bool {
	return a.running
}

// Initialized reports whether the badge has been placed.
func (a *Animator) Initialized() bool {
	return a.placer.Initialized()
}

// Scene returns a copy of the current scene.
func (a *Animator) Scene() state.Scene {
	return *a.scene
}

// onFrame is the per-frame callback. It re-registers itself every frame;
// motion is gated on a ready surface and a placed badge.
func (a *Animator) onFrame(time.Time) {
	if !a.running {
		return
	}

	if a.surface.Ready() && a.placer.Initialized() {
		if !a.scene.Paused {
			a.Tick()
		}
		a.publish()
	}

	a.frame = a.sched.RequestFrame(a.onFrame)
}

// attemptPlacement runs the placement state machine once and, if geometry
// is still unknown, schedules the next attempt.
func (a *Animator) attemptPlacement() {
	motion, outcome := a.placer.Place(a.tracker.Measure())

	switch outcome {
	case bounce.Retry:
		a.retry = a.sched.After(a.placer.Policy().Delay, func(time.Time) {
			if a.running {
				a.attemptPlacement()
			}
		})
	case bounce.PlacedAtOrigin:
		log.Printf("badge size still unknown after %d retries, starting at origin", a.placer.Policy().MaxRetries)
		a.scene.Motion = motion
	case bounce.Placed:
		a.scene.Motion = motion
	}
}
