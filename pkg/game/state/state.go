package state

import (
	"image/color"

	"badgebounce/pkg/engine/bounce"
)

// Scene is the complete animation state for one mounted badge.
// It is owned by the animator and only mutated from the host loop.
type Scene struct {
	Motion bounce.Motion

	Speed float64

	Color color.RGBA

	Paused bool

	Ticks        uint64 // Frames in which the badge moved
	Contacts     uint64 // Per-axis edge contacts
	ColorChanges uint64
}

// NewScene creates a scene with the given speed and starting colour.
func NewScene(speed float64, start color.RGBA) *Scene {
	return &Scene{
		Speed: speed,
		Color: start,
	}
}

// Position returns the badge's current top-left corner.
func (s Scene) Position() bounce.Vec {
	return s.Motion.Position
}

// RecordContact updates the counters for one tick's contact result.
func (s *Scene) RecordContact(c bounce.Contact) {
	if c.X {
		s.Contacts++
	}
	if c.Y {
		s.Contacts++
	}
}

// SetColor commits a new display colour.
func (s *Scene) SetColor(c color.RGBA) {
	s.Color = c
	s.ColorChanges++
}

// TogglePause flips the paused flag and returns the new value.
func (s *Scene) TogglePause() bool {
	s.Paused = !s.Paused
	return s.Paused
}
