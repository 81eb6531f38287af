// Package gameplay runs the bouncing badge on top of a render surface: it
// measures, places, ticks and reconciles the scene, driven by a scheduler.
package gameplay

import (
	"badgebounce/pkg/engine/bounce"
)

// Tick advances the scene by one frame against the current measurement.
// However many axes hit an edge, the colour changes at most once.
func (a *Animator) Tick() bounce.Contact {
	dims := a.tracker.Measure()

	motion, contact := bounce.Step(a.scene.Motion, a.scene.Speed, dims)
	a.scene.Motion = motion
	a.scene.Ticks++

	if contact.Any() {
		a.scene.RecordContact(contact)
		a.scene.SetColor(a.selector.Next(a.scene.Color))
		if a.onContact != nil {
			a.onContact(contact)
		}
	}

	return contact
}

// publish pushes the current position and colour to the surface.
func (a *Animator) publish() {
	a.surface.Publish(a.scene.Motion.Position, a.scene.Color)
}
