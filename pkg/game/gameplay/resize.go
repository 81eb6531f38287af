package gameplay

import (
	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/scheduler"
)

// onResize keeps the badge inside a resized arena. Direction and speed are
// left alone: the badge only bounces off edges it travels into.
func (a *Animator) onResize(scheduler.Event) {
	if !a.running {
		return
	}

	dims := a.tracker.Measure()
	if !a.placer.Initialized() {
		// Placement has not happened yet and will read the new size itself.
		return
	}

	a.scene.Motion.Position = bounce.Reconcile(a.scene.Motion.Position, dims)
	if a.surface.Ready() {
		a.publish()
	}
}
