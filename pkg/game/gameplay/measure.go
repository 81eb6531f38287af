package gameplay

import (
	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/game/renderer"
)

// Tracker reads badge and arena sizes from a surface. When a live reading is
// unavailable the previous value for that element is kept, so callers see a
// stale-but-consistent snapshot (zero until the first successful read).
type Tracker struct {
	surface renderer.Surface
	last    bounce.Dimensions
}

// NewTracker creates a tracker for surface.
func NewTracker(surface renderer.Surface) *Tracker {
	return &Tracker{surface: surface}
}

// Measure takes a fresh reading and returns the latest known dimensions.
func (t *Tracker) Measure() bounce.Dimensions {
	if w, h, ok := t.surface.ArenaSize(); ok {
		t.last.ArenaWidth, t.last.ArenaHeight = w, h
	}
	if w, h, ok := t.surface.BadgeSize(); ok {
		t.last.BadgeWidth, t.last.BadgeHeight = w, h
	}
	return t.last
}
