package renderer

import (
	"image/color"

	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/input"
	"badgebounce/pkg/engine/scheduler"
)

// Surface is everything the animation needs from its host: a measurable
// arena, a measurable badge inside it and a way to move and recolour it.
// Resize notifications are posted to the scheduler as scheduler.EventResize.
type Surface interface {
	// Ready reports whether the surface exists and can accept a frame.
	Ready() bool

	// ArenaSize returns the arena's rendered size. ok is false while the
	// size is not known yet (e.g. before the first layout pass).
	ArenaSize() (width, height float64, ok bool)

	// BadgeSize returns the badge's rendered size, with the same ok rule.
	BadgeSize() (width, height float64, ok bool)

	// BadgeOffset returns the badge's current top-left corner.
	BadgeOffset() (x, y float64)

	// Publish moves the badge and sets its display colour for the next draw.
	Publish(pos bounce.Vec, c color.RGBA)
}

// IntentHandler receives user intents from a backend. Returning false ends Run.
type IntentHandler func(input.Intent) bool

// Renderer is a render backend: a Surface plus its own event loop.
// Implementations include the ebiten window and the tcell terminal.
type Renderer interface {
	Surface

	// Init creates the window or screen. Run must not be called if Init fails.
	Init() error

	// Run blocks, stepping sched once per display frame and forwarding
	// input to handle, until handle returns false or the window closes.
	Run(sched *scheduler.Scheduler, handle IntentHandler) error

	// Close releases the screen. Safe to call after Run has returned.
	Close()

	// SetBanner shows a line of text over the arena. Empty hides it.
	SetBanner(text string)
}

// HitBadge reports whether the point (px, py) falls on the badge.
func HitBadge(s Surface, px, py float64) bool {
	w, h, ok := s.BadgeSize()
	if !ok || w <= 0 || h <= 0 {
		return false
	}
	x, y := s.BadgeOffset()
	return px >= x && px < x+w && py >= y && py < y+h
}

// ArenaHeight is the height left for the arena once a help row of rowHeight
// is reserved at the bottom. No row is reserved when help is empty.
func ArenaHeight(total, rowHeight float64, help string) float64 {
	if help == "" {
		return total
	}
	return max(total-rowHeight, 0)
}
