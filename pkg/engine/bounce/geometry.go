// Package bounce holds the pure state machine behind the bouncing badge:
// geometry, the per-tick transition, resize reconciliation, initial placement
// and colour selection. Nothing in here touches a screen or a clock.
package bounce

// Vec is a point on the render surface. Origin is top-left, units are
// whatever the surface measures in (pixels for a window, cells for a terminal).
type Vec struct {
	X, Y float64
}

// Direction is the travel sign per axis. Each component is -1 or +1.
type Direction struct {
	DX, DY int
}

// Dimensions is a snapshot of the badge and arena sizes.
// Zero means "not measured yet", never an error.
type Dimensions struct {
	BadgeWidth  float64
	BadgeHeight float64
	ArenaWidth  float64
	ArenaHeight float64
}

// Bounds returns the largest valid badge position on each axis.
// A badge larger than the arena collapses the range to a single point at 0.
func (d Dimensions) Bounds() (maxX, maxY float64) {
	return upper(d.ArenaWidth, d.BadgeWidth), upper(d.ArenaHeight, d.BadgeHeight)
}

// Known reports whether both elements have a non-zero measured size.
func (d Dimensions) Known() bool {
	return d.BadgeWidth > 0 && d.BadgeHeight > 0 && d.ArenaWidth > 0 && d.ArenaHeight > 0
}

// Contains reports whether p lies inside the valid position range.
func (d Dimensions) Contains(p Vec) bool {
	maxX, maxY := d.Bounds()
	return p.X >= 0 && p.X <= maxX && p.Y >= 0 && p.Y <= maxY
}

func upper(arena, badge float64) float64 {
	if arena-badge < 0 {
		return 0
	}
	return arena - badge
}
