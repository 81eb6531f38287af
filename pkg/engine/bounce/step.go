package bounce

// Motion is the mutable part of the badge state: where it is and which way
// it is heading.
type Motion struct {
	Position  Vec
	Direction Direction
}

// Contact records which axes hit an arena edge during one tick.
type Contact struct {
	X, Y bool
}

// Any reports whether at least one axis registered contact.
func (c Contact) Any() bool {
	return c.X || c.Y
}

// Step advances m by one tick at the given speed and reflects the direction
// on every axis that reaches an edge. The returned position always lies in
// [0, Bounds()] on both axes.
func Step(m Motion, speed float64, dims Dimensions) (Motion, Contact) {
	maxX, maxY := dims.Bounds()

	var contact Contact
	m.Position.X, m.Direction.DX, contact.X = stepAxis(m.Position.X, m.Direction.DX, speed, maxX)
	m.Position.Y, m.Direction.DY, contact.Y = stepAxis(m.Position.Y, m.Direction.DY, speed, maxY)

	return m, contact
}

// stepAxis moves a single coordinate. The lower edge is checked first, so an
// oversized badge (max == 0) is pinned at 0 and flips on every tick.
func stepAxis(pos float64, dir int, speed, max float64) (float64, int, bool) {
	next := pos + speed*float64(dir)
	switch {
	case next <= 0:
		return 0, 1, true
	case next >= max:
		return max, -1, true
	}
	return next, dir, false
}

// Reconcile pulls p back inside the bounds of dims after the arena shrank.
// It only clamps down; a badge is never pushed away from the origin.
func Reconcile(p Vec, dims Dimensions) Vec {
	maxX, maxY := dims.Bounds()
	if p.X > maxX {
		p.X = maxX
	}
	if p.Y > maxY {
		p.Y = maxY
	}
	return p
}
