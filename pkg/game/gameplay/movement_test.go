package gameplay

import (
	"testing"

	"badgebounce/pkg/engine/bounce"
)

func TestTick_CornerContactChangesColourOnce(t *testing.T) {
	a, _, _, _ := newTestAnimator(t, 0.5)
	contacts := 0
	a.onContact = func(bounce.Contact) { contacts++ }
	a.scene.Motion = bounce.Motion{Position: bounce.Vec{X: 279.8, Y: 279.8}, Direction: bounce.Direction{DX: 1, DY: 1}}
	before := a.scene.Color

	contact := a.Tick()

	if !contact.X || !contact.Y {
		t.Fatalf("Tick() contact = %+v, want both axes", contact)
	}
	if a.scene.ColorChanges != 1 {
		t.Errorf("ColorChanges = %d, want 1", a.scene.ColorChanges)
	}
	if contacts != 1 {
		t.Errorf("OnContact called %d times, want 1", contacts)
	}
	if a.scene.Color == before {
		t.Error("colour did not change on contact")
	}
	if a.scene.Contacts != 2 {
		t.Errorf("Contacts = %d, want 2", a.scene.Contacts)
	}
}

func TestTick_BoundaryBounceScenario(t *testing.T) {
	a, _, _, _ := newTestAnimator(t, 0.5)
	a.scene.Motion = bounce.Motion{Position: bounce.Vec{X: 0.3, Y: 50}, Direction: bounce.Direction{DX: -1, DY: 1}}

	a.Tick()

	m := a.scene.Motion
	if m.Position.X != 0 || m.Direction.DX != 1 {
		t.Errorf("after tick X=%v DX=%d, want X=0 DX=1", m.Position.X, m.Direction.DX)
	}
	if a.scene.ColorChanges != 1 {
		t.Errorf("ColorChanges = %d, want 1", a.scene.ColorChanges)
	}
}

func TestTick_NoContactKeepsColour(t *testing.T) {
	a, _, _, _ := newTestAnimator(t, 1)
	a.scene.Motion = bounce.Motion{Position: bounce.Vec{X: 100, Y: 100}, Direction: bounce.Direction{DX: 1, DY: 1}}
	before := a.scene.Color

	a.Tick()

	if a.scene.Color != before || a.scene.ColorChanges != 0 {
		t.Errorf("colour changed without contact (%d changes)", a.scene.ColorChanges)
	}
}

func TestTick_OversizedBadgePinnedAndRecoloursEveryTick(t *testing.T) {
	a, surface, _, _ := newTestAnimator(t, 0.5)
	surface.setBadge(400, 400)
	a.scene.Motion = bounce.Motion{Direction: bounce.Direction{DX: 1, DY: 1}}

	for i := 0; i < 20; i++ {
		prev := a.scene.Color
		a.Tick()
		if a.scene.Motion.Position != (bounce.Vec{}) {
			t.Fatalf("tick %d: position = %+v, want origin", i, a.scene.Motion.Position)
		}
		if a.scene.Color == prev {
			t.Fatalf("tick %d: colour repeated", i)
		}
	}
	if a.scene.ColorChanges != 20 {
		t.Errorf("ColorChanges = %d, want 20", a.scene.ColorChanges)
	}
}

func TestTick_ContainmentOverLongRun(t *testing.T) {
	a, surface, _, _ := newTestAnimator(t, 3.7)
	surface.setArena(211, 97)
	surface.setBadge(40, 15)
	a.scene.Motion = bounce.Motion{Position: bounce.Vec{X: 50, Y: 50}, Direction: bounce.Direction{DX: -1, DY: 1}}

	dims := a.tracker.Measure()
	for i := 0; i < 5000; i++ {
		before := a.scene.ColorChanges
		a.Tick()
		if !dims.Contains(a.scene.Motion.Position) {
			t.Fatalf("tick %d: %+v escaped the arena", i, a.scene.Motion.Position)
		}
		if a.scene.ColorChanges-before > 1 {
			t.Fatalf("tick %d: %d colour changes in one tick", i, a.scene.ColorChanges-before)
		}
	}
}
