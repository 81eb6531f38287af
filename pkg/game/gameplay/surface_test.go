package gameplay

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/scheduler"
)

// fakeSurface is an in-memory Surface with settable geometry.
type fakeSurface struct {
	ready bool

	arenaW, arenaH float64
	arenaOK        bool
	badgeW, badgeH float64
	badgeOK        bool

	pos       bounce.Vec
	color     color.RGBA
	published int
}

func (f *fakeSurface) Ready() bool { return f.ready }

func (f *fakeSurface) ArenaSize() (float64, float64, bool) { return f.arenaW, f.arenaH, f.arenaOK }

func (f *fakeSurface) BadgeSize() (float64, float64, bool) { return f.badgeW, f.badgeH, f.badgeOK }

func (f *fakeSurface) BadgeOffset() (float64, float64) { return f.pos.X, f.pos.Y }

func (f *fakeSurface) Publish(pos bounce.Vec, c color.RGBA) {
	f.pos = pos
	f.color = c
	f.published++
}

func (f *fakeSurface) setArena(w, h float64) {
	f.arenaW, f.arenaH, f.arenaOK = w, h, true
}

func (f *fakeSurface) setBadge(w, h float64) {
	f.badgeW, f.badgeH, f.badgeOK = w, h, true
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testPalette = []color.RGBA{
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xff, G: 0xff, A: 0xff},
}

// newTestAnimator wires an animator to a fake surface with a known arena and badge.
func newTestAnimator(t *testing.T, speed float64) (*Animator, *fakeSurface, *scheduler.Scheduler, *testClock) {
	t.Helper()
	surface := &fakeSurface{ready: true}
	surface.setArena(300, 300)
	surface.setBadge(20, 20)

	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	sched := scheduler.New(clock.Now)

	a, err := New(surface, sched, Options{
		Speed:   speed,
		Palette: testPalette,
		Retry:   bounce.RetryPolicy{Delay: 100 * time.Millisecond, MaxRetries: 2},
		Rand:    rand.New(rand.NewSource(11)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a, surface, sched, clock
}
