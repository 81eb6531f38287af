package scheduler

import (
	"testing"
	"time"
)

// manualClock is a Clock the test advances by hand.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestScheduler(t *testing.T) (*Scheduler, *manualClock) {
	t.Helper()
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(clock.Now), clock
}

func TestRequestFrame_RunsOnceOnNextStep(t *testing.T) {
	s, _ := newTestScheduler(t)
	calls := 0
	s.RequestFrame(func(time.Time) { calls++ })

	s.Step()
	s.Step()

	if calls != 1 {
		t.Errorf("frame callback ran %d times, want 1", calls)
	}
}

func TestRequestFrame_ReRegisteredDuringStepRunsNextStep(t *testing.T) {
	s, _ := newTestScheduler(t)
	calls := 0
	var loop func(time.Time)
	loop = func(time.Time) {
		calls++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		s.Step()
	}

	if calls != 5 {
		t.Errorf("self-rescheduling callback ran %d times in 5 steps, want 5", calls)
	}
}

func TestToken_CancelBeforeStep(t *testing.T) {
	s, _ := newTestScheduler(t)
	ran := false
	tok := s.RequestFrame(func(time.Time) { ran = true })
	tok.Cancel()

	s.Step()

	if ran {
		t.Error("cancelled frame callback ran")
	}
}

func TestToken_CancelledByEarlierCallbackInSameStep(t *testing.T) {
	s, _ := newTestScheduler(t)
	ran := false
	var second *Token
	s.RequestFrame(func(time.Time) { second.Cancel() })
	second = s.RequestFrame(func(time.Time) { ran = true })

	s.Step()

	if ran {
		t.Error("callback cancelled earlier in the same step still ran")
	}
}

func TestAfter_FiresOnceDelayElapsed(t *testing.T) {
	s, clock := newTestScheduler(t)
	fired := 0
	s.After(100*time.Millisecond, func(time.Time) { fired++ })

	clock.Advance(50 * time.Millisecond)
	s.Step()
	if fired != 0 {
		t.Fatalf("timer fired after 50ms, want to wait for 100ms")
	}

	clock.Advance(50 * time.Millisecond)
	s.Step()
	clock.Advance(time.Second)
	s.Step()
	if fired != 1 {
		t.Errorf("timer fired %d times, want 1", fired)
	}
}

func TestListen_DeliversPostedEventsBeforeFrames(t *testing.T) {
	s, _ := newTestScheduler(t)
	var order []string
	s.Listen(EventResize, func(ev Event) {
		order = append(order, "resize")
		if ev.Width != 150 || ev.Height != 90 {
			t.Errorf("event = %+v, want 150x90", ev)
		}
	})
	s.RequestFrame(func(time.Time) { order = append(order, "frame") })
	s.Post(Event{Kind: EventResize, Width: 150, Height: 90})

	s.Step()

	if len(order) != 2 || order[0] != "resize" || order[1] != "frame" {
		t.Errorf("dispatch order = %v, want [resize frame]", order)
	}
}

func TestListen_CancelledListenerIsDropped(t *testing.T) {
	s, _ := newTestScheduler(t)
	calls := 0
	tok := s.Listen(EventResize, func(Event) { calls++ })

	s.Post(Event{Kind: EventResize})
	s.Step()
	tok.Cancel()
	s.Post(Event{Kind: EventResize})
	s.Step()

	if calls != 1 {
		t.Errorf("listener ran %d times, want 1", calls)
	}
	if n := s.live.Size(); n != 0 {
		t.Errorf("%d live registrations, want 0 after cancelled listener is pruned", n)
	}
}

func TestClose_CancelsEverything(t *testing.T) {
	s, clock := newTestScheduler(t)
	ran := false
	frame := s.RequestFrame(func(time.Time) { ran = true })
	timer := s.After(time.Millisecond, func(time.Time) { ran = true })
	listener := s.Listen(EventResize, func(Event) { ran = true })

	s.Close()
	s.Post(Event{Kind: EventResize})
	clock.Advance(time.Second)
	s.Step()

	if ran {
		t.Error("callback ran after Close")
	}
	for name, tok := range map[string]*Token{"frame": frame, "timer": timer, "listener": listener} {
		if !tok.Cancelled() {
			t.Errorf("%s token not cancelled by Close", name)
		}
	}
	if late := s.RequestFrame(func(time.Time) { ran = true }); !late.Cancelled() {
		t.Error("registration after Close returned a live token")
	}
}

func TestStep_IgnoresReentrantCalls(t *testing.T) {
	s, _ := newTestScheduler(t)
	calls := 0
	s.RequestFrame(func(time.Time) {
		calls++
		s.RequestFrame(func(time.Time) { calls++ })
		s.Step()
	})
	s.Step()

	if calls != 1 {
		t.Errorf("frame callbacks ran %d times, want 1", calls)
	}
}

func TestToken_NilIsCancelled(t *testing.T) {
	var tok *Token
	tok.Cancel()
	if !tok.Cancelled() {
		t.Error("nil token reported live")
	}
}
