// Package scheduler is a cooperative, single-threaded dispatcher for frame
// callbacks, one-shot timers and surface events.
//
// Nothing runs on its own: the host loop (ebiten's Update, a terminal ticker)
// calls Step once per display frame and every callback runs synchronously on
// that goroutine. Each registration returns a Token; a cancelled token is
// checked both when a callback is queued and again right before it runs, so a
// callback cancelled earlier in the same Step never fires.
package scheduler

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Clock returns the current time. time.Now in production, a manual clock in tests.
type Clock func() time.Time

// EventKind identifies a class of surface notification.
type EventKind int

const (
	// EventResize is posted when the arena's rendered size changes.
	EventResize EventKind = iota + 1
)

// Event is a queued surface notification.
type Event struct {
	Kind          EventKind
	Width, Height float64
}

// Token is the cancellation handle for one registration.
type Token struct {
	cancelled bool
}

// Cancel stops the registration. Safe to call more than once or on nil.
func (t *Token) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Cancelled reports whether the registration has been cancelled. A nil token
// counts as cancelled.
func (t *Token) Cancelled() bool {
	return t == nil || t.cancelled
}

type frameEntry struct {
	tok *Token
	fn  func(now time.Time)
}

type timerEntry struct {
	tok *Token
	due time.Time
	fn  func(now time.Time)
}

type listenerEntry struct {
	tok  *Token
	kind EventKind
	fn   func(Event)
}

// Scheduler owns every pending callback for one surface.
type Scheduler struct {
	clock Clock

	frames    []frameEntry
	timers    []timerEntry
	listeners []listenerEntry
	events    []Event

	live     mapset.Set[*Token]
	stepping bool
	closed   bool
}

// New creates a scheduler reading time from clock. A nil clock uses time.Now.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		clock: clock,
		live:  mapset.New[*Token](),
	}
}

// RequestFrame registers fn to run once on the next Step.
func (s *Scheduler) RequestFrame(fn func(now time.Time)) *Token {
	tok := s.register()
	if !tok.Cancelled() {
		s.frames = append(s.frames, frameEntry{tok: tok, fn: fn})
	}
	return tok
}

// After registers fn to run once on the first Step at or after now+d.
func (s *Scheduler) After(d time.Duration, fn func(now time.Time)) *Token {
	tok := s.register()
	if !tok.Cancelled() {
		s.timers = append(s.timers, timerEntry{tok: tok, due: s.clock().Add(d), fn: fn})
	}
	return tok
}

// Listen registers fn for every event of the given kind until cancelled.
func (s *Scheduler) Listen(kind EventKind, fn func(Event)) *Token {
	tok := s.register()
	if !tok.Cancelled() {
		s.listeners = append(s.listeners, listenerEntry{tok: tok, kind: kind, fn: fn})
	}
	return tok
}

// Post queues ev for delivery at the start of the next Step.
func (s *Scheduler) Post(ev Event) {
	if s.closed {
		return
	}
	s.events = append(s.events, ev)
}

// Step runs one frame: queued events, then due timers, then the frame
// callbacks that were registered before this Step began.
func (s *Scheduler) Step() {
	if s.closed || s.stepping {
		return
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	now := s.clock()

	s.dispatchEvents()
	s.fireTimers(now)
	s.runFrames(now)
}

func (s *Scheduler) dispatchEvents() {
	events := s.events
	s.events = nil

	for _, ev := range events {
		// Listeners added while dispatching only see later events.
		listeners := s.listeners
		for _, l := range listeners {
			if l.kind == ev.Kind && !l.tok.Cancelled() {
				l.fn(ev)
			}
		}
	}

	kept := s.listeners[:0]
	for _, l := range s.listeners {
		if l.tok.Cancelled() {
			s.live.Remove(l.tok)
			continue
		}
		kept = append(kept, l)
	}
	s.listeners = kept
}

func (s *Scheduler) fireTimers(now time.Time) {
	pending := s.timers
	s.timers = nil

	for _, t := range pending {
		if t.tok.Cancelled() {
			s.live.Remove(t.tok)
			continue
		}
		if now.Before(t.due) {
			s.timers = append(s.timers, t)
			continue
		}
		s.live.Remove(t.tok)
		t.fn(now)
	}
}

func (s *Scheduler) runFrames(now time.Time) {
	frames := s.frames
	s.frames = nil

	for _, f := range frames {
		s.live.Remove(f.tok)
		if f.tok.Cancelled() {
			continue
		}
		f.fn(now)
	}
}

// Close cancels every outstanding registration. Later registrations return
// tokens that are already cancelled and Step becomes a no-op.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.live.Each(func(tok *Token) {
		tok.Cancel()
	})
	s.live = mapset.New[*Token]()
	s.frames = nil
	s.timers = nil
	s.listeners = nil
	s.events = nil
}

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool {
	return s.closed
}

func (s *Scheduler) register() *Token {
	tok := &Token{}
	if s.closed {
		tok.cancelled = true
		return tok
	}
	s.live.Put(tok)
	return tok
}
