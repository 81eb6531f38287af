// Package tui is the terminal backend. The arena is the terminal minus the
// help row, measured in cells, and the badge is the label on a coloured
// background.
package tui

import (
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/input"
	"badgebounce/pkg/engine/scheduler"
	"badgebounce/pkg/engine/terminal"
	"badgebounce/pkg/game/renderer"
)

// frameInterval is the ticker period, about 60 frames per second.
const frameInterval = 16 * time.Millisecond

// Options configures the terminal surface.
type Options struct {
	Label string
	Help  string
}

// Terminal draws the badge with tcell.
type Terminal struct {
	opts   Options
	screen tcell.Screen
	closed bool

	mu          sync.RWMutex
	cols, rows  int
	pos         bounce.Vec
	color       color.RGBA
	shown       bool
	banner      string
	lastButtons tcell.ButtonMask

	sched *scheduler.Scheduler
}

var _ renderer.Renderer = (*Terminal)(nil)

// New creates a terminal backend on the real terminal.
func New(opts Options) *Terminal {
	return &Terminal{opts: opts}
}

// NewWithScreen creates a terminal backend on screen, which Init will
// initialise. Tests pass a simulation screen.
func NewWithScreen(opts Options, screen tcell.Screen) *Terminal {
	return &Terminal{opts: opts, screen: screen}
}

// Init takes over the terminal.
func (t *Terminal) Init() error {
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()

	cols, rows := fitSize(t.screen.Size())
	t.mu.Lock()
	t.cols, t.rows = cols, rows
	t.mu.Unlock()
	return nil
}

// fitSize falls back to the controlling terminal's size when the screen
// has not reported one yet.
func fitSize(cols, rows int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return terminal.GetSize()
	}
	return cols, rows
}

// Close restores the terminal.
func (t *Terminal) Close() {
	if t.screen != nil && !t.closed {
		t.closed = true
		t.screen.Fini()
	}
}

// Run drives sched from a ticker until handle returns false or the
// scheduler is closed. Terminal events are read on a helper goroutine and
// handled on this one.
func (t *Terminal) Run(sched *scheduler.Scheduler, handle renderer.IntentHandler) error {
	t.sched = sched

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go t.pollEvents(eventChan, done)

	t.draw()
	for {
		select {
		case ev := <-eventChan:
			for _, intent := range t.handleEvent(ev) {
				if !handle(intent) {
					return nil
				}
			}
		case <-ticker.C:
			sched.Step()
			if sched.Closed() {
				return nil
			}
			t.draw()
		}
	}
}

// pollEvents forwards screen events to events until the screen is finalised
// or done is closed.
func (t *Terminal) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// SetBanner sets a line shown in the middle of the arena. Empty hides it.
func (t *Terminal) SetBanner(s string) {
	t.mu.Lock()
	t.banner = s
	t.mu.Unlock()
}

// Ready reports whether the screen is up.
func (t *Terminal) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screen != nil && t.cols > 0
}

// ArenaSize returns the drawable area in cells.
func (t *Terminal) ArenaSize() (float64, float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := renderer.ArenaHeight(float64(t.rows), 1, t.opts.Help)
	if t.cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return float64(t.cols), rows, true
}

// BadgeSize returns the label width in cells plus one cell of padding each side.
func (t *Terminal) BadgeSize() (float64, float64, bool) {
	w := runewidth.StringWidth(t.opts.Label)
	if w == 0 {
		return 0, 0, false
	}
	return float64(w + 2), 1, true
}

// BadgeOffset returns the last published position.
func (t *Terminal) BadgeOffset() (float64, float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pos.X, t.pos.Y
}

// Publish records the badge position and colour for the next draw.
func (t *Terminal) Publish(pos bounce.Vec, c color.RGBA) {
	t.mu.Lock()
	t.pos = pos
	t.color = c
	t.shown = true
	t.mu.Unlock()
}

// handleEvent applies resizes and turns keys and clicks into intents.
func (t *Terminal) handleEvent(ev tcell.Event) []input.Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := ev.Size()
		t.mu.Lock()
		t.cols, t.rows = cols, rows
		t.mu.Unlock()
		if t.sched != nil {
			aw, ah, _ := t.ArenaSize()
			t.sched.Post(scheduler.Event{Kind: scheduler.EventResize, Width: aw, Height: ah})
		}

	case *tcell.EventKey:
		code := keyCode(ev)
		if code == "" {
			return nil
		}
		if intent := input.Resolve(input.RawInput{
			Device:    input.DeviceTerminal,
			Code:      code,
			Timestamp: ev.When(),
		}); intent.Action != input.ActionNone {
			return []input.Intent{intent}
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		t.mu.Lock()
		pressed := buttons&tcell.Button1 != 0 && t.lastButtons&tcell.Button1 == 0
		t.lastButtons = buttons
		t.mu.Unlock()

		x, y := ev.Position()
		if pressed && t.hitCell(x, y) {
			return []input.Intent{input.Resolve(input.RawInput{
				Device:    input.DeviceMouse,
				Code:      "mouse_left_badge",
				Timestamp: ev.When(),
			})}
		}
	}
	return nil
}

// hitCell reports whether cell x, y is one of the cells the badge is
// drawn on.
func (t *Terminal) hitCell(x, y int) bool {
	w, _, ok := t.BadgeSize()
	if !ok {
		return false
	}
	t.mu.RLock()
	pos, shown := t.pos, t.shown
	t.mu.RUnlock()
	if !shown {
		return false
	}
	bx, by := cell(pos.X), cell(pos.Y)
	return y == by && x >= bx && x < bx+int(w)
}

// keyCode converts a tcell key event to a binding code.
func keyCode(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return "ctrl_c"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return ""
}

// draw renders one frame.
func (t *Terminal) draw() {
	t.mu.RLock()
	pos, clr, shown := t.pos, t.color, t.shown
	cols, rows := t.cols, t.rows
	banner := t.banner
	t.mu.RUnlock()

	t.screen.Clear()

	if t.opts.Help != "" && rows > 0 {
		drawText(t.screen, 0, rows-1, tcell.StyleDefault.Dim(true), t.opts.Help)
	}
	if banner != "" {
		x := (cols - runewidth.StringWidth(banner)) / 2
		drawText(t.screen, x, rows/2, tcell.StyleDefault.Bold(true), banner)
	}
	if shown {
		bg := tcell.NewRGBColor(int32(clr.R), int32(clr.G), int32(clr.B))
		style := tcell.StyleDefault.Background(bg).Foreground(labelColor(clr))
		x, y := cell(pos.X), cell(pos.Y)
		drawText(t.screen, x, y, style, " "+t.opts.Label+" ")
	}

	t.screen.Show()
}

// cell maps a fractional position to the cell it falls in.
func cell(v float64) int {
	return int(math.Floor(v))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func labelColor(bg color.RGBA) tcell.Color {
	luma := (299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)) / 1000
	if luma > 140 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
