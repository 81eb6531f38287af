// Package ebiten is the desktop window backend. The arena is the window
// minus the help row, and the badge is a coloured box around a text label.
package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"badgebounce/pkg/engine/bounce"
	"badgebounce/pkg/engine/scheduler"
	"badgebounce/pkg/game/renderer"
)

// ErrNotInitialized is returned by Run when Init has not succeeded.
var ErrNotInitialized = errors.New("window not initialized")

// Options configures the window.
type Options struct {
	Width, Height int
	Title         string
	Label         string
	Help          string
	FontSize      float64
}

// Window is an ebiten game hosting one badge.
type Window struct {
	opts Options

	fontSource *text.GoTextFaceSource
	face       *text.GoTextFace

	mu      sync.RWMutex
	winW    int
	winH    int
	laidOut bool
	badgeW  float64
	badgeH  float64
	pos     bounce.Vec
	color   color.RGBA
	shown   bool
	banner  string

	sched  *scheduler.Scheduler
	handle renderer.IntentHandler

	windowOpenedLogged bool
}

var _ renderer.Renderer = (*Window)(nil)

// New creates a window. Nothing is opened until Run.
func New(opts Options) *Window {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaultFontSize
	}
	return &Window{opts: opts}
}

// Init loads the font and measures the badge.
func (w *Window) Init() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	w.fontSource = src
	w.face = &text.GoTextFace{Source: src, Size: w.opts.FontSize}

	lw, lh := text.Measure(w.opts.Label, w.face, 0)

	w.mu.Lock()
	w.badgeW = lw + 2*badgePadding
	w.badgeH = lh + 2*badgePadding
	w.mu.Unlock()
	return nil
}

// Run opens the window and blocks until the user quits or closes it.
func (w *Window) Run(sched *scheduler.Scheduler, handle renderer.IntentHandler) error {
	if w.face == nil {
		return ErrNotInitialized
	}
	w.sched = sched
	w.handle = handle

	ebiten.SetWindowSize(w.opts.Width, w.opts.Height)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close is a no-op: ebiten tears the window down when RunGame returns.
func (w *Window) Close() {}

// SetBanner sets a line drawn in the middle of the arena. Empty hides it.
func (w *Window) SetBanner(s string) {
	w.mu.Lock()
	w.banner = s
	w.mu.Unlock()
}

// Ready reports whether the window has been laid out at least once.
func (w *Window) Ready() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.face != nil && w.laidOut
}

// ArenaSize returns the window's logical size above the help row.
func (w *Window) ArenaSize() (float64, float64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return float64(w.winW), renderer.ArenaHeight(float64(w.winH), helpRowHeight, w.opts.Help), w.laidOut
}

// BadgeSize returns the measured label box.
func (w *Window) BadgeSize() (float64, float64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.badgeW, w.badgeH, w.badgeW > 0 && w.badgeH > 0
}

// BadgeOffset returns the badge's last published position.
func (w *Window) BadgeOffset() (float64, float64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pos.X, w.pos.Y
}

// Publish sets where and in what colour the next Draw puts the badge.
func (w *Window) Publish(pos bounce.Vec, c color.RGBA) {
	w.mu.Lock()
	w.pos = pos
	w.color = c
	w.shown = true
	w.mu.Unlock()
}

// Update handles input and steps the scheduler (Ebiten interface).
func (w *Window) Update() error {
	if !w.windowOpenedLogged {
		w.windowOpenedLogged = true
		ww, wh := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", ww, wh)
	}

	for _, intent := range w.pollIntents() {
		if !w.handle(intent) {
			return ebiten.Termination
		}
	}

	w.sched.Step()
	if w.sched.Closed() {
		return ebiten.Termination
	}
	return nil
}

// Layout tracks the window size and reports changes as resize events (Ebiten interface).
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.mu.Lock()
	changed := !w.laidOut || outsideWidth != w.winW || outsideHeight != w.winH
	w.winW, w.winH = outsideWidth, outsideHeight
	w.laidOut = true
	w.mu.Unlock()

	if changed && w.sched != nil {
		aw, ah, _ := w.ArenaSize()
		w.sched.Post(scheduler.Event{
			Kind:   scheduler.EventResize,
			Width:  aw,
			Height: ah,
		})
	}
	return outsideWidth, outsideHeight
}
