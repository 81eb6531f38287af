package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	defaultFontSize = 28
	badgePadding    = 10
	helpFontSize    = 14
	helpRowHeight   = helpFontSize + 16
)

var (
	colorBackground = color.RGBA{15, 15, 26, 255}
	colorSubtle     = color.RGBA{120, 130, 180, 255}
	colorText       = color.RGBA{200, 210, 245, 255}
)

// Draw renders the arena and the badge (Ebiten interface).
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	w.mu.RLock()
	pos, clr, shown := w.pos, w.color, w.shown
	bw, bh := w.badgeW, w.badgeH
	winH := w.winH
	banner := w.banner
	w.mu.RUnlock()
	arenaW, arenaH, _ := w.ArenaSize()

	if w.face == nil {
		return
	}

	if w.opts.Help != "" {
		face := &text.GoTextFace{Source: w.fontSource, Size: helpFontSize}
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(winH)-helpFontSize-8)
		op.ColorScale.ScaleWithColor(colorSubtle)
		text.Draw(screen, w.opts.Help, face, op)
	}

	if banner != "" {
		tw, th := text.Measure(banner, w.face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate((arenaW-tw)/2, (arenaH-th)/2)
		op.ColorScale.ScaleWithColor(colorText)
		text.Draw(screen, banner, w.face, op)
	}

	if !shown {
		return
	}

	x, y := float32(pos.X), float32(pos.Y)
	vector.FillRect(screen, x, y, float32(bw), float32(bh), clr, false)
	vector.StrokeRect(screen, x, y, float32(bw), float32(bh), 2, colorBackground, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X+badgePadding, pos.Y+badgePadding)
	op.ColorScale.ScaleWithColor(labelColor(clr))
	text.Draw(screen, w.opts.Label, w.face, op)
}

// labelColor picks black or white text, whichever reads better on bg.
func labelColor(bg color.RGBA) color.RGBA {
	// Rec. 601 luma
	luma := (299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)) / 1000
	if luma > 140 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}
