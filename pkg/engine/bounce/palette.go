package bounce

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	gcolor "github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrPaletteTooSmall is returned when a palette has fewer than two distinct colours.
	ErrPaletteTooSmall = errors.New("palette needs at least 2 distinct colours")
	// ErrInvalidColor is returned for a palette entry that is not a hex colour.
	ErrInvalidColor = errors.New("invalid colour")
)

// ParsePalette converts hex strings ("#ff8800", "ff8800", "#f80") into colours.
func ParsePalette(entries []string) ([]color.RGBA, error) {
	palette := make([]color.RGBA, 0, len(entries))
	for _, entry := range entries {
		rgb := gcolor.HexToRgb(entry)
		if len(rgb) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, entry)
		}
		palette = append(palette, color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 0xff})
	}
	return palette, nil
}

// Selector draws display colours from a fixed palette.
type Selector struct {
	palette []color.RGBA
	rng     *rand.Rand
}

// NewSelector validates the palette and returns a selector drawing from rng.
// Duplicate entries are dropped so every remaining colour has the same weight.
func NewSelector(palette []color.RGBA, rng *rand.Rand) (*Selector, error) {
	seen := mapset.New[color.RGBA]()
	unique := make([]color.RGBA, 0, len(palette))
	for _, c := range palette {
		if seen.Has(c) {
			continue
		}
		seen.Put(c)
		unique = append(unique, c)
	}
	if seen.Size() < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrPaletteTooSmall, seen.Size())
	}
	return &Selector{palette: unique, rng: rng}, nil
}

// First returns a uniformly chosen starting colour.
func (s *Selector) First() color.RGBA {
	return s.palette[s.rng.Intn(len(s.palette))]
}

// Next returns a colour chosen uniformly from the palette minus current.
// The result never equals current.
func (s *Selector) Next(current color.RGBA) color.RGBA {
	candidates := make([]color.RGBA, 0, len(s.palette))
	for _, c := range s.palette {
		if c != current {
			candidates = append(candidates, c)
		}
	}
	return candidates[s.rng.Intn(len(candidates))]
}
