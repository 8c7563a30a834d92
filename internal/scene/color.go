package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for colour strings that are not six hex digits.
var ErrInvalidColor = errors.New("scene: invalid colour")

// Color is a straight (non-premultiplied) RGBA colour with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

var (
	CursorColor   = Color{0.2, 0.6, 0.1, 1}
	PenUpColor    = Color{0.9, 0.2, 0.3, 1}
	BoundaryColor = MustParseHex("000000")
	StrokeColor   = MustParseHex("000000")

	// Ghost hides a fill without removing its shape from the scene.
	Ghost = Color{1, 0, 0, 0}

	// Transparent hides the cursor.
	Transparent = Color{}
)

// ParseHex parses a six digit RGB hex string, with or without a leading
// '#'. Alpha is 1.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseHex is ParseHex for package level colours; it panics on
// malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the RGB channels as six lowercase hex digits without '#'.
func (c Color) Hex() string {
	return strings.TrimPrefix(colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), "#")
}

// Opaque returns c with alpha 1.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// Visible reports whether the colour has any opacity.
func (c Color) Visible() bool {
	return c.A > 0
}

// NRGBA converts c to an 8-bit image colour.
func (c Color) NRGBA() color.NRGBA {
	ch := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}
