// Package colour provides the colour primitives used by the rendering surface:
// hex/packed conversion, alpha compositing, WCAG luminance and contrast, and
// foreground adjustment toward a minimum contrast ratio.
//
// Every function in this package is pure. Nothing here caches or holds state;
// memoisation belongs to the colour manager.
package colour

import (
	"fmt"
	"image/color"
)

// Color is a colour carried in two synchronised forms.
//
// RGBA is packed as [R:8][G:8][B:8][A:8], most significant byte first.
// CSS is "#rrggbb" and never carries the alpha byte, so callers that care
// about translucency must read it from RGBA.
type Color struct {
	CSS  string `json:"css"`
	RGBA uint32 `json:"rgba"`
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c.RGBA >> 24) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c.RGBA >> 16) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c.RGBA >> 8) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c.RGBA) }

// String returns the colour as "#rrggbb" with the alpha appended when it is not opaque.
func (c Color) String() string {
	if c.A() == 0xFF {
		return c.CSS
	}
	return fmt.Sprintf("%s (alpha %d)", c.CSS, c.A())
}

// NRGBA returns the colour as a non-premultiplied image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// ImageColor adapts c to the image/color.Color interface.
// The packed alpha byte is treated as straight (non-premultiplied) alpha.
func (c Color) ImageColor() color.Color {
	return c.NRGBA()
}

// FromImageColor converts any image/color value into a Color.
func FromImageColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ToColor(int(n.R), int(n.G), int(n.B), int(n.A))
}
