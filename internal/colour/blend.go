package colour

import "math"

// Blend composites fg over an opaque bg using fg's alpha byte as the weight.
// The result is always opaque. A fully opaque fg is returned unchanged.
func Blend(bg, fg Color) Color {
	a := float64(fg.RGBA&0xFF) / 255
	if a == 1 {
		return fg
	}

	blend := func(shift uint) int {
		fgc := int((fg.RGBA >> shift) & 0xFF)
		bgc := int((bg.RGBA >> shift) & 0xFF)
		return bgc + roundHalfUp(float64(fgc-bgc)*a)
	}

	r := blend(24)
	g := blend(16)
	b := blend(8)
	return Color{
		CSS:  ToCSS(r, g, b),
		RGBA: ToRGBA(r, g, b),
	}
}

// roundHalfUp rounds to the nearest integer with ties toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// IsOpaque reports whether c has a full alpha byte.
func IsOpaque(c Color) bool {
	return c.RGBA&0xFF == 0xFF
}

// Opaque returns c with its alpha byte forced to 0xFF.
func Opaque(c Color) Color {
	r, g, b, _ := ToChannels(c.RGBA)
	return Color{
		CSS:  c.CSS,
		RGBA: ToRGBA(int(r), int(g), int(b)),
	}
}

// WithOpacity returns c with its alpha set from opacity in [0, 1].
// Opacity outside that range is clamped.
func WithOpacity(c Color, opacity float64) Color {
	opacity = math.Max(0, math.Min(1, opacity))
	r, g, b, _ := ToChannels(c.RGBA)
	return Color{
		CSS:  c.CSS,
		RGBA: ToRGBAWithAlpha(int(r), int(g), int(b), roundHalfUp(opacity*255)),
	}
}

// MultiplyOpacity scales c's existing alpha by factor.
func MultiplyOpacity(c Color, factor float64) Color {
	return WithOpacity(c, float64(c.A())/255*factor)
}
