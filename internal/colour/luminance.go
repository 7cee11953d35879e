package colour

import "math"

// WCAG 2.0 contrast thresholds.
// https://www.w3.org/TR/WCAG20/#visual-audio-contrast-contrast.
const (
	ContrastAA       = 4.5
	ContrastAALarge  = 3.0
	ContrastAAA      = 7.0
	ContrastAAALarge = 4.5
)

// RelativeLuminance2 calculates WCAG 2.0 relative luminance from 8-bit channels.
// Returns a value between 0 (black) and 1 (white).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance2(r, g, b int) float64 {
	rs := gammaCorrect(float64(r) / 255)
	gs := gammaCorrect(float64(g) / 255)
	bs := gammaCorrect(float64(b) / 255)
	return 0.2126*rs + 0.7152*gs + 0.0722*bs
}

// RelativeLuminance calculates relative luminance from a packed 24-bit RGB value.
// Pass a packed colour with its alpha byte shifted out (rgba >> 8).
func RelativeLuminance(rgb uint32) float64 {
	return RelativeLuminance2(
		int((rgb>>16)&0xFF),
		int((rgb>>8)&0xFF),
		int(rgb&0xFF),
	)
}

// gammaCorrect converts an sRGB component in [0, 1] to linear light.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the WCAG 2.0 contrast ratio between two luminances.
// The result is symmetric, 1 for equal inputs and 21 for black against white.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(l1, l2 float64) float64 {
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Luminance returns the relative luminance of c, ignoring alpha.
func Luminance(c Color) float64 {
	return RelativeLuminance(c.RGBA >> 8)
}

// Contrast returns the contrast ratio between two colours, ignoring alpha.
func Contrast(a, b Color) float64 {
	return ContrastRatio(Luminance(a), Luminance(b))
}

// MeetsAA reports whether fg on bg meets WCAG AA for normal (or large) text.
func MeetsAA(bg, fg Color, largeText bool) bool {
	if largeText {
		return Contrast(bg, fg) >= ContrastAALarge
	}
	return Contrast(bg, fg) >= ContrastAA
}

// MeetsAAA reports whether fg on bg meets WCAG AAA for normal (or large) text.
func MeetsAAA(bg, fg Color, largeText bool) bool {
	if largeText {
		return Contrast(bg, fg) >= ContrastAAALarge
	}
	return Contrast(bg, fg) >= ContrastAAA
}
