package colour

import "math"

// Enforcer adjusts foreground colours until they reach a contrast ratio.
// The zero value uses canonical (R, G, B) channel order throughout.
type Enforcer struct {
	// LegacyChannelOrder passes the foreground's green and blue channels in
	// swapped positions to the luminance calculation inside the adjustment
	// loops. This reproduces the convergence path of older terminal renderers,
	// which weight green by 0.0722 and blue by 0.7152 while iterating. The
	// initial direction decision always uses canonical order.
	LegacyChannelOrder bool
}

// defaultEnforcer backs the package-level helpers.
var defaultEnforcer = Enforcer{}

// EnsureContrastRatio returns fg adjusted so its contrast against bg reaches ratio.
// The boolean is false when fg already meets ratio and should be kept as is.
//
// The foreground's luminance is only ever pushed further away from the
// background's: a darker fg gets darker and a lighter fg gets lighter. The
// result is best-effort and may still fall short when the channels saturate.
func EnsureContrastRatio(bg, fg Color, ratio float64) (Color, bool) {
	return defaultEnforcer.EnsureContrastRatio(bg, fg, ratio)
}

// ReduceLuminance darkens fg against bg until ratio is met or fg is black.
func ReduceLuminance(bg, fg Color, ratio float64) Color {
	return defaultEnforcer.ReduceLuminance(bg, fg, ratio)
}

// IncreaseLuminance brightens fg against bg until ratio is met or fg is white.
func IncreaseLuminance(bg, fg Color, ratio float64) Color {
	return defaultEnforcer.IncreaseLuminance(bg, fg, ratio)
}

// EnsureContrastRatio is the Enforcer form of the package-level EnsureContrastRatio.
func (e Enforcer) EnsureContrastRatio(bg, fg Color, ratio float64) (Color, bool) {
	bgL := RelativeLuminance(bg.RGBA >> 8)
	fgL := RelativeLuminance(fg.RGBA >> 8)
	if ContrastRatio(bgL, fgL) >= ratio {
		return Color{}, false
	}
	if fgL < bgL {
		return e.ReduceLuminance(bg, fg, ratio), true
	}
	return e.IncreaseLuminance(bg, fg, ratio), true
}

// ReduceLuminance subtracts ceil(c*0.1) from each channel per step.
func (e Enforcer) ReduceLuminance(bg, fg Color, ratio float64) Color {
	r, g, b := e.adjust(bg, fg, ratio, reduceStep, 0)
	return toOpaqueColor(r, g, b)
}

// IncreaseLuminance adds floor((255-c)*0.1) to each channel per step.
// A channel below 255 always moves by at least one so the loop terminates.
func (e Enforcer) IncreaseLuminance(bg, fg Color, ratio float64) Color {
	r, g, b := e.adjust(bg, fg, ratio, increaseStep, 255)
	return toOpaqueColor(r, g, b)
}

func reduceStep(c int) int {
	return max(0, c-int(math.Ceil(float64(c)*0.1)))
}

func increaseStep(c int) int {
	if c >= 255 {
		return 255
	}
	return min(255, c+max(1, int(math.Floor(float64(255-c)*0.1))))
}

// adjust applies step to every foreground channel until the contrast against
// bg reaches ratio or all channels sit at bound. Each step moves a channel
// not already at bound by at least one, so there are at most 255 iterations.
func (e Enforcer) adjust(bg, fg Color, ratio float64, step func(int) int, bound int) (r, g, b int) {
	bgL := RelativeLuminance(bg.RGBA >> 8)
	fr, fg8, fb, _ := ToChannels(fg.RGBA)
	r, g, b = int(fr), int(fg8), int(fb)

	cr := ContrastRatio(e.luminance(r, g, b), bgL)
	for cr < ratio && (r != bound || g != bound || b != bound) {
		r, g, b = step(r), step(g), step(b)
		cr = ContrastRatio(e.luminance(r, g, b), bgL)
	}
	return r, g, b
}

// luminance is the per-iteration foreground luminance.
func (e Enforcer) luminance(r, g, b int) float64 {
	if e.LegacyChannelOrder {
		return RelativeLuminance2(r, b, g)
	}
	return RelativeLuminance2(r, g, b)
}

func toOpaqueColor(r, g, b int) Color {
	return Color{
		CSS:  ToCSS(r, g, b),
		RGBA: ToRGBA(r, g, b),
	}
}
