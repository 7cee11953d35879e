package colour

import (
	"strconv"
)

// ToPaddedHex formats a channel value as two lowercase hex digits.
// Values outside 0-255 are not validated: larger values yield more digits.
func ToPaddedHex(c int) string {
	s := strconv.FormatInt(int64(c), 16)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// ToCSS builds "#rrggbb" from the three colour channels.
func ToCSS(r, g, b int) string {
	return "#" + ToPaddedHex(r) + ToPaddedHex(g) + ToPaddedHex(b)
}

// ToRGBA packs r, g and b into a fully opaque [R][G][B][A] value.
func ToRGBA(r, g, b int) uint32 {
	return ToRGBAWithAlpha(r, g, b, 0xFF)
}

// ToRGBAWithAlpha packs the four channels into [R][G][B][A].
// Out-of-range inputs wrap into the unsigned 32-bit range.
func ToRGBAWithAlpha(r, g, b, a int) uint32 {
	return uint32(r<<24 | g<<16 | b<<8 | a)
}

// ToChannels unpacks an [R][G][B][A] value.
func ToChannels(rgba uint32) (r, g, b, a uint8) {
	return uint8(rgba >> 24), uint8(rgba >> 16), uint8(rgba >> 8), uint8(rgba)
}

// ToColor builds a Color with synchronised CSS and packed forms.
func ToColor(r, g, b, a int) Color {
	return Color{
		CSS:  ToCSS(r, g, b),
		RGBA: ToRGBAWithAlpha(r, g, b, a),
	}
}

// FromCSS parses "#rrggbb" into a fully opaque Color, keeping css verbatim.
//
// The input is trusted: nothing is validated. The leading hex digits after the
// first character are read as one integer (a string with no leading hex digit
// reads as 0), shifted left by 8 and given an alpha of 0xFF. Malformed strings
// therefore produce a meaningless but well-defined value. Unlike a general
// integer parser, no leading whitespace, sign or "0x" prefix is accepted after
// the first character: each of those ends the digit run at once. Callers
// accepting user input must validate it first (see colourmanager.ValidateCSS).
func FromCSS(css string) Color {
	var v uint32
	if len(css) > 0 {
		for i := 1; i < len(css); i++ {
			d, ok := hexDigit(css[i])
			if !ok {
				break
			}
			v = v<<4 | uint32(d)
		}
	}
	return Color{
		CSS:  css,
		RGBA: v<<8 | 0xFF,
	}
}

// hexDigit converts a single hex character to its value.
func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
