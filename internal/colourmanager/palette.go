package colourmanager

import (
	"github.com/jmylchreest/celltint/internal/colour"
)

// cubeLevels are the channel values of the 6x6x6 colour cube (indices 16-231).
var cubeLevels = [6]int{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// resolveColors turns a validated theme into concrete colours.
func resolveColors(t Theme) Colors {
	var c Colors
	c.Foreground = colour.FromCSS(t.Foreground)
	c.Background = colour.FromCSS(t.Background)
	c.Cursor = colour.FromCSS(t.Cursor)
	c.CursorAccent = colour.FromCSS(t.CursorAccent)

	alpha := DefaultSelectionAlpha
	if t.SelectionAlpha != nil {
		alpha = *t.SelectionAlpha
	}
	c.SelectionTransparent = colour.WithOpacity(colour.FromCSS(t.SelectionBackground), float64(alpha)/255)
	c.SelectionOpaque = colour.Blend(c.Background, c.SelectionTransparent)

	for i, css := range t.ANSI() {
		c.ANSI[i] = colour.FromCSS(css)
	}
	fillExtendedPalette(&c.ANSI)
	return c
}

// fillExtendedPalette fills indices 16-255: the colour cube then 24 greys.
func fillExtendedPalette(p *[PaletteSize]colour.Color) {
	for i := 0; i < 216; i++ {
		r := cubeLevels[(i/36)%6]
		g := cubeLevels[(i/6)%6]
		b := cubeLevels[i%6]
		p[16+i] = colour.ToColor(r, g, b, 0xFF)
	}
	for i := 0; i < 24; i++ {
		v := 8 + i*10
		p[232+i] = colour.ToColor(v, v, v, 0xFF)
	}
}
