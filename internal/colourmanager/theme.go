package colourmanager

import (
	"strings"
)

// DefaultSelectionAlpha is the alpha applied to the selection background when
// a theme does not set one (roughly 30% opacity).
const DefaultSelectionAlpha = 0x4d

// Theme is the user-facing colour configuration of a rendering surface.
// Every colour is "#rrggbb"; empty fields fall back to DefaultTheme.
type Theme struct {
	Foreground          string `json:"foreground" yaml:"foreground" toml:"foreground" validate:"omitempty,csscolor"`
	Background          string `json:"background" yaml:"background" toml:"background" validate:"omitempty,csscolor"`
	Cursor              string `json:"cursor" yaml:"cursor" toml:"cursor" validate:"omitempty,csscolor"`
	CursorAccent        string `json:"cursor_accent" yaml:"cursor_accent" toml:"cursor_accent" validate:"omitempty,csscolor"`
	SelectionBackground string `json:"selection_background" yaml:"selection_background" toml:"selection_background" validate:"omitempty,csscolor"`
	SelectionAlpha      *int   `json:"selection_alpha,omitempty" yaml:"selection_alpha,omitempty" toml:"selection_alpha,omitempty" validate:"omitempty,gte=0,lte=255"`

	Black         string `json:"black" yaml:"black" toml:"black" validate:"omitempty,csscolor"`
	Red           string `json:"red" yaml:"red" toml:"red" validate:"omitempty,csscolor"`
	Green         string `json:"green" yaml:"green" toml:"green" validate:"omitempty,csscolor"`
	Yellow        string `json:"yellow" yaml:"yellow" toml:"yellow" validate:"omitempty,csscolor"`
	Blue          string `json:"blue" yaml:"blue" toml:"blue" validate:"omitempty,csscolor"`
	Magenta       string `json:"magenta" yaml:"magenta" toml:"magenta" validate:"omitempty,csscolor"`
	Cyan          string `json:"cyan" yaml:"cyan" toml:"cyan" validate:"omitempty,csscolor"`
	White         string `json:"white" yaml:"white" toml:"white" validate:"omitempty,csscolor"`
	BrightBlack   string `json:"bright_black" yaml:"bright_black" toml:"bright_black" validate:"omitempty,csscolor"`
	BrightRed     string `json:"bright_red" yaml:"bright_red" toml:"bright_red" validate:"omitempty,csscolor"`
	BrightGreen   string `json:"bright_green" yaml:"bright_green" toml:"bright_green" validate:"omitempty,csscolor"`
	BrightYellow  string `json:"bright_yellow" yaml:"bright_yellow" toml:"bright_yellow" validate:"omitempty,csscolor"`
	BrightBlue    string `json:"bright_blue" yaml:"bright_blue" toml:"bright_blue" validate:"omitempty,csscolor"`
	BrightMagenta string `json:"bright_magenta" yaml:"bright_magenta" toml:"bright_magenta" validate:"omitempty,csscolor"`
	BrightCyan    string `json:"bright_cyan" yaml:"bright_cyan" toml:"bright_cyan" validate:"omitempty,csscolor"`
	BrightWhite   string `json:"bright_white" yaml:"bright_white" toml:"bright_white" validate:"omitempty,csscolor"`
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	alpha := DefaultSelectionAlpha
	return Theme{
		Foreground:          "#ffffff",
		Background:          "#000000",
		Cursor:              "#ffffff",
		CursorAccent:        "#000000",
		SelectionBackground: "#ffffff",
		SelectionAlpha:      &alpha,

		Black:         ansiColours[0].css,
		Red:           ansiColours[1].css,
		Green:         ansiColours[2].css,
		Yellow:        ansiColours[3].css,
		Blue:          ansiColours[4].css,
		Magenta:       ansiColours[5].css,
		Cyan:          ansiColours[6].css,
		White:         ansiColours[7].css,
		BrightBlack:   ansiColours[8].css,
		BrightRed:     ansiColours[9].css,
		BrightGreen:   ansiColours[10].css,
		BrightYellow:  ansiColours[11].css,
		BrightBlue:    ansiColours[12].css,
		BrightMagenta: ansiColours[13].css,
		BrightCyan:    ansiColours[14].css,
		BrightWhite:   ansiColours[15].css,
	}
}

// WithDefaults returns a copy of t with every empty field taken from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&t.Foreground, d.Foreground)
	fill(&t.Background, d.Background)
	fill(&t.Cursor, d.Cursor)
	fill(&t.CursorAccent, d.CursorAccent)
	fill(&t.SelectionBackground, d.SelectionBackground)
	if t.SelectionAlpha == nil {
		t.SelectionAlpha = d.SelectionAlpha
	}

	ansi := t.ansiFields()
	def := d.ansiFields()
	for i := range ansi {
		fill(ansi[i], *def[i])
	}
	return t
}

// ANSI returns the 16 theme colours in palette order.
func (t Theme) ANSI() [16]string {
	var out [16]string
	for i, p := range t.ansiFields() {
		out[i] = *p
	}
	return out
}

// ansiFields returns pointers to the 16 ANSI fields in palette order.
func (t *Theme) ansiFields() [16]*string {
	return [16]*string{
		&t.Black, &t.Red, &t.Green, &t.Yellow,
		&t.Blue, &t.Magenta, &t.Cyan, &t.White,
		&t.BrightBlack, &t.BrightRed, &t.BrightGreen, &t.BrightYellow,
		&t.BrightBlue, &t.BrightMagenta, &t.BrightCyan, &t.BrightWhite,
	}
}

// ansiColour is a named entry of the 16-colour ANSI palette.
type ansiColour struct {
	name    string
	css     string
	aliases []string
}

// Standard ANSI colours (xterm-256 basic 16) with their common names.
var ansiColours = [16]ansiColour{
	// Normal colours (0-7).
	{name: "black", css: "#000000", aliases: []string{"color0"}},
	{name: "red", css: "#cd3131", aliases: []string{"color1"}},
	{name: "green", css: "#0dbc79", aliases: []string{"color2"}},
	{name: "yellow", css: "#e5e510", aliases: []string{"color3"}},
	{name: "blue", css: "#2472c8", aliases: []string{"color4"}},
	{name: "magenta", css: "#bc3fbc", aliases: []string{"color5", "purple"}},
	{name: "cyan", css: "#11a8cd", aliases: []string{"color6"}},
	{name: "white", css: "#e5e5e5", aliases: []string{"color7", "gray", "grey"}},

	// Bright colours (8-15).
	{name: "brightblack", css: "#666666", aliases: []string{"color8", "darkgray", "darkgrey"}},
	{name: "brightred", css: "#f14c4c", aliases: []string{"color9"}},
	{name: "brightgreen", css: "#23d18b", aliases: []string{"color10"}},
	{name: "brightyellow", css: "#f5f543", aliases: []string{"color11"}},
	{name: "brightblue", css: "#3b8eea", aliases: []string{"color12"}},
	{name: "brightmagenta", css: "#d670d6", aliases: []string{"color13", "brightpurple"}},
	{name: "brightcyan", css: "#29b8db", aliases: []string{"color14"}},
	{name: "brightwhite", css: "#ffffff", aliases: []string{"color15"}},
}

// ANSIIndex returns the palette index for an ANSI colour name or alias.
// Matching ignores case, spaces, dashes and underscores.
func ANSIIndex(name string) (int, bool) {
	normalized := normalizeName(name)
	for i, ac := range ansiColours {
		if ac.name == normalized {
			return i, true
		}
		for _, alias := range ac.aliases {
			if alias == normalized {
				return i, true
			}
		}
	}
	return 0, false
}

// ANSINames returns all supported ANSI colour names and aliases.
func ANSINames() []string {
	names := make([]string, 0, len(ansiColours)*2)
	for _, ac := range ansiColours {
		names = append(names, ac.name)
		names = append(names, ac.aliases...)
	}
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
}
