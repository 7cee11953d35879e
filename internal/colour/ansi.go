package colour

import (
	"fmt"
	"regexp"
	"strings"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// ANSIForeground returns the escape sequence selecting c as the text colour.
func ANSIForeground(c Color) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R(), c.G(), c.B(), ansiSuffix)
}

// ANSIBackground returns the escape sequence selecting c as the cell background.
func ANSIBackground(c Color) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R(), c.G(), c.B(), ansiSuffix)
}

// Preview returns a solid block of width cells painted in c.
func Preview(c Color, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return ANSIBackground(c) + strings.Repeat(" ", width) + ansiReset
}

// PreviewWithText renders text in fg on bg, centred and padded to width.
// Text longer than width is truncated.
func PreviewWithText(bg, fg Color, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return ANSIBackground(bg) + ANSIForeground(fg) + displayText + ansiReset
}

// FormatWithLabel formats a colour preview followed by a label and its hex code.
func FormatWithLabel(c Color, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", Preview(c, width), label, c.CSS)
}

// StripANSI removes colour escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
