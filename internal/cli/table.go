package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/celltint/internal/colour"
)

// Table is a plain-text table with columns sized to their widest cell.
// Widths are measured in terminal cells with ANSI colour sequences ignored,
// so cells may carry colour previews.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalized := make([]string, len(t.headers))
	copy(normalized, row)
	t.rows = append(t.rows, normalized)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], displayWidth(cell))
		}
	}

	var result strings.Builder
	gap := strings.Repeat(" ", t.padding)
	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = padRight(cell, colWidths[i])
		}
		result.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		result.WriteString("\n")
	}

	writeLine(t.headers)

	sep := make([]string, len(t.headers))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)

	for _, row := range t.rows {
		writeLine(row)
	}
	return result.String()
}

// displayWidth returns the number of terminal cells s occupies.
func displayWidth(s string) int {
	return runewidth.StringWidth(colour.StripANSI(s))
}

// padRight pads s with spaces to the desired display width.
// If s is already at least that wide, it is returned unchanged.
func padRight(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
