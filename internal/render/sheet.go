package render

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/celltint/internal/colourmanager"
)

const (
	sheetEntriesPerRow = 16
	sheetEntryWidth    = 4 // "255" plus a gap
)

// PaletteSheet renders every palette index as its own number, drawn in that
// palette colour on the theme background. With a minimum contrast ratio set,
// the result shows which entries the manager had to adjust.
func PaletteSheet(m *colourmanager.Manager, logger hclog.Logger) (*Renderer, error) {
	rows := colourmanager.PaletteSize / sheetEntriesPerRow
	r, err := New(sheetEntriesPerRow*sheetEntryWidth, rows, m, WithLogger(logger))
	if err != nil {
		return nil, err
	}

	bg := m.Colors().Background
	for i := 0; i < colourmanager.PaletteSize; i++ {
		fg, err := m.Resolve(i)
		if err != nil {
			return nil, err
		}
		col := (i % sheetEntriesPerRow) * sheetEntryWidth
		row := i / sheetEntriesPerRow
		if _, err := r.DrawString(col, row, fmt.Sprintf("%3d", i), fg, bg); err != nil {
			return nil, err
		}
	}
	return r, nil
}
