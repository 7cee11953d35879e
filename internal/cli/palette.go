package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/celltint/internal/colour"
	"github.com/jmylchreest/celltint/internal/colourmanager"
)

// paletteEntry is one row of the palette command output.
type paletteEntry struct {
	Index         int     `json:"index"`
	Colour        string  `json:"colour"`
	Ratio         float64 `json:"ratio"`
	Adjusted      string  `json:"adjusted,omitempty"`
	AdjustedRatio float64 `json:"adjusted_ratio,omitempty"`
}

// newPaletteCmd creates the palette command.
func newPaletteCmd(opts *globalOptions) *cobra.Command {
	var (
		ratio  float64
		format string
		count  int
	)

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List the resolved palette and contrast adjustments",
		Long: `Resolve the theme's 256-colour palette and show each entry's contrast
against the theme background. With a minimum contrast ratio (from the config
or --ratio), entries below it are listed with their adjusted colour.

Examples:
  celltint palette --count 16
  celltint palette --config theme.yaml --ratio 4.5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > colourmanager.PaletteSize {
				return fmt.Errorf("invalid count: %d (must be 1-%d)", count, colourmanager.PaletteSize)
			}
			m, err := opts.loadManager(ratio)
			if err != nil {
				return err
			}

			bg := m.Colors().Background
			entries := make([]paletteEntry, 0, count)
			for i := 0; i < count; i++ {
				fg, err := m.Resolve(i)
				if err != nil {
					return err
				}
				entry := paletteEntry{Index: i, Colour: fg.CSS, Ratio: colour.Contrast(bg, fg)}
				if adjusted := m.AdjustForeground(bg, fg); adjusted != fg {
					entry.Adjusted = adjusted.CSS
					entry.AdjustedRatio = colour.Contrast(bg, adjusted)
				}
				entries = append(entries, entry)
			}

			stats := m.CacheStats()
			opts.logger.Debug("palette resolved", "entries", len(entries), "cache_hits", stats.Hits, "cache_misses", stats.Misses)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, entries)
			case "text":
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
			}

			preview := opts.previewEnabled(out)
			headers := []string{"Index", "Colour", "Ratio", "Adjusted", "Ratio"}
			if preview {
				headers = append([]string{"Swatch"}, headers...)
			}
			table := NewTable(headers)
			for _, e := range entries {
				row := []string{strconv.Itoa(e.Index), e.Colour, fmt.Sprintf("%.2f", e.Ratio), "", ""}
				if e.Adjusted != "" {
					row[3] = e.Adjusted
					row[4] = fmt.Sprintf("%.2f", e.AdjustedRatio)
				}
				if preview {
					fg := colour.FromCSS(e.Colour)
					if e.Adjusted != "" {
						fg = colour.FromCSS(e.Adjusted)
					}
					row = append([]string{colour.PreviewWithText(bg, fg, "Aa", 6)}, row...)
				}
				table.AddRow(row)
			}
			fmt.Fprint(out, table.Render())
			fmt.Fprintf(out, "\nbackground %s, minimum contrast %.2f:1\n", bg.CSS, m.MinimumContrastRatio())
			return nil
		},
	}

	cmd.Flags().Float64VarP(&ratio, "ratio", "r", 0, "minimum contrast ratio (overrides config)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().IntVarP(&count, "count", "n", colourmanager.PaletteSize, "number of palette entries to show")
	return cmd
}
