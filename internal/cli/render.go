package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/celltint/internal/render"
	"github.com/jmylchreest/celltint/internal/security"
)

// newRenderCmd creates the render command.
func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		output string
		text   string
		ratio  float64
		scale  int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render text or the palette sheet to a PNG",
		Long: `Draw character cells into a PNG image using the theme colours.

Without --text the full 256-colour palette sheet is rendered, each index
drawn in its own colour on the theme background after contrast adjustment.
With --text each line is drawn in the theme foreground.

Examples:
  celltint render --output palette.png --ratio 4.5
  celltint render --output sample.png --text 'hello, world' --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if err := security.ValidateOutputPath(output); err != nil {
				return err
			}
			m, err := opts.loadManager(ratio)
			if err != nil {
				return err
			}
			logger := opts.logger.Named("render")

			var r *render.Renderer
			if text == "" {
				r, err = render.PaletteSheet(m, logger)
				if err != nil {
					return fmt.Errorf("failed to render palette: %w", err)
				}
			} else {
				lines := strings.Split(text, `\n`)
				cols := 1
				for _, line := range lines {
					cols = max(cols, render.StringCells(line))
				}
				r, err = render.New(cols, len(lines), m, render.WithLogger(logger))
				if err != nil {
					return err
				}
				colors := m.Colors()
				for row, line := range lines {
					if _, err := r.DrawString(0, row, line, colors.Foreground, colors.Background); err != nil {
						return err
					}
				}
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			if err := r.EncodePNG(f, scale); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}

			logger.Info("wrote image", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file")
	cmd.Flags().StringVar(&text, "text", "", `text to render (use \n for line breaks)`)
	cmd.Flags().Float64VarP(&ratio, "ratio", "r", 0, "minimum contrast ratio (overrides config)")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer upscale factor")
	return cmd
}
