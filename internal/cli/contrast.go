package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/celltint/internal/colour"
	"github.com/jmylchreest/celltint/internal/colourmanager"
)

// contrastReport is the JSON form of the contrast command output.
type contrastReport struct {
	Background          string  `json:"background"`
	Foreground          string  `json:"foreground"`
	BackgroundLuminance float64 `json:"background_luminance"`
	ForegroundLuminance float64 `json:"foreground_luminance"`
	Ratio               float64 `json:"ratio"`
	AA                  bool    `json:"aa"`
	AALarge             bool    `json:"aa_large"`
	AAA                 bool    `json:"aaa"`
	AAALarge            bool    `json:"aaa_large"`
}

// newContrastCmd creates the contrast command.
func newContrastCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "contrast <background> <foreground>",
		Short: "Report WCAG luminance and contrast for a colour pair",
		Long: `Report the WCAG 2.0 relative luminance of two colours, their contrast
ratio and whether the pair passes the AA and AAA thresholds.

Examples:
  celltint contrast '#1e1e1e' '#d4d4d4'
  celltint contrast --format json 0 brightblack`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(0)
			if err != nil {
				return err
			}
			bg, err := resolveColour(m, args[0])
			if err != nil {
				return fmt.Errorf("invalid background: %w", err)
			}
			fg, err := resolveColour(m, args[1])
			if err != nil {
				return fmt.Errorf("invalid foreground: %w", err)
			}

			bgL := colour.Luminance(bg)
			fgL := colour.Luminance(fg)
			report := contrastReport{
				Background:          bg.CSS,
				Foreground:          fg.CSS,
				BackgroundLuminance: bgL,
				ForegroundLuminance: fgL,
				Ratio:               colour.ContrastRatio(bgL, fgL),
				AA:                  colour.MeetsAA(bg, fg, false),
				AALarge:             colour.MeetsAA(bg, fg, true),
				AAA:                 colour.MeetsAAA(bg, fg, false),
				AAALarge:            colour.MeetsAAA(bg, fg, true),
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, report)
			case "text":
				writeContrastText(out, report, bg, fg, opts.previewEnabled(out))
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return cmd
}

func writeContrastText(w io.Writer, r contrastReport, bg, fg colour.Color, preview bool) {
	if preview {
		fmt.Fprintln(w, colour.PreviewWithText(bg, fg, "Sample", 12))
	}
	table := NewTable([]string{"Colour", "Hex", "Luminance"})
	table.AddRow([]string{"background", r.Background, fmt.Sprintf("%.4f", r.BackgroundLuminance)})
	table.AddRow([]string{"foreground", r.Foreground, fmt.Sprintf("%.4f", r.ForegroundLuminance)})
	fmt.Fprint(w, table.Render())

	fmt.Fprintf(w, "\ncontrast ratio %.2f:1\n", r.Ratio)
	fmt.Fprintf(w, "  AA   normal %s  large %s\n", passFail(r.AA), passFail(r.AALarge))
	fmt.Fprintf(w, "  AAA  normal %s  large %s\n", passFail(r.AAA), passFail(r.AAALarge))
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

// newBlendCmd creates the blend command.
func newBlendCmd(opts *globalOptions) *cobra.Command {
	var alpha int

	cmd := &cobra.Command{
		Use:   "blend <background> <foreground>",
		Short: "Composite a translucent foreground over a background",
		Long: `Alpha-composite the foreground over the background and print the
resulting opaque colour. The foreground alpha is taken from --alpha.

Examples:
  celltint blend '#000000' '#ffffff' --alpha 128`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if alpha < 0 || alpha > 255 {
				return fmt.Errorf("invalid alpha: %d (must be 0-255)", alpha)
			}
			m, err := opts.loadManager(0)
			if err != nil {
				return err
			}
			bg, err := resolveColour(m, args[0])
			if err != nil {
				return fmt.Errorf("invalid background: %w", err)
			}
			fg, err := resolveColour(m, args[1])
			if err != nil {
				return fmt.Errorf("invalid foreground: %w", err)
			}

			fg = colour.WithOpacity(fg, float64(alpha)/255)
			result := colour.Blend(bg, fg)
			opts.logger.Debug("blended", "background", bg.CSS, "foreground", fg.CSS, "alpha", alpha, "result", result.CSS)

			out := cmd.OutOrStdout()
			if opts.previewEnabled(out) {
				fmt.Fprintln(out, colour.FormatWithLabel(result, "blended", 8))
				return nil
			}
			fmt.Fprintf(out, "%s 0x%08x\n", result.CSS, result.RGBA)
			return nil
		},
	}

	cmd.Flags().IntVarP(&alpha, "alpha", "a", 255, "foreground alpha (0-255)")
	return cmd
}

// newEnsureCmd creates the ensure command.
func newEnsureCmd(opts *globalOptions) *cobra.Command {
	var (
		ratio  float64
		legacy bool
	)

	cmd := &cobra.Command{
		Use:   "ensure <background> <foreground>",
		Short: "Adjust a foreground colour to meet a contrast ratio",
		Long: `Push the foreground's luminance away from the background until the pair
reaches the target contrast ratio. A darker foreground is darkened and a
lighter one brightened. The adjustment is best-effort: when the channels
saturate first, the closest reachable colour is printed.

Without --ratio the target is CELLTINT_MIN_CONTRAST or the config's
minimum_contrast_ratio, falling back to 4.5 (WCAG AA) when neither enables
enforcement. --legacy, CELLTINT_LEGACY_CHANNEL_ORDER or the config's
legacy_channel_order select the legacy convergence path.

Examples:
  celltint ensure '#1e1e1e' '#404040' --ratio 4.5
  celltint ensure '#ffffff' yellow --ratio 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadManager(0)
			if err != nil {
				return err
			}

			target := ratio
			if !cmd.Flags().Changed("ratio") {
				if configured := m.MinimumContrastRatio(); configured > colourmanager.MinContrastRatio {
					target = configured
				}
			}
			if target < 1 {
				return fmt.Errorf("invalid ratio: %v (must be at least 1)", target)
			}

			bg, err := resolveColour(m, args[0])
			if err != nil {
				return fmt.Errorf("invalid background: %w", err)
			}
			fg, err := resolveColour(m, args[1])
			if err != nil {
				return fmt.Errorf("invalid foreground: %w", err)
			}

			enforcer := m.Enforcer()
			enforcer.LegacyChannelOrder = enforcer.LegacyChannelOrder || legacy
			opts.logger.Debug("ensuring contrast", "target", target, "legacy_channel_order", enforcer.LegacyChannelOrder)

			out := cmd.OutOrStdout()
			adjusted, needed := enforcer.EnsureContrastRatio(bg, fg, target)
			if !needed {
				fmt.Fprintf(out, "%s (no adjustment needed, %.2f:1)\n", fg.CSS, colour.Contrast(bg, fg))
				return nil
			}

			achieved := colour.Contrast(bg, adjusted)
			if achieved < target {
				opts.logger.Warn("target ratio not reachable", "target", target, "achieved", achieved)
			}
			if opts.previewEnabled(out) {
				fmt.Fprintf(out, "%s -> %s\n", colour.PreviewWithText(bg, fg, fg.CSS, 9), colour.PreviewWithText(bg, adjusted, adjusted.CSS, 9))
			}
			fmt.Fprintf(out, "%s (%.2f:1)\n", adjusted.CSS, achieved)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&ratio, "ratio", "r", colour.ContrastAA, "target contrast ratio (defaults to the configured minimum)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "use the legacy green/blue-swapped convergence path")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
