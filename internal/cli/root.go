// Package cli provides the command-line interface for celltint.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/celltint/internal/colour"
	"github.com/jmylchreest/celltint/internal/colourmanager"
	"github.com/jmylchreest/celltint/internal/config"
	"github.com/jmylchreest/celltint/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
	colorMode  string

	logger hclog.Logger
}

// NewRootCmd builds the celltint command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "celltint",
		Short: "Colour contrast tooling for terminal text rendering",
		Long: `celltint computes and adjusts colours for a text-rendering surface.

It converts between hex and packed colours, composites translucent colours,
measures WCAG 2.0 luminance and contrast, and pushes foreground colours away
from their background until they reach a minimum contrast ratio.

Colours may be given as #rrggbb, as a palette index (0-255) or as an ANSI
colour name (red, brightblue, color8, ...) resolved against the theme.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose && opts.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			switch opts.colorMode {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("invalid --color value: %s (valid: auto, always, never)", opts.colorMode)
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "theme config file (.yaml, .toml, .json); defaults to $"+config.EnvConfigPath)
	rootCmd.PersistentFlags().StringVar(&opts.colorMode, "color", "auto", "colour previews (auto, always, never)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newContrastCmd(opts),
		newBlendCmd(opts),
		newEnsureCmd(opts),
		newPaletteCmd(opts),
		newRenderCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger creates the CLI logger: debug when verbose, silent when quiet.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	switch {
	case quiet:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "celltint",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	case verbose:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "celltint",
			Output: w,
			Level:  hclog.Debug,
		})
	default:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "celltint",
			Output: w,
			Level:  hclog.Info,
		})
	}
}

// loadManager reads the config file and builds a colour manager from it.
// Precedence for the contrast ratio is: ratioOverride (when non-zero), then
// CELLTINT_MIN_CONTRAST, then the config file.
func (o *globalOptions) loadManager(ratioOverride float64) (*colourmanager.Manager, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	m, err := colourmanager.NewBuilder().
		WithConfig(cfg.ManagerConfig()).
		WithTheme(cfg.Theme).
		WithLogger(o.logger.Named("manager")).
		WithEnvConfig().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create colour manager: %w", err)
	}
	if ratioOverride != 0 {
		if err := m.SetMinimumContrastRatio(ratioOverride); err != nil {
			return nil, err
		}
	}

	o.logger.Debug("colour manager ready", "config", o.configPath, "minimum_contrast_ratio", m.MinimumContrastRatio())
	return m, nil
}

// previewEnabled reports whether ANSI previews should be written to w.
func (o *globalOptions) previewEnabled(w io.Writer) bool {
	switch o.colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveColour parses a colour argument: "#rrggbb", a palette index or an
// ANSI colour name. Hex input is validated here because colour.FromCSS
// trusts its input.
func resolveColour(m *colourmanager.Manager, arg string) (colour.Color, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "#") {
		if err := colourmanager.ValidateCSS(arg); err != nil {
			return colour.Color{}, err
		}
		return colour.FromCSS(strings.ToLower(arg)), nil
	}
	if index, err := strconv.Atoi(arg); err == nil {
		return m.Resolve(index)
	}
	return m.ResolveName(arg)
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
