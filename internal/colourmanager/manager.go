// Package colourmanager resolves a theme into concrete colours for a
// rendering surface and memoises contrast-adjusted foreground colours.
//
// The colour package stays pure; this package owns the state around it:
// the active theme, the 256-colour palette, the minimum contrast ratio and
// the cache of adjusted foregrounds keyed by (background, foreground).
package colourmanager

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/celltint/internal/colour"
)

const (
	// PaletteSize is the number of addressable palette colours.
	PaletteSize = 256

	// MinContrastRatio disables enforcement: every pair meets a ratio of 1.
	MinContrastRatio = 1.0

	// MaxContrastRatio is black against white.
	MaxContrastRatio = 21.0
)

var (
	// ErrIndexOutOfRange is returned when a palette index is outside 0-255.
	ErrIndexOutOfRange = errors.New("palette index out of range")

	// ErrUnknownColourName is returned when a name matches no ANSI colour.
	ErrUnknownColourName = errors.New("unknown colour name")

	// ErrInvalidContrastRatio is returned for ratios outside 1-21.
	ErrInvalidContrastRatio = errors.New("contrast ratio must be between 1 and 21")
)

// Colors holds the resolved colours of the active theme.
type Colors struct {
	Foreground   colour.Color
	Background   colour.Color
	Cursor       colour.Color
	CursorAccent colour.Color

	// SelectionTransparent carries the theme's selection alpha.
	SelectionTransparent colour.Color

	// SelectionOpaque is SelectionTransparent composited over Background.
	SelectionOpaque colour.Color

	ANSI [PaletteSize]colour.Color
}

// CacheStats reports contrast cache usage.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Config holds manager configuration.
type Config struct {
	// MinimumContrastRatio is the ratio foregrounds are pushed toward.
	// A value of 1 disables adjustment.
	MinimumContrastRatio float64

	// LegacyChannelOrder selects the historic green/blue-swapped
	// convergence path in the adjustment loops.
	LegacyChannelOrder bool
}

// Builder provides a fluent interface for constructing a Manager.
type Builder struct {
	config Config
	theme  Theme
	logger hclog.Logger
	useEnv bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config: Config{MinimumContrastRatio: MinContrastRatio},
		theme:  DefaultTheme(),
		logger: hclog.NewNullLogger(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithTheme sets the initial theme. Empty fields fall back to DefaultTheme.
func (b *Builder) WithTheme(theme Theme) *Builder {
	b.theme = theme
	return b
}

// WithLogger sets the logger used for cache and theme events.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads CELLTINT_MIN_CONTRAST and CELLTINT_LEGACY_CHANNEL_ORDER.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// Build constructs the Manager. Environment values override WithConfig.
func (b *Builder) Build() (*Manager, error) {
	config := b.config

	if b.useEnv {
		if v := strings.TrimSpace(os.Getenv("CELLTINT_MIN_CONTRAST")); v != "" {
			ratio, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("CELLTINT_MIN_CONTRAST: %w", err)
			}
			config.MinimumContrastRatio = ratio
		}
		if v := strings.TrimSpace(os.Getenv("CELLTINT_LEGACY_CHANNEL_ORDER")); v != "" {
			legacy, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("CELLTINT_LEGACY_CHANNEL_ORDER: %w", err)
			}
			config.LegacyChannelOrder = legacy
		}
	}

	if err := checkRatio(config.MinimumContrastRatio); err != nil {
		return nil, err
	}

	m := &Manager{
		logger:               b.logger,
		minimumContrastRatio: config.MinimumContrastRatio,
		enforcer:             colour.Enforcer{LegacyChannelOrder: config.LegacyChannelOrder},
		cache:                make(map[contrastKey]contrastEntry),
	}
	if err := m.SetTheme(b.theme); err != nil {
		return nil, err
	}
	return m, nil
}

// contrastKey identifies a background/foreground pair by packed value.
type contrastKey struct {
	bg, fg uint32
}

// contrastEntry records the adjustment for a pair. A pair that needs no
// adjustment is cached too, with adjusted false.
type contrastEntry struct {
	colour   colour.Color
	adjusted bool
}

// Manager owns the active theme and the contrast cache.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	logger hclog.Logger

	theme                Theme
	colors               Colors
	minimumContrastRatio float64
	enforcer             colour.Enforcer

	cache  map[contrastKey]contrastEntry
	hits   uint64
	misses uint64
}

// SetTheme validates and applies a theme, then clears the contrast cache.
func (m *Manager) SetTheme(theme Theme) error {
	theme = theme.WithDefaults()
	if err := theme.Validate(); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	colors := resolveColors(theme)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	m.colors = colors
	m.clearCacheLocked()
	m.logger.Debug("theme applied", "foreground", colors.Foreground.CSS, "background", colors.Background.CSS)
	return nil
}

// Theme returns the active theme with defaults filled in.
func (m *Manager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// Colors returns the resolved colours of the active theme.
func (m *Manager) Colors() Colors {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.colors
}

// Resolve returns the palette colour at index (0-255).
func (m *Manager) Resolve(index int) (colour.Color, error) {
	if index < 0 || index >= PaletteSize {
		return colour.Color{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.colors.ANSI[index], nil
}

// ResolveName returns the theme colour for an ANSI colour name or alias.
func (m *Manager) ResolveName(name string) (colour.Color, error) {
	index, ok := ANSIIndex(name)
	if !ok {
		return colour.Color{}, fmt.Errorf("%w: %q", ErrUnknownColourName, name)
	}
	return m.Resolve(index)
}

// MinimumContrastRatio returns the active target ratio.
func (m *Manager) MinimumContrastRatio() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.minimumContrastRatio
}

// Enforcer returns the contrast enforcer used by AdjustForeground.
func (m *Manager) Enforcer() colour.Enforcer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enforcer
}

// SetMinimumContrastRatio changes the target ratio and clears the cache.
func (m *Manager) SetMinimumContrastRatio(ratio float64) error {
	if err := checkRatio(ratio); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ratio == m.minimumContrastRatio {
		return nil
	}
	m.minimumContrastRatio = ratio
	m.clearCacheLocked()
	m.logger.Debug("minimum contrast ratio changed", "ratio", ratio)
	return nil
}

// AdjustForeground returns fg, or fg adjusted to meet the minimum contrast
// ratio against bg. Results are cached per (bg, fg) pair until the theme or
// the ratio changes.
func (m *Manager) AdjustForeground(bg, fg colour.Color) colour.Color {
	key := contrastKey{bg: bg.RGBA, fg: fg.RGBA}

	m.mu.RLock()
	ratio := m.minimumContrastRatio
	entry, ok := m.cache[key]
	m.mu.RUnlock()

	if ratio <= MinContrastRatio {
		return fg
	}

	if !ok {
		adjusted, needed := m.enforcer.EnsureContrastRatio(bg, fg, ratio)
		entry = contrastEntry{colour: adjusted, adjusted: needed}

		m.mu.Lock()
		// The ratio may have changed while computing; only cache a result
		// that matches the current target.
		if m.minimumContrastRatio == ratio {
			m.cache[key] = entry
		}
		m.misses++
		m.mu.Unlock()

		if needed {
			m.logger.Trace("foreground adjusted", "bg", bg.CSS, "fg", fg.CSS, "result", adjusted.CSS, "ratio", ratio)
		}
	} else {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
	}

	if !entry.adjusted {
		return fg
	}
	return entry.colour
}

// ClearContrastCache drops every memoised adjustment.
func (m *Manager) ClearContrastCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCacheLocked()
}

// CacheStats returns the contrast cache counters.
func (m *Manager) CacheStats() CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return CacheStats{Hits: m.hits, Misses: m.misses, Size: len(m.cache)}
}

func (m *Manager) clearCacheLocked() {
	if len(m.cache) > 0 {
		m.logger.Debug("contrast cache cleared", "entries", len(m.cache))
	}
	m.cache = make(map[contrastKey]contrastEntry)
}

func checkRatio(ratio float64) error {
	if ratio < MinContrastRatio || ratio > MaxContrastRatio {
		return fmt.Errorf("%w: %v", ErrInvalidContrastRatio, ratio)
	}
	return nil
}
