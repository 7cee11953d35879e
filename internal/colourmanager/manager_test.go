package colourmanager

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/celltint/internal/colour"
)

func newTestManager(t *testing.T, config Config) *Manager {
	t.Helper()
	m, err := NewBuilder().WithConfig(config).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

func TestBuildDefaults(t *testing.T) {
	m, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := m.MinimumContrastRatio(); got != MinContrastRatio {
		t.Errorf("MinimumContrastRatio() = %v, want %v", got, MinContrastRatio)
	}
	if diff := cmp.Diff(DefaultTheme(), m.Theme()); diff != "" {
		t.Errorf("Theme() mismatch (-want +got):\n%s", diff)
	}

	colors := m.Colors()
	if colors.Background.CSS != "#000000" || colors.Foreground.CSS != "#ffffff" {
		t.Errorf("Colors() fg/bg = %s/%s", colors.Foreground.CSS, colors.Background.CSS)
	}
}

func TestBuildRejectsInvalidRatio(t *testing.T) {
	for _, ratio := range []float64{0, 0.5, 21.5} {
		_, err := NewBuilder().WithConfig(Config{MinimumContrastRatio: ratio}).Build()
		if !errors.Is(err, ErrInvalidContrastRatio) {
			t.Errorf("Build(ratio %v) error = %v, want ErrInvalidContrastRatio", ratio, err)
		}
	}
}

func TestBuildWithEnvConfig(t *testing.T) {
	t.Setenv("CELLTINT_MIN_CONTRAST", "4.5")
	t.Setenv("CELLTINT_LEGACY_CHANNEL_ORDER", "true")

	m, err := NewBuilder().WithEnvConfig().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := m.MinimumContrastRatio(); got != 4.5 {
		t.Errorf("MinimumContrastRatio() = %v, want 4.5", got)
	}
	if !m.Enforcer().LegacyChannelOrder {
		t.Error("LegacyChannelOrder not taken from environment")
	}
}

func TestEnforcerFollowsConfig(t *testing.T) {
	for _, legacy := range []bool{false, true} {
		m := newTestManager(t, Config{MinimumContrastRatio: 1, LegacyChannelOrder: legacy})
		if got := m.Enforcer().LegacyChannelOrder; got != legacy {
			t.Errorf("Enforcer().LegacyChannelOrder = %v, want %v", got, legacy)
		}
	}
}

func TestBuildWithBadEnvConfig(t *testing.T) {
	t.Setenv("CELLTINT_MIN_CONTRAST", "high")

	if _, err := NewBuilder().WithEnvConfig().Build(); err == nil {
		t.Fatal("Build() expected error for non-numeric CELLTINT_MIN_CONTRAST")
	}
}

func TestSetThemeRejectsInvalidColours(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 1})
	alpha := 300

	err := m.SetTheme(Theme{Background: "#fff", Red: "red", SelectionAlpha: &alpha})
	if err == nil {
		t.Fatal("SetTheme() expected error")
	}
	for _, field := range []string{"background", "red", "selection_alpha"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("SetTheme() error %q does not mention %s", err, field)
		}
	}

	// The previous theme stays active.
	if got := m.Colors().Background.CSS; got != "#000000" {
		t.Errorf("Background after failed SetTheme = %s, want #000000", got)
	}
}

func TestResolve(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 1})
	if err := m.SetTheme(Theme{Red: "#ff0000"}); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{name: "theme black", index: 0, want: "#000000"},
		{name: "theme red override", index: 1, want: "#ff0000"},
		{name: "theme bright white", index: 15, want: "#ffffff"},
		{name: "cube origin", index: 16, want: "#000000"},
		{name: "cube blue step", index: 17, want: "#00005f"},
		{name: "cube mixed", index: 16 + 36*1 + 6*2 + 3, want: "#5f87af"},
		{name: "cube white", index: 231, want: "#ffffff"},
		{name: "first grey", index: 232, want: "#080808"},
		{name: "last grey", index: 255, want: "#eeeeee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Resolve(tt.index)
			if err != nil {
				t.Fatalf("Resolve(%d) error = %v", tt.index, err)
			}
			if got.CSS != tt.want {
				t.Errorf("Resolve(%d) = %s, want %s", tt.index, got.CSS, tt.want)
			}
			if !colour.IsOpaque(got) {
				t.Errorf("Resolve(%d) alpha = %d, want 255", tt.index, got.A())
			}
		})
	}

	for _, index := range []int{-1, 256} {
		if _, err := m.Resolve(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Resolve(%d) error = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestResolveName(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 1})

	tests := []struct {
		name string
		want string
	}{
		{name: "red", want: "#cd3131"},
		{name: "Bright Red", want: "#f14c4c"},
		{name: "bright_blue", want: "#3b8eea"},
		{name: "grey", want: "#e5e5e5"},
		{name: "color8", want: "#666666"},
		{name: "purple", want: "#bc3fbc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ResolveName(tt.name)
			if err != nil {
				t.Fatalf("ResolveName(%q) error = %v", tt.name, err)
			}
			if got.CSS != tt.want {
				t.Errorf("ResolveName(%q) = %s, want %s", tt.name, got.CSS, tt.want)
			}
		})
	}

	if _, err := m.ResolveName("chartreuse"); !errors.Is(err, ErrUnknownColourName) {
		t.Errorf("ResolveName(chartreuse) error = %v, want ErrUnknownColourName", err)
	}
}

func TestSelectionColours(t *testing.T) {
	alpha := 128
	m := newTestManager(t, Config{MinimumContrastRatio: 1})
	if err := m.SetTheme(Theme{Background: "#000000", SelectionBackground: "#ffffff", SelectionAlpha: &alpha}); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}

	colors := m.Colors()
	if got := colors.SelectionTransparent.A(); got != 128 {
		t.Errorf("SelectionTransparent alpha = %d, want 128", got)
	}
	if got := colors.SelectionOpaque.CSS; got != "#808080" {
		t.Errorf("SelectionOpaque = %s, want #808080", got)
	}
	if !colour.IsOpaque(colors.SelectionOpaque) {
		t.Error("SelectionOpaque is not opaque")
	}
}

func TestAdjustForegroundDisabled(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 1})
	bg := colour.FromCSS("#000000")
	fg := colour.FromCSS("#010101")

	if got := m.AdjustForeground(bg, fg); got != fg {
		t.Errorf("AdjustForeground() = %s, want %s unchanged", got.CSS, fg.CSS)
	}
	if stats := m.CacheStats(); stats.Size != 0 {
		t.Errorf("CacheStats().Size = %d, want 0 when disabled", stats.Size)
	}
}

func TestAdjustForegroundCaches(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 4.5})
	bg := colour.FromCSS("#000000")
	dim := colour.FromCSS("#333333")
	bright := colour.FromCSS("#ffffff")

	first := m.AdjustForeground(bg, dim)
	if colour.Contrast(bg, first) < 4.5 {
		t.Errorf("AdjustForeground() = %s, contrast below 4.5", first.CSS)
	}
	want, _ := colour.EnsureContrastRatio(bg, dim, 4.5)
	if first != want {
		t.Errorf("AdjustForeground() = %s, want %s", first.CSS, want.CSS)
	}

	second := m.AdjustForeground(bg, dim)
	if second != first {
		t.Errorf("cached AdjustForeground() = %s, want %s", second.CSS, first.CSS)
	}

	// A pair that needs no adjustment returns fg and is cached too.
	if got := m.AdjustForeground(bg, bright); got != bright {
		t.Errorf("AdjustForeground(white) = %s, want unchanged", got.CSS)
	}

	if diff := cmp.Diff(CacheStats{Hits: 1, Misses: 2, Size: 2}, m.CacheStats()); diff != "" {
		t.Errorf("CacheStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheInvalidation(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 4.5})
	bg := colour.FromCSS("#000000")
	fg := colour.FromCSS("#333333")

	m.AdjustForeground(bg, fg)
	if m.CacheStats().Size != 1 {
		t.Fatalf("CacheStats().Size = %d, want 1", m.CacheStats().Size)
	}

	if err := m.SetTheme(Theme{Background: "#101010"}); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if got := m.CacheStats().Size; got != 0 {
		t.Errorf("CacheStats().Size after SetTheme = %d, want 0", got)
	}

	m.AdjustForeground(bg, fg)
	if err := m.SetMinimumContrastRatio(7); err != nil {
		t.Fatalf("SetMinimumContrastRatio() error = %v", err)
	}
	if got := m.CacheStats().Size; got != 0 {
		t.Errorf("CacheStats().Size after SetMinimumContrastRatio = %d, want 0", got)
	}
	if got := m.AdjustForeground(bg, fg); colour.Contrast(bg, got) < 7 {
		t.Errorf("AdjustForeground() after ratio change = %s, contrast below 7", got.CSS)
	}

	m.ClearContrastCache()
	if got := m.CacheStats().Size; got != 0 {
		t.Errorf("CacheStats().Size after ClearContrastCache = %d, want 0", got)
	}

	if err := m.SetMinimumContrastRatio(30); !errors.Is(err, ErrInvalidContrastRatio) {
		t.Errorf("SetMinimumContrastRatio(30) error = %v, want ErrInvalidContrastRatio", err)
	}
}

func TestAdjustForegroundConcurrent(t *testing.T) {
	m := newTestManager(t, Config{MinimumContrastRatio: 4.5})
	bg := colour.FromCSS("#1e1e1e")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 64; j++ {
				fg, _ := m.Resolve((i*64 + j) % PaletteSize)
				want, adjusted := colour.EnsureContrastRatio(bg, fg, 4.5)
				if !adjusted {
					want = fg
				}
				if got := m.AdjustForeground(bg, fg); got != want {
					t.Errorf("AdjustForeground(%s) = %s, want %s", fg.CSS, got.CSS, want.CSS)
				}
			}
		}(i)
	}
	wg.Wait()

	stats := m.CacheStats()
	if stats.Hits+stats.Misses != 16*64 {
		t.Errorf("hits+misses = %d, want %d", stats.Hits+stats.Misses, 16*64)
	}
}
