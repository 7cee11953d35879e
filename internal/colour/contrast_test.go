package colour

import "testing"

func TestEnsureContrastRatioNoAdjustmentNeeded(t *testing.T) {
	tests := []struct {
		name  string
		bg    Color
		fg    Color
		ratio float64
	}{
		{name: "white on black", bg: FromCSS("#000000"), fg: FromCSS("#ffffff"), ratio: 4.5},
		{name: "black on white", bg: FromCSS("#ffffff"), fg: FromCSS("#000000"), ratio: 21},
		{name: "ratio of one always met", bg: FromCSS("#808080"), fg: FromCSS("#808080"), ratio: 1},
		{name: "exactly at target", bg: FromCSS("#1e1e1e"), fg: FromCSS("#d4d4d4"), ratio: Contrast(FromCSS("#1e1e1e"), FromCSS("#d4d4d4"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, adjusted := EnsureContrastRatio(tt.bg, tt.fg, tt.ratio); adjusted {
				t.Errorf("EnsureContrastRatio() adjusted to %s, want no adjustment", got.CSS)
			}
		})
	}
}

func TestEnsureContrastRatioMeetsTarget(t *testing.T) {
	tests := []struct {
		name    string
		bg      Color
		fg      Color
		ratio   float64
		lighter bool
	}{
		{name: "dark grey on black brightens", bg: FromCSS("#000000"), fg: FromCSS("#333333"), ratio: 4.5, lighter: true},
		{name: "light grey on white darkens", bg: FromCSS("#ffffff"), fg: FromCSS("#aaaaaa"), ratio: 4.5, lighter: false},
		{name: "blue on navy brightens", bg: FromCSS("#000040"), fg: FromCSS("#2040a0"), ratio: 7, lighter: true},
		{name: "yellow on cream darkens", bg: FromCSS("#fffde0"), fg: FromCSS("#e5e510"), ratio: 4.5, lighter: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, adjusted := EnsureContrastRatio(tt.bg, tt.fg, tt.ratio)
			if !adjusted {
				t.Fatal("EnsureContrastRatio() reported no adjustment")
			}
			if cr := Contrast(tt.bg, got); cr < tt.ratio {
				t.Errorf("contrast of %s on %s = %.3f, want >= %.1f", got.CSS, tt.bg.CSS, cr, tt.ratio)
			}
			if tt.lighter && Luminance(got) <= Luminance(tt.fg) {
				t.Errorf("%s is not lighter than %s", got.CSS, tt.fg.CSS)
			}
			if !tt.lighter && Luminance(got) >= Luminance(tt.fg) {
				t.Errorf("%s is not darker than %s", got.CSS, tt.fg.CSS)
			}
			if !IsOpaque(got) {
				t.Errorf("adjusted colour alpha = %d, want 255", got.A())
			}
			if FromCSS(got.CSS).RGBA != got.RGBA {
				t.Errorf("CSS %q out of sync with RGBA %#08x", got.CSS, got.RGBA)
			}
		})
	}
}

func TestEnsureContrastRatioUnreachableTarget(t *testing.T) {
	tests := []struct {
		name string
		bg   Color
		fg   Color
		want string
	}{
		{name: "lighter saturates at white", bg: FromCSS("#000000"), fg: FromCSS("#808080"), want: "#ffffff"},
		{name: "near white saturates with small steps", bg: FromCSS("#f0f0f0"), fg: FromCSS("#fafafa"), want: "#ffffff"},
		{name: "darker bottoms out at black", bg: FromCSS("#ffffff"), fg: FromCSS("#808080"), want: "#000000"},
		{name: "equal luminance brightens", bg: FromCSS("#404040"), fg: FromCSS("#404040"), want: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, adjusted := EnsureContrastRatio(tt.bg, tt.fg, 25)
			if !adjusted {
				t.Fatal("EnsureContrastRatio() reported no adjustment")
			}
			if got.CSS != tt.want {
				t.Errorf("EnsureContrastRatio() = %s, want %s", got.CSS, tt.want)
			}
		})
	}
}

func TestLuminanceLoopsAreMonotonic(t *testing.T) {
	tests := []struct {
		name   string
		bg     Color
		fg     Color
		adjust func(bg, fg Color, ratio float64) Color
		away   func(prev, next float64) bool
	}{
		{
			name:   "increase",
			bg:     FromCSS("#101010"),
			fg:     FromCSS("#203040"),
			adjust: IncreaseLuminance,
			away:   func(prev, next float64) bool { return next > prev },
		},
		{
			name:   "reduce",
			bg:     FromCSS("#f8f8f8"),
			fg:     FromCSS("#c0b0a0"),
			adjust: ReduceLuminance,
			away:   func(prev, next float64) bool { return next < prev },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Each ratio stops the loop at a later iteration of the same
			// sequence, so distinct results must move strictly away from bg.
			prev := tt.fg
			for ratio := 1.0; ratio <= 21; ratio += 0.25 {
				next := tt.adjust(tt.bg, tt.fg, ratio)
				if next == prev {
					continue
				}
				if !tt.away(Luminance(prev), Luminance(next)) {
					t.Fatalf("ratio %.2f: %s -> %s does not move away from %s", ratio, prev.CSS, next.CSS, tt.bg.CSS)
				}
				prev = next
			}
		})
	}
}

func TestLoopIterationBound(t *testing.T) {
	e := Enforcer{}

	steps := 0
	e.adjust(FromCSS("#000000"), FromCSS("#010101"), 100, func(c int) int {
		steps++
		return increaseStep(c)
	}, 255)
	if iterations := steps / 3; iterations > 255 {
		t.Errorf("increase loop ran %d iterations, want at most 255", iterations)
	}

	steps = 0
	e.adjust(FromCSS("#ffffff"), FromCSS("#ffffff"), 100, func(c int) int {
		steps++
		return reduceStep(c)
	}, 0)
	if iterations := steps / 3; iterations > 255 {
		t.Errorf("reduce loop ran %d iterations, want at most 255", iterations)
	}
}

func TestEnforcerLegacyChannelOrder(t *testing.T) {
	bg := FromCSS("#000000")
	fg := FromCSS("#0010f0")

	canonical, adjusted := Enforcer{}.EnsureContrastRatio(bg, fg, 4.5)
	if !adjusted {
		t.Fatal("canonical enforcer reported no adjustment")
	}
	if cr := Contrast(bg, canonical); cr < 4.5 {
		t.Errorf("canonical contrast = %.3f, want >= 4.5", cr)
	}

	// With green and blue swapped the loop sees #0010f0 as bright enough
	// and returns it untouched.
	legacy, adjusted := Enforcer{LegacyChannelOrder: true}.EnsureContrastRatio(bg, fg, 4.5)
	if !adjusted {
		t.Fatal("legacy enforcer reported no adjustment")
	}
	if legacy.CSS != "#0010f0" {
		t.Errorf("legacy result = %s, want #0010f0", legacy.CSS)
	}
	if legacy == canonical {
		t.Error("legacy and canonical orders converged to the same colour")
	}
}

func TestEnsureContrastRatioIgnoresForegroundAlpha(t *testing.T) {
	bg := FromCSS("#000000")
	fg := ToColor(0x33, 0x33, 0x33, 0x40)

	got, adjusted := EnsureContrastRatio(bg, fg, 4.5)
	if !adjusted {
		t.Fatal("EnsureContrastRatio() reported no adjustment")
	}
	want, _ := EnsureContrastRatio(bg, Opaque(fg), 4.5)
	if got != want {
		t.Errorf("EnsureContrastRatio() = %s, want %s", got.CSS, want.CSS)
	}
}
