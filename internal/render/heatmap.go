// Package render contains the presentation math for the comparison page:
// heat zone styling, per-cell opacity mapping and the two-series radar SVG.
// Everything here is a pure function of its inputs.
package render

import (
	"fmt"
	"math"
)

// HeatEpsilon floors the shared heat max so cell normalization never
// divides by zero.
const HeatEpsilon = 1e-9

// Accent identifies one of the two fixed player colors used across every
// visualization: blue for player A, red for player B.
type Accent string

const (
	AccentBlue Accent = "blue"
	AccentRed  Accent = "red"
)

// RGB returns the accent base color.
func (a Accent) RGB() (r, g, b int) {
	if a == AccentRed {
		return 239, 68, 68
	}
	return 59, 130, 246
}

// Clamp01 coerces v into [0,1]. NaN is treated as missing input and maps
// to 0, so malformed data never reaches the styling math.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ZoneStyle describes the radial-gradient blob for one pitch heat zone.
type ZoneStyle struct {
	WidthPct    float64
	CoreOpacity float64
	FadeOpacity float64
	BlurPx      float64
	GlowRadius  float64
	GlowOpacity float64
	Accent      Accent
}

// HeatZone maps a normalized intensity to its zone style. Every output
// grows linearly with the clamped input.
func HeatZone(v float64, accent Accent) ZoneStyle {
	n := Clamp01(v)
	return ZoneStyle{
		WidthPct:    40 + n*40,
		CoreOpacity: 0.15 + n*0.55,
		FadeOpacity: 0.04 + n*0.16,
		BlurPx:      12 + n*18,
		GlowRadius:  22 + n*36,
		GlowOpacity: 0.12 + n*0.25,
		Accent:      accent,
	}
}

// CSS renders the zone style as inline declarations.
func (s ZoneStyle) CSS() string {
	r, g, b := s.Accent.RGB()
	return fmt.Sprintf(
		"width: %.1f%%; background: radial-gradient(circle, rgba(%d,%d,%d,%.2f) 0%%, rgba(%d,%d,%d,%.2f) 60%%, transparent 100%%); filter: blur(%.1fpx); box-shadow: 0 0 %.1fpx rgba(%d,%d,%d,%.2f);",
		s.WidthPct,
		r, g, b, s.CoreOpacity,
		r, g, b, s.FadeOpacity,
		s.BlurPx,
		s.GlowRadius, r, g, b, s.GlowOpacity,
	)
}

// FormatPercent renders a clamped intensity as a whole percentage string.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(Clamp01(v)*100)))
}

// CellStyle is the background/border pair for one heatmap grid cell.
type CellStyle struct {
	Opacity float64
	Accent  Accent
}

// Cell normalizes a raw cell value against the shared heat max and maps it
// linearly onto the 0.15-0.90 opacity band.
func Cell(value, maxHeat float64, accent Accent) CellStyle {
	if maxHeat < HeatEpsilon {
		maxHeat = HeatEpsilon
	}
	n := Clamp01(value / maxHeat)
	return CellStyle{
		Opacity: 0.15 + n*0.75,
		Accent:  accent,
	}
}

// CSS renders the cell style as inline declarations.
func (s CellStyle) CSS() string {
	r, g, b := s.Accent.RGB()
	return fmt.Sprintf("background: rgba(%d,%d,%d,%.3f); border: 1px solid rgba(%d,%d,%d,0.4);",
		r, g, b, s.Opacity, r, g, b)
}

// MaxHeat returns the largest cell value across both intensity matrices,
// floored at HeatEpsilon. Both players share this range so their grids are
// directly comparable.
func MaxHeat(a, b [][]float64) float64 {
	max := HeatEpsilon
	for _, m := range [][][]float64{a, b} {
		for _, row := range m {
			for _, cell := range row {
				if !math.IsNaN(cell) && cell > max {
					max = cell
				}
			}
		}
	}
	return max
}
