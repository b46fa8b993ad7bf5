package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// Radar geometry. The scale is fixed at 0-100 because the values are
// percentiles, with grid rings every 20.
const (
	radarSize   = 440
	radarRadius = 150
	radarStep   = 20
)

// RadarChart is one rendered radar instance. A chart is immutable once
// built; any input change means discarding it and building a fresh one,
// which keeps stale geometry from ever surviving a data swap.
type RadarChart struct {
	Labels []string
	SVG    string
}

// NewRadarChart renders a two-series percentile radar. It returns nil when
// there are no axis labels, so callers holding a previous chart end up with
// nothing drawn. Each series is truncated or zero-padded to the label
// count before plotting.
func NewRadarChart(labels []string, seriesA, seriesB []float64, nameA, nameB string) *RadarChart {
	if len(labels) == 0 {
		return nil
	}

	a := fitSeries(seriesA, len(labels))
	b := fitSeries(seriesB, len(labels))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`,
		radarSize, radarSize, radarSize, radarSize))

	cx, cy := float64(radarSize)/2, float64(radarSize)/2

	// Grid rings at 20/40/60/80/100
	for v := radarStep; v <= 100; v += radarStep {
		sb.WriteString(ringPolygon(cx, cy, float64(v), len(labels)))
	}

	// Spokes and axis labels
	for i, label := range labels {
		x, y := radarPoint(cx, cy, 100, i, len(labels))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#3a3a4a" stroke-width="1" />`,
			cx, cy, x, y))

		lx, ly := radarPoint(cx, cy, 114, i, len(labels))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#c9c9d4" font-family="Arial" font-size="11" text-anchor="middle">%s</text>`,
			lx, ly, html.EscapeString(label)))
	}

	sb.WriteString(seriesPolygon(cx, cy, a, AccentBlue, nameA))
	sb.WriteString(seriesPolygon(cx, cy, b, AccentRed, nameB))

	sb.WriteString(`</svg>`)

	return &RadarChart{Labels: labels, SVG: sb.String()}
}

func fitSeries(s []float64, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n && i < len(s); i++ {
		v := s[i]
		if math.IsNaN(v) || v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		out[i] = v
	}
	return out
}

// radarPoint places a value on axis i of n, starting at twelve o'clock and
// going clockwise.
func radarPoint(cx, cy, value float64, i, n int) (float64, float64) {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	r := radarRadius * value / 100
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func ringPolygon(cx, cy, value float64, n int) string {
	var pts []string
	for i := 0; i < n; i++ {
		x, y := radarPoint(cx, cy, value, i, n)
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return fmt.Sprintf(`<polygon points="%s" fill="none" stroke="#2b2b38" stroke-width="1" />`,
		strings.Join(pts, " "))
}

func seriesPolygon(cx, cy float64, values []float64, accent Accent, name string) string {
	r, g, b := accent.RGB()

	var sb strings.Builder
	var pts []string
	for i := range values {
		x, y := radarPoint(cx, cy, values[i], i, len(values))
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="rgba(%d,%d,%d,0.2)" stroke="rgb(%d,%d,%d)" stroke-width="2" />`,
		strings.Join(pts, " "), r, g, b, r, g, b))

	// Data points with hover tooltips
	for i, v := range values {
		x, y := radarPoint(cx, cy, v, i, len(values))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="rgb(%d,%d,%d)"><title>%s: %s percentile</title></circle>`,
			x, y, r, g, b,
			html.EscapeString(name), strconv.FormatFloat(v, 'f', -1, 64)))
	}

	return sb.String()
}
