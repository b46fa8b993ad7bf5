// Package logic computes the comparison payloads: cohort percentiles, the
// per-90 radar profile and the pitch-thirds heatmap.
package logic

import (
	"math"

	"github.com/futscout/futscout/internal/dataset"
	"github.com/futscout/futscout/internal/models"
)

type metricMode int

const (
	// per90: divide by nineties played before ranking
	modePer90 metricMode = iota
	// raw: rank the value as stored
	modeRaw
	// pct: already a percentage, rank as stored
	modePct
)

type radarMetric struct {
	col   string
	label string
	mode  metricMode
}

// radarSpec fixes the radar axes and their order.
var radarSpec = []radarMetric{
	{"Gls", "Goals/90", modePer90},
	{"Ast", "Assists/90", modePer90},
	{"xG", "xG/90", modePer90},
	{"xAG", "xAG/90", modePer90},
	{"PrgP", "Prog Passes/90", modePer90},
	{"PrgC", "Prog Carries/90", modePer90},
	{"KP", "Key Passes/90", modePer90},
	{"SCA90", "SCA/90", modeRaw},
	{"Tkl+Int", "Tkl+Int/90", modePer90},
	{"Touches", "Touches/90", modePer90},
	{"Cmp%", "Pass %", modePct},
}

// Heatmap axes: thirds of the pitch against the two share metrics.
var (
	heatmapXLabels = []string{"Touches share", "Tackles share"}
	heatmapYLabels = []string{"Def 3rd", "Mid 3rd", "Att 3rd"}
)

// safePer90 converts a season total to a per-90 rate. Undefined when the
// inputs are missing or the player has no recorded nineties.
func safePer90(value, nineties float64) float64 {
	if math.IsNaN(value) || math.IsNaN(nineties) || nineties <= 0 {
		return math.NaN()
	}
	return value / nineties
}

// percentileOfValue ranks value within the cohort series, 0-100. Missing
// cohort entries are dropped; ties get their average rank, so two identical
// values land on the same percentile. A missing value ranks at 0.
func percentileOfValue(pool []float64, value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}

	less, equal, n := 0, 1, 1 // the value itself is part of the ranked set
	for _, p := range pool {
		if math.IsNaN(p) {
			continue
		}
		n++
		if p < value {
			less++
		} else if p == value {
			equal++
		}
	}
	if n == 1 {
		return 0
	}

	rank := float64(less) + float64(equal+1)/2
	return rank / float64(n) * 100
}

// buildRadar computes one player's radar against the cohort pool.
func buildRadar(pool []dataset.Row, row *dataset.Row) models.Radar {
	radar := models.Radar{
		Labels:      make([]string, 0, len(radarSpec)),
		Percentiles: make([]float64, 0, len(radarSpec)),
		Values:      make([]float64, 0, len(radarSpec)),
	}

	for _, m := range radarSpec {
		radar.Labels = append(radar.Labels, m.label)

		v := row.Metric(m.col)
		series := make([]float64, len(pool))
		for i := range pool {
			series[i] = pool[i].Metric(m.col)
		}

		if m.mode == modePer90 {
			v = safePer90(v, row.Nineties)
			for i := range series {
				series[i] = series[i] / pool[i].Nineties
			}
		}

		disp := v
		if math.IsNaN(disp) {
			disp = 0
		}
		radar.Values = append(radar.Values, disp)
		radar.Percentiles = append(radar.Percentiles, percentileOfValue(series, v))
	}

	var sum float64
	for _, p := range radar.Percentiles {
		sum += p
	}
	if len(radar.Percentiles) > 0 {
		radar.Overall = int(math.Round(sum / float64(len(radar.Percentiles))))
	}

	return radar
}

// buildHeatmap derives the activity grid for one player: touch and tackle
// counts per pitch third, each column normalized to its own total so the
// cells are shares. Missing cells come out as 0.
func buildHeatmap(row *dataset.Row) models.Heatmap {
	touch := []float64{row.TouchDef, row.TouchMid, row.TouchAtt}
	tkl := []float64{row.TklDef, row.TklMid, row.TklAtt}

	normalizeShares(touch)
	normalizeShares(tkl)

	matrix := make([][]float64, len(heatmapYLabels))
	for i := range matrix {
		matrix[i] = []float64{zeroNaN(touch[i]), zeroNaN(tkl[i])}
	}

	return models.Heatmap{
		Matrix:  matrix,
		XLabels: heatmapXLabels,
		YLabels: heatmapYLabels,
	}
}

func normalizeShares(v []float64) {
	var sum float64
	for _, x := range v {
		if !math.IsNaN(x) {
			sum += x
		}
	}
	if sum <= 0 {
		return
	}
	for i := range v {
		v[i] = v[i] / sum
	}
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// maybeInt and maybeFloat turn a possibly-missing stat into a nullable
// JSON field.
func maybeInt(v float64) *int {
	if math.IsNaN(v) {
		return nil
	}
	i := int(v)
	return &i
}

func maybeFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Summaries converts pool rows to the player-list payload, optionally
// narrowed to one squad.
func Summaries(rows []dataset.Row, squad string) []models.PlayerSummary {
	out := []models.PlayerSummary{}
	for i := range rows {
		r := &rows[i]
		if squad != "" && r.Squad != squad {
			continue
		}
		out = append(out, models.PlayerSummary{
			Player:   r.Player,
			Squad:    r.Squad,
			Pos:      r.Pos,
			Age:      maybeInt(r.Age),
			Min:      maybeInt(r.Min),
			Nineties: maybeFloat(r.Nineties),
		})
	}
	return out
}
