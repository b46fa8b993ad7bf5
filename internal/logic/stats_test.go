package logic

import (
	"math"
	"testing"

	"github.com/futscout/futscout/internal/dataset"
)

func TestPercentileOfValue_TableDriven(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name  string
		pool  []float64
		value float64
		want  float64
	}{
		{"Empty Pool", nil, 5, 0},
		{"All NaN Pool", []float64{nan, nan}, 5, 0},
		{"Missing Value", []float64{1, 2, 3}, nan, 0},
		{"Top Of Pool", []float64{1, 2, 3}, 10, 100},
		{"Bottom Of Pool", []float64{1, 2, 3}, 0, 25},
		// Combined series [1,2,3,2]: the tied 2s take the average of
		// ranks 2 and 3, so 2.5/4
		{"Tie Takes Average Rank", []float64{1, 2, 3}, 2, 62.5},
		{"NaN Entries Dropped", []float64{1, nan, 3}, 2, 2.0 / 3.0 * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentileOfValue(tt.pool, tt.value)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("percentileOfValue(%v, %v) = %v, want %v", tt.pool, tt.value, got, tt.want)
			}
		})
	}
}

func TestSafePer90(t *testing.T) {
	if got := safePer90(30, 30); got != 1 {
		t.Errorf("safePer90(30, 30) = %v, want 1", got)
	}
	if !math.IsNaN(safePer90(10, 0)) {
		t.Errorf("zero nineties should be undefined")
	}
	if !math.IsNaN(safePer90(math.NaN(), 10)) || !math.IsNaN(safePer90(10, math.NaN())) {
		t.Errorf("missing inputs should be undefined")
	}
}

func testRow(player string, nineties, gls float64) dataset.Row {
	nan := math.NaN()
	return dataset.Row{
		Player: player, Squad: "Squad", Pos: "FW", Comp: "League",
		Nineties: nineties,
		Gls:      gls,
		Ast:      nan, XG: nan, XAG: nan, PrgP: nan, PrgC: nan, KP: nan,
		SCA90: nan, TklInt: nan, Touches: nan, CmpPct: nan,
		Age: nan, Min: nan,
		TouchDef: nan, TouchMid: nan, TouchAtt: nan,
		TklDef: nan, TklMid: nan, TklAtt: nan,
	}
}

func TestBuildRadar_Shape(t *testing.T) {
	pool := []dataset.Row{
		testRow("Low", 10, 2),
		testRow("Mid", 10, 5),
		testRow("High", 10, 10),
	}

	radar := buildRadar(pool, &pool[2])

	if len(radar.Labels) != 11 ||
		len(radar.Percentiles) != len(radar.Labels) ||
		len(radar.Values) != len(radar.Labels) {
		t.Fatalf("radar slices out of step: %d labels, %d percentiles, %d values",
			len(radar.Labels), len(radar.Percentiles), len(radar.Values))
	}

	if radar.Labels[0] != "Goals/90" || radar.Labels[10] != "Pass %" {
		t.Errorf("axis order changed: %v", radar.Labels)
	}

	// Goals/90 for High = 10/10 = 1.0, top of a 3-player cohort. The
	// player's own row stays in the cohort, so the combined series
	// [0.2, 0.5, 1.0, 1.0] puts the tied top at rank 3.5 of 4.
	if math.Abs(radar.Values[0]-1.0) > 1e-9 {
		t.Errorf("Goals/90 display value = %v, want 1.0", radar.Values[0])
	}
	if math.Abs(radar.Percentiles[0]-87.5) > 1e-9 {
		t.Errorf("Goals/90 percentile = %v, want 87.5", radar.Percentiles[0])
	}

	// All-missing metrics display 0, never NaN
	for i, v := range radar.Values {
		if math.IsNaN(v) {
			t.Errorf("value %d (%s) is NaN", i, radar.Labels[i])
		}
	}
}

func TestBuildRadar_Overall(t *testing.T) {
	pool := []dataset.Row{
		testRow("Only", 10, 3),
	}
	radar := buildRadar(pool, &pool[0])

	// A single-player pool ranks at 50 on present metrics, 0 on missing
	// ones; overall is the rounded mean
	var sum float64
	for _, p := range radar.Percentiles {
		sum += p
	}
	want := int(math.Round(sum / float64(len(radar.Percentiles))))
	if radar.Overall != want {
		t.Errorf("overall = %d, want %d", radar.Overall, want)
	}
}

func TestBuildHeatmap(t *testing.T) {
	row := testRow("P", 10, 1)
	row.TouchDef, row.TouchMid, row.TouchAtt = 100, 300, 100
	row.TklDef, row.TklMid, row.TklAtt = 8, math.NaN(), 2

	hm := buildHeatmap(&row)

	if len(hm.Matrix) != len(hm.YLabels) {
		t.Fatalf("matrix rows %d != yLabels %d", len(hm.Matrix), len(hm.YLabels))
	}
	for i, r := range hm.Matrix {
		if len(r) != len(hm.XLabels) {
			t.Fatalf("row %d has %d cells, want %d", i, len(r), len(hm.XLabels))
		}
	}

	// Touch shares: 100/500, 300/500, 100/500
	if math.Abs(hm.Matrix[0][0]-0.2) > 1e-9 || math.Abs(hm.Matrix[1][0]-0.6) > 1e-9 {
		t.Errorf("touch shares wrong: %v", hm.Matrix)
	}
	// Tackle shares normalize over the non-missing sum (10), missing cell
	// comes out as 0
	if math.Abs(hm.Matrix[0][1]-0.8) > 1e-9 || hm.Matrix[1][1] != 0 || math.Abs(hm.Matrix[2][1]-0.2) > 1e-9 {
		t.Errorf("tackle shares wrong: %v", hm.Matrix)
	}
}

func TestBuildHeatmap_AllMissing(t *testing.T) {
	row := testRow("P", 10, 1)
	hm := buildHeatmap(&row)

	for _, r := range hm.Matrix {
		for _, c := range r {
			if c != 0 {
				t.Fatalf("all-missing heatmap should be zeros: %v", hm.Matrix)
			}
		}
	}
}

func TestSummaries(t *testing.T) {
	withAge := testRow("Named", 12.3, 1)
	withAge.Age, withAge.Min = 27, 2400

	rows := []dataset.Row{withAge, testRow("Blank", math.NaN(), 1)}
	rows[1].Squad = "Other"

	out := Summaries(rows, "")
	if len(out) != 2 {
		t.Fatalf("got %d summaries, want 2", len(out))
	}

	if out[0].Age == nil || *out[0].Age != 27 || out[0].Min == nil || *out[0].Min != 2400 {
		t.Errorf("present numerics should be set: %+v", out[0])
	}
	if out[0].Nineties == nil || *out[0].Nineties != 12.3 {
		t.Errorf("nineties should be set: %+v", out[0])
	}
	if out[1].Age != nil || out[1].Nineties != nil {
		t.Errorf("missing numerics should be null: %+v", out[1])
	}

	// Squad filter
	if got := Summaries(rows, "Other"); len(got) != 1 || got[0].Player != "Blank" {
		t.Errorf("squad filter failed: %+v", got)
	}
}
