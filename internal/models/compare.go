package models

// Radar holds the percentile profile for one player. The three slices are
// always the same length as the metric table that produced them.
type Radar struct {
	Labels      []string  `json:"labels"`
	Percentiles []float64 `json:"percentiles"`
	Values      []float64 `json:"values"`
	Overall     int       `json:"overall"`
}

// Heatmap is a thirds-of-the-pitch activity grid: one row per third,
// one column per share metric. Every row has len(XLabels) cells.
type Heatmap struct {
	Matrix  [][]float64 `json:"matrix"`
	XLabels []string    `json:"xLabels"`
	YLabels []string    `json:"yLabels"`
}

// ComparePlayer is one side of a comparison.
type ComparePlayer struct {
	Name     string   `json:"name"`
	Squad    string   `json:"squad"`
	Pos      string   `json:"pos"`
	Age      *int     `json:"age"`
	Minutes  *int     `json:"minutes"`
	Nineties *float64 `json:"nineties"`
	Radar    Radar    `json:"radar"`
	Heatmap  Heatmap  `json:"heatmap"`
}

type CompareFilters struct {
	Pos    string  `json:"pos"`
	Min90s float64 `json:"min90s"`
}

// CompareResult is the /compare response. A domain failure is reported
// in-band through Error with the rest of the fields left empty.
type CompareResult struct {
	League  string         `json:"league,omitempty"`
	Filters CompareFilters `json:"filters,omitempty"`
	PlayerA *ComparePlayer `json:"playerA,omitempty"`
	PlayerB *ComparePlayer `json:"playerB,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Request structs validated at the handler boundary.

type PlayersRequest struct {
	League string  `validate:"required"`
	Pos    string  `validate:"required"`
	Min90s float64 `validate:"gte=0"`
	Squad  string
}

type CompareRequest struct {
	League  string  `validate:"required"`
	PlayerA string  `validate:"required"`
	PlayerB string  `validate:"required"`
	Pos     string  `validate:"required"`
	Min90s  float64 `validate:"gte=0"`
}
