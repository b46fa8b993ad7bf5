package models

// PlayerSummary is one row of the filtered player list. Age, minutes and
// nineties come from the season sheet and may be missing, so they stay
// nullable instead of defaulting to zero.
type PlayerSummary struct {
	Player   string   `json:"Player"`
	Squad    string   `json:"Squad"`
	Pos      string   `json:"Pos"`
	Age      *int     `json:"Age"`
	Min      *int     `json:"Min"`
	Nineties *float64 `json:"90s"`
}

type PlayersResponse struct {
	Players []PlayerSummary `json:"players"`
}

type LeaguesResponse struct {
	Leagues []string `json:"leagues"`
}

type PositionsResponse struct {
	Positions []string `json:"positions"`
}

type HealthResponse struct {
	OK   bool `json:"ok"`
	Rows int  `json:"rows"`
}
