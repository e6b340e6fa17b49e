package footballdata

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type standingsEnvelope struct {
	Standings []standingGroup `json:"standings"`
}

type standingGroup struct {
	Stage string        `json:"stage"`
	Type  string        `json:"type"`
	Table []standingRow `json:"table"`
}

type standingRow struct {
	Position     int     `json:"position"`
	Team         teamRef `json:"team"`
	PlayedGames  int     `json:"playedGames"`
	Won          int     `json:"won"`
	Draw         int     `json:"draw"`
	Lost         int     `json:"lost"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
}

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64      `json:"id"`
	UTCDate  string     `json:"utcDate"`
	Status   string     `json:"status"`
	Matchday *int       `json:"matchday"`
	HomeTeam teamRef    `json:"homeTeam"`
	AwayTeam teamRef    `json:"awayTeam"`
	Score    matchScore `json:"score"`
}

type matchScore struct {
	Winner   *string   `json:"winner"`
	FullTime scorePair `json:"fullTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
