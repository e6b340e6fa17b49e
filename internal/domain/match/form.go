package match

import "github.com/riskibarqy/match-forecast/internal/domain/standing"

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0

	// NeutralForm is used for a team without finished matches.
	NeutralForm = 0.5
)

// PointsFor scores a result from the team's side. A team that is not the home
// side is scored as the away side.
func PointsFor(teamID standing.TeamID, r Result) int {
	own, other := r.AwayScore, r.HomeScore
	if r.HomeTeamID == teamID {
		own, other = r.HomeScore, r.AwayScore
	}

	switch {
	case own > other:
		return PointsWin
	case own == other:
		return PointsDraw
	default:
		return PointsLoss
	}
}

// FormScore normalizes the points earned over results to [0,1], where 1 means
// every match was won. An empty slice yields NeutralForm.
func FormScore(teamID standing.TeamID, results []Result) float64 {
	if len(results) == 0 {
		return NeutralForm
	}

	points := 0
	for _, r := range results {
		points += PointsFor(teamID, r)
	}
	return float64(points) / float64(len(results)*PointsWin)
}
