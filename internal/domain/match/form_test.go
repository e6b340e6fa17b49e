package match

import (
	"testing"

	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/stretchr/testify/assert"
)

const team standing.TeamID = 57

func win(home bool) Result {
	if home {
		return Result{HomeTeamID: team, AwayTeamID: 1, HomeScore: 2, AwayScore: 0}
	}
	return Result{HomeTeamID: 1, AwayTeamID: team, HomeScore: 1, AwayScore: 3}
}

func loss(home bool) Result {
	if home {
		return Result{HomeTeamID: team, AwayTeamID: 2, HomeScore: 0, AwayScore: 1}
	}
	return Result{HomeTeamID: 2, AwayTeamID: team, HomeScore: 4, AwayScore: 2}
}

func draw() Result {
	return Result{HomeTeamID: 3, AwayTeamID: team, HomeScore: 1, AwayScore: 1}
}

func TestFormScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []Result
		want    float64
	}{
		{name: "no matches is neutral", results: nil, want: 0.5},
		{name: "five wins", results: []Result{win(true), win(false), win(true), win(false), win(true)}, want: 1.0},
		{name: "five losses", results: []Result{loss(true), loss(false), loss(true), loss(false), loss(true)}, want: 0.0},
		{name: "two wins one draw two losses", results: []Result{win(true), draw(), loss(false), win(false), loss(true)}, want: 7.0 / 15.0},
		{name: "single draw", results: []Result{draw()}, want: 1.0 / 3.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormScore(team, tt.results))
		})
	}
}

func TestFormScore_IsDeterministic(t *testing.T) {
	t.Parallel()

	results := []Result{win(true), draw(), loss(false)}
	assert.Equal(t, FormScore(team, results), FormScore(team, results))
}

func TestPointsFor_UsesTeamSide(t *testing.T) {
	t.Parallel()

	r := Result{HomeTeamID: 10, AwayTeamID: 20, HomeScore: 2, AwayScore: 1}
	assert.Equal(t, PointsWin, PointsFor(10, r))
	assert.Equal(t, PointsLoss, PointsFor(20, r))
}
