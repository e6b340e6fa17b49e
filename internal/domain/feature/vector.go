package feature

// Size is the number of features the prediction model consumes.
const Size = 8

// Positions inside Vector. The order is part of the model contract.
const (
	HomeGoalsPerGame = iota
	AwayGoalsPerGame
	HomeConcededPerGame
	AwayConcededPerGame
	HomeWinRate
	AwayWinRate
	HomeForm
	AwayForm
)

var names = [Size]string{
	HomeGoalsPerGame:    "home_goals_per_game",
	AwayGoalsPerGame:    "away_goals_per_game",
	HomeConcededPerGame: "home_conceded_per_game",
	AwayConcededPerGame: "away_conceded_per_game",
	HomeWinRate:         "home_win_rate",
	AwayWinRate:         "away_win_rate",
	HomeForm:            "home_form",
	AwayForm:            "away_form",
}

// Vector is the fixed-order input of the prediction model.
type Vector [Size]float64

// Names returns the feature names in vector order.
func Names() []string {
	out := make([]string, Size)
	copy(out, names[:])
	return out
}

func (v Vector) Slice() []float64 {
	out := make([]float64, Size)
	copy(out, v[:])
	return out
}

// Named pairs every value with its feature name.
func (v Vector) Named() map[string]float64 {
	out := make(map[string]float64, Size)
	for i, name := range names {
		out[name] = v[i]
	}
	return out
}
