package httpapi

import (
	"time"

	"github.com/riskibarqy/match-forecast/internal/usecase"
)

type customPredictionRequest struct {
	HomeTeam string `json:"homeTeam" validate:"required,max=100"`
	AwayTeam string `json:"awayTeam" validate:"required,max=100,nefield=HomeTeam"`
}

type teamsDTO struct {
	Teams []string `json:"teams"`
}

type featuresDTO struct {
	HomeTeamID int64              `json:"homeTeamId"`
	AwayTeamID int64              `json:"awayTeamId"`
	HomeTeam   string             `json:"homeTeam"`
	AwayTeam   string             `json:"awayTeam"`
	Vector     []float64          `json:"vector"`
	Named      map[string]float64 `json:"named"`
}

type probabilitiesDTO struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

type predictionDTO struct {
	Outcome       string           `json:"outcome"`
	Probabilities probabilitiesDTO `json:"probabilities"`
}

type fixtureDTO struct {
	ID      int64  `json:"id"`
	UTCDate string `json:"utcDate,omitempty"`
}

type matchPredictionDTO struct {
	Fixture    *fixtureDTO    `json:"fixture,omitempty"`
	Features   featuresDTO    `json:"features"`
	Prediction *predictionDTO `json:"prediction,omitempty"`
}

type matchdayDTO struct {
	SessionID   string               `json:"sessionId"`
	Considered  int                  `json:"considered"`
	Failed      int                  `json:"failed"`
	Predictions []matchPredictionDTO `json:"predictions"`
}

func featuresToDTO(v usecase.MatchFeatures) featuresDTO {
	return featuresDTO{
		HomeTeamID: int64(v.HomeTeamID),
		AwayTeamID: int64(v.AwayTeamID),
		HomeTeam:   v.HomeName,
		AwayTeam:   v.AwayName,
		Vector:     v.Vector.Slice(),
		Named:      v.Vector.Named(),
	}
}

func matchPredictionToDTO(v usecase.MatchPrediction) matchPredictionDTO {
	out := matchPredictionDTO{Features: featuresToDTO(v.Features)}
	if v.Fixture != nil {
		out.Fixture = &fixtureDTO{ID: v.Fixture.ID}
		if !v.Fixture.UTCDate.IsZero() {
			out.Fixture.UTCDate = v.Fixture.UTCDate.UTC().Format(time.RFC3339)
		}
	}
	if v.Prediction != nil {
		out.Prediction = &predictionDTO{
			Outcome: string(v.Prediction.Outcome),
			Probabilities: probabilitiesDTO{
				Home: v.Prediction.Probabilities.Home,
				Draw: v.Prediction.Probabilities.Draw,
				Away: v.Prediction.Probabilities.Away,
			},
		}
	}
	return out
}

func matchdayToDTO(v usecase.MatchdayResult) matchdayDTO {
	out := matchdayDTO{
		SessionID:   v.SessionID,
		Considered:  v.Considered,
		Failed:      v.Failed,
		Predictions: make([]matchPredictionDTO, 0, len(v.Predictions)),
	}
	for _, item := range v.Predictions {
		out.Predictions = append(out.Predictions, matchPredictionToDTO(item))
	}
	return out
}
