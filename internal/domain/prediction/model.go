package prediction

import (
	"context"

	"github.com/riskibarqy/match-forecast/internal/domain/feature"
)

type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeDraw Outcome = "DRAW"
	OutcomeAway Outcome = "AWAY"
)

type Probabilities struct {
	Home float64
	Draw float64
	Away float64
}

type Prediction struct {
	Outcome       Outcome
	Probabilities Probabilities
}

// Model is the trained classifier. It is opaque to this service: it receives
// a feature vector and returns a label with class probabilities.
type Model interface {
	Predict(ctx context.Context, features feature.Vector) (Prediction, error)
}
