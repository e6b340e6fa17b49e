package match

import (
	"context"

	"github.com/riskibarqy/match-forecast/internal/domain/standing"
)

// Repository reads match history and the upcoming schedule from the provider.
type Repository interface {
	// FetchRecentMatches returns at most limit finished matches of the team,
	// most recent first.
	FetchRecentMatches(ctx context.Context, teamID standing.TeamID, limit int) ([]Result, error)
	FetchScheduledMatches(ctx context.Context) ([]Fixture, error)
}
