package match

import (
	"time"

	"github.com/riskibarqy/match-forecast/internal/domain/standing"
)

// Result is a finished match as reported by the provider.
type Result struct {
	HomeTeamID standing.TeamID
	AwayTeamID standing.TeamID
	HomeScore  int
	AwayScore  int
}

// Side is one participant of a scheduled match.
type Side struct {
	ID   standing.TeamID
	Name string
}

// Fixture is a scheduled, not yet played, match.
type Fixture struct {
	ID       int64
	UTCDate  time.Time
	HomeTeam Side
	AwayTeam Side
}
