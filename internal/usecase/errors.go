package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
)

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")

	ErrTeamNotFound    = crerr.New("team not found in standings")
	ErrNoMatchesPlayed = crerr.New("team has not played any matches yet")
)

type DomainErrorKind string

const (
	DomainErrorTeamNotFound    DomainErrorKind = "team_not_found"
	DomainErrorNoMatchesPlayed DomainErrorKind = "no_matches_played"
)

// DomainError reports why features cannot be derived for a team.
type DomainError struct {
	Kind   DomainErrorKind
	TeamID standing.TeamID
}

func (e *DomainError) Error() string {
	switch e.Kind {
	case DomainErrorTeamNotFound:
		return fmt.Sprintf("%s: team_id=%d", ErrTeamNotFound, e.TeamID)
	case DomainErrorNoMatchesPlayed:
		return fmt.Sprintf("%s: team_id=%d", ErrNoMatchesPlayed, e.TeamID)
	default:
		return fmt.Sprintf("domain error %s: team_id=%d", e.Kind, e.TeamID)
	}
}

// Is matches the kind sentinel and the generic class used by the HTTP layer.
func (e *DomainError) Is(target error) bool {
	switch e.Kind {
	case DomainErrorTeamNotFound:
		return target == ErrTeamNotFound || target == ErrNotFound
	case DomainErrorNoMatchesPlayed:
		return target == ErrNoMatchesPlayed || target == ErrInvalidInput
	default:
		return false
	}
}

func teamNotFound(id standing.TeamID) error {
	return &DomainError{Kind: DomainErrorTeamNotFound, TeamID: id}
}

func noMatchesPlayed(id standing.TeamID) error {
	return &DomainError{Kind: DomainErrorNoMatchesPlayed, TeamID: id}
}
