package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-forecast/internal/domain/feature"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
)

// MatchFeatures is the model input for one match plus the display names of
// both teams.
type MatchFeatures struct {
	HomeTeamID standing.TeamID
	AwayTeamID standing.TeamID
	HomeName   string
	AwayName   string
	Vector     feature.Vector
}

type FeatureService struct {
	standingRepo standing.Repository
	forms        *FormService
	logger       *logging.Logger
}

func NewFeatureService(standingRepo standing.Repository, forms *FormService, logger *logging.Logger) *FeatureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeatureService{
		standingRepo: standingRepo,
		forms:        forms,
		logger:       logger,
	}
}

// Features derives the feature vector of homeID vs awayID. A nil table is
// fetched from the provider; batch callers pass a table and a form cache
// shared by the whole session.
func (s *FeatureService) Features(
	ctx context.Context,
	homeID, awayID standing.TeamID,
	table *standing.Table,
	formCache *FormCache,
) (MatchFeatures, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.Features")
	defer span.End()

	if table == nil {
		s.logger.DebugContext(ctx, "no standings supplied, fetching")
		fetched, err := s.standingRepo.FetchStandings(ctx)
		if err != nil {
			return MatchFeatures{}, fmt.Errorf("fetch standings: %w", err)
		}
		table = fetched
	}

	home, ok := table.Lookup(homeID)
	if !ok {
		return MatchFeatures{}, teamNotFound(homeID)
	}
	away, ok := table.Lookup(awayID)
	if !ok {
		return MatchFeatures{}, teamNotFound(awayID)
	}
	if home.Played == 0 {
		return MatchFeatures{}, noMatchesPlayed(homeID)
	}
	if away.Played == 0 {
		return MatchFeatures{}, noMatchesPlayed(awayID)
	}

	var v feature.Vector
	v[feature.HomeGoalsPerGame] = perGame(home.GoalsFor, home.Played)
	v[feature.AwayGoalsPerGame] = perGame(away.GoalsFor, away.Played)
	v[feature.HomeConcededPerGame] = perGame(home.GoalsAgainst, home.Played)
	v[feature.AwayConcededPerGame] = perGame(away.GoalsAgainst, away.Played)
	v[feature.HomeWinRate] = perGame(home.Won, home.Played)
	v[feature.AwayWinRate] = perGame(away.Won, away.Played)

	homeForm, err := s.forms.RecentForm(ctx, homeID, formCache)
	if err != nil {
		return MatchFeatures{}, fmt.Errorf("recent form %s: %w", home.Name, err)
	}
	awayForm, err := s.forms.RecentForm(ctx, awayID, formCache)
	if err != nil {
		return MatchFeatures{}, fmt.Errorf("recent form %s: %w", away.Name, err)
	}
	v[feature.HomeForm] = homeForm
	v[feature.AwayForm] = awayForm

	return MatchFeatures{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeName:   home.Name,
		AwayName:   away.Name,
		Vector:     v,
	}, nil
}

func perGame(total, played int) float64 {
	return float64(total) / float64(played)
}
