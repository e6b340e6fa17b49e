package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-forecast/internal/domain/match"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/cache"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
)

const DefaultFormMatchLimit = 5

// FormCache holds form scores for one batch session. Entries never expire;
// the cache is dropped together with the session.
type FormCache = cache.Store[standing.TeamID, float64]

func NewFormCache() *FormCache {
	return cache.NewStore[standing.TeamID, float64](0)
}

type FormService struct {
	matchRepo  match.Repository
	matchLimit int
	logger     *logging.Logger
}

func NewFormService(matchRepo match.Repository, matchLimit int, logger *logging.Logger) *FormService {
	if matchLimit <= 0 {
		matchLimit = DefaultFormMatchLimit
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FormService{
		matchRepo:  matchRepo,
		matchLimit: matchLimit,
		logger:     logger,
	}
}

// RecentForm returns the team's form over its latest finished matches. With a
// non-nil formCache the value is computed at most once per team.
func (s *FormService) RecentForm(ctx context.Context, teamID standing.TeamID, formCache *FormCache) (float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormService.RecentForm")
	defer span.End()

	if formCache == nil {
		return s.compute(ctx, teamID)
	}

	value, hit, err := formCache.GetOrLoad(ctx, teamID, func(ctx context.Context) (float64, error) {
		return s.compute(ctx, teamID)
	})
	if err != nil {
		return 0, err
	}
	if hit {
		s.logger.DebugContext(ctx, "recent form served from cache", "team_id", teamID, "form", value)
	}
	return value, nil
}

func (s *FormService) compute(ctx context.Context, teamID standing.TeamID) (float64, error) {
	s.logger.DebugContext(ctx, "fetching recent matches", "team_id", teamID, "limit", s.matchLimit)

	results, err := s.matchRepo.FetchRecentMatches(ctx, teamID, s.matchLimit)
	if err != nil {
		return 0, fmt.Errorf("fetch recent matches team_id=%d: %w", teamID, err)
	}
	if len(results) > s.matchLimit {
		results = results[:s.matchLimit]
	}

	form := match.FormScore(teamID, results)
	s.logger.DebugContext(ctx, "recent form computed", "team_id", teamID, "matches", len(results), "form", form)
	return form, nil
}
