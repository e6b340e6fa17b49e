package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/match-forecast/internal/domain/match"
	"github.com/riskibarqy/match-forecast/internal/domain/prediction"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/cache"
	idgen "github.com/riskibarqy/match-forecast/internal/platform/id"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"golang.org/x/time/rate"
)

const (
	DefaultBatchMatchLimit = 10
	DefaultInterMatchDelay = 6 * time.Second
	DefaultDirectoryTTL    = 10 * time.Minute

	directoryKey = "standings"
)

// PredictionConfig holds the batch driver policy knobs.
type PredictionConfig struct {
	BatchMatchLimit int
	InterMatchDelay time.Duration
	// DirectoryTTL bounds how long the team name directory is reused.
	DirectoryTTL time.Duration
}

// MatchPrediction is the result for one match. Prediction is nil when no
// model is configured.
type MatchPrediction struct {
	Fixture    *match.Fixture
	Features   MatchFeatures
	Prediction *prediction.Prediction
}

type MatchdayResult struct {
	SessionID   string
	Considered  int
	Failed      int
	Predictions []MatchPrediction
}

type PredictionService struct {
	standingRepo standing.Repository
	matchRepo    match.Repository
	features     *FeatureService
	model        prediction.Model
	ids          idgen.Generator
	directory    *cache.Store[string, *standing.Table]
	cfg          PredictionConfig
	logger       *logging.Logger
}

func NewPredictionService(
	standingRepo standing.Repository,
	matchRepo match.Repository,
	features *FeatureService,
	model prediction.Model,
	ids idgen.Generator,
	cfg PredictionConfig,
	logger *logging.Logger,
) *PredictionService {
	if cfg.BatchMatchLimit <= 0 {
		cfg.BatchMatchLimit = DefaultBatchMatchLimit
	}
	if cfg.InterMatchDelay < 0 {
		cfg.InterMatchDelay = 0
	}
	if cfg.DirectoryTTL <= 0 {
		cfg.DirectoryTTL = DefaultDirectoryTTL
	}
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		standingRepo: standingRepo,
		matchRepo:    matchRepo,
		features:     features,
		model:        model,
		ids:          ids,
		directory:    cache.NewStore[string, *standing.Table](cfg.DirectoryTTL),
		cfg:          cfg,
		logger:       logger,
	}
}

// Teams lists the display names of every team in the current table.
func (s *PredictionService) Teams(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Teams")
	defer span.End()

	table, err := s.teamDirectory(ctx)
	if err != nil {
		return nil, err
	}

	rows := table.Teams()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Name)
	}
	return out, nil
}

// Features computes a single match on the fresh path: standings are fetched
// and no form cache is kept.
func (s *PredictionService) Features(ctx context.Context, homeID, awayID standing.TeamID) (MatchFeatures, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Features")
	defer span.End()

	if homeID <= 0 || awayID <= 0 {
		return MatchFeatures{}, fmt.Errorf("%w: team ids must be greater than zero", ErrInvalidInput)
	}
	if homeID == awayID {
		return MatchFeatures{}, fmt.Errorf("%w: teams must be different", ErrInvalidInput)
	}
	return s.features.Features(ctx, homeID, awayID, nil, nil)
}

// Custom predicts a match between two teams given by display name.
func (s *PredictionService) Custom(ctx context.Context, homeName, awayName string) (MatchPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Custom")
	defer span.End()

	homeName = strings.TrimSpace(homeName)
	awayName = strings.TrimSpace(awayName)
	if homeName == "" || awayName == "" {
		return MatchPrediction{}, fmt.Errorf("%w: both teams required", ErrInvalidInput)
	}
	if homeName == awayName {
		return MatchPrediction{}, fmt.Errorf("%w: teams must be different", ErrInvalidInput)
	}

	table, err := s.teamDirectory(ctx)
	if err != nil {
		return MatchPrediction{}, err
	}
	ids := table.IDByName()
	homeID, homeOK := ids[homeName]
	awayID, awayOK := ids[awayName]
	if !homeOK || !awayOK {
		return MatchPrediction{}, fmt.Errorf("%w: invalid team", ErrInvalidInput)
	}

	features, err := s.features.Features(ctx, homeID, awayID, nil, nil)
	if err != nil {
		return MatchPrediction{}, err
	}
	return s.predict(ctx, nil, features)
}

// CurrentMatchday runs one batch session over the scheduled matches: the
// standings and the form cache are fetched once and shared, matches are paced
// to respect the provider quota, and a failing match is logged and skipped.
func (s *PredictionService) CurrentMatchday(ctx context.Context) (MatchdayResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.CurrentMatchday")
	defer span.End()

	sessionID, err := s.ids.NewID()
	if err != nil {
		return MatchdayResult{}, fmt.Errorf("new session id: %w", err)
	}
	logger := s.logger.With("session_id", sessionID)

	fixtures, err := s.matchRepo.FetchScheduledMatches(ctx)
	if err != nil {
		return MatchdayResult{}, fmt.Errorf("fetch scheduled matches: %w", err)
	}
	if len(fixtures) > s.cfg.BatchMatchLimit {
		fixtures = fixtures[:s.cfg.BatchMatchLimit]
	}

	result := MatchdayResult{
		SessionID:   sessionID,
		Considered:  len(fixtures),
		Predictions: make([]MatchPrediction, 0, len(fixtures)),
	}
	if len(fixtures) == 0 {
		return result, nil
	}

	logger.InfoContext(ctx, "fetching standings once for batch", "matches", len(fixtures))
	table, err := s.standingRepo.FetchStandings(ctx)
	if err != nil {
		return MatchdayResult{}, fmt.Errorf("fetch standings: %w", err)
	}
	formCache := NewFormCache()
	limiter := newPacer(s.cfg.InterMatchDelay)

	for idx := range fixtures {
		fixture := fixtures[idx]
		if err := limiter.Wait(ctx); err != nil {
			return MatchdayResult{}, fmt.Errorf("pace batch: %w", err)
		}

		features, err := s.features.Features(ctx, fixture.HomeTeam.ID, fixture.AwayTeam.ID, table, formCache)
		if err == nil {
			var item MatchPrediction
			item, err = s.predict(ctx, &fixture, features)
			if err == nil {
				result.Predictions = append(result.Predictions, item)
			}
		}
		if err != nil {
			result.Failed++
			logger.WarnContext(ctx, "match prediction failed, skipping",
				"position", idx+1,
				"fixture_id", fixture.ID,
				"home_team_id", fixture.HomeTeam.ID,
				"away_team_id", fixture.AwayTeam.ID,
				"error", err,
			)
			continue
		}
		logger.InfoContext(ctx, "match processed", "position", idx+1, "total", len(fixtures))
	}

	logger.InfoContext(ctx, "batch finished",
		"predicted", len(result.Predictions),
		"failed", result.Failed,
		"cached_teams", formCache.Len(),
	)
	return result, nil
}

func (s *PredictionService) predict(ctx context.Context, fixture *match.Fixture, features MatchFeatures) (MatchPrediction, error) {
	out := MatchPrediction{
		Fixture:  fixture,
		Features: features,
	}
	if s.model == nil {
		return out, nil
	}

	p, err := s.model.Predict(ctx, features.Vector)
	if err != nil {
		return MatchPrediction{}, fmt.Errorf("predict %s vs %s: %w", features.HomeName, features.AwayName, err)
	}
	out.Prediction = &p
	return out, nil
}

func (s *PredictionService) teamDirectory(ctx context.Context) (*standing.Table, error) {
	table, _, err := s.directory.GetOrLoad(ctx, directoryKey, s.standingRepo.FetchStandings)
	if err != nil {
		return nil, fmt.Errorf("load team directory: %w", err)
	}
	return table, nil
}

// newPacer admits the first match immediately and then one match per delay.
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
