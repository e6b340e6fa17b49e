package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/match-forecast/external/footballdata"
	"github.com/riskibarqy/match-forecast/internal/config"
	"github.com/riskibarqy/match-forecast/internal/domain/prediction"
	"github.com/riskibarqy/match-forecast/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/match-forecast/internal/platform/id"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/platform/resilience"
	"github.com/riskibarqy/match-forecast/internal/usecase"
)

// Services is the wired usecase layer shared by the API server and the CLI.
type Services struct {
	Provider    *footballdata.Client
	Forms       *usecase.FormService
	Features    *usecase.FeatureService
	Predictions *usecase.PredictionService
}

// NewServices wires the provider client and usecases. model may be nil, in
// which case predictions carry features only.
func NewServices(cfg config.Config, model prediction.Model, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	provider := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:           cfg.FootballBaseURL,
		Token:             cfg.FootballAPIKey,
		Competition:       cfg.FootballCompetition,
		Timeout:           cfg.FootballTimeout,
		MaxRetries:        cfg.FootballMaxRetries,
		RateLimitMargin:   cfg.FootballRateLimitMargin,
		RateLimitFallback: cfg.FootballRateLimitFallback,
		Logger:            logger.Named("footballdata"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballCircuitEnabled,
			FailureThreshold: cfg.FootballCircuitFailureCount,
			OpenTimeout:      cfg.FootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballCircuitHalfOpenMaxReq,
		},
	})

	usecaseLogger := logger.Named("usecase")
	forms := usecase.NewFormService(provider, cfg.FormMatchLimit, usecaseLogger)
	features := usecase.NewFeatureService(provider, forms, usecaseLogger)
	predictions := usecase.NewPredictionService(
		provider,
		provider,
		features,
		model,
		idgen.NewRandomGenerator(),
		usecase.PredictionConfig{
			BatchMatchLimit: cfg.BatchMatchLimit,
			InterMatchDelay: cfg.BatchInterMatchDelay,
			DirectoryTTL:    cfg.TeamDirectoryTTL,
		},
		usecaseLogger,
	)

	return &Services{
		Provider:    provider,
		Forms:       forms,
		Features:    features,
		Predictions: predictions,
	}
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	services := NewServices(cfg, nil, logger)
	handler := httpapi.NewHandler(services.Predictions, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger.Named("httpapi"), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
