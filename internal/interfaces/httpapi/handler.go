package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/usecase"
)

const maxRequestBodyBytes = 1 << 16

type Handler struct {
	predictionService *usecase.PredictionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(predictionService *usecase.PredictionService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		predictionService: predictionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.predictionService.Teams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsDTO{Teams: teams})
}

func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFeatures")
	defer span.End()

	homeID, err := parseTeamIDParam(r, "homeTeamId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	awayID, err := parseTeamIDParam(r, "awayTeamId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	features, err := h.predictionService.Features(ctx, homeID, awayID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute features failed", "home_team_id", homeID, "away_team_id", awayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, featuresToDTO(features))
}

func (h *Handler) PredictCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictCustom")
	defer span.End()

	var req customPredictionRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.predictionService.Custom(ctx, req.HomeTeam, req.AwayTeam)
	if err != nil {
		h.logger.WarnContext(ctx, "custom prediction failed", "home_team", req.HomeTeam, "away_team", req.AwayTeam, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPredictionToDTO(result))
}

func (h *Handler) PredictCurrentMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictCurrentMatchday")
	defer span.End()

	result, err := h.predictionService.CurrentMatchday(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "current matchday prediction failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayToDTO(result))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseTeamIDParam(r *http.Request, name string) (standing.TeamID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return standing.TeamID(value), nil
}
