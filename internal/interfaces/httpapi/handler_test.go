package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-forecast/internal/domain/match"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	matchmock "github.com/riskibarqy/match-forecast/internal/mocks/domain/match"
	standingmock "github.com/riskibarqy/match-forecast/internal/mocks/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	router       http.Handler
	standingRepo *standingmock.Repository
	matchRepo    *matchmock.Repository
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	standingRepo := standingmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	logger := logging.NewNop()
	forms := usecase.NewFormService(matchRepo, 5, logger)
	features := usecase.NewFeatureService(standingRepo, forms, logger)
	predictions := usecase.NewPredictionService(standingRepo, matchRepo, features, nil, nil, usecase.PredictionConfig{}, logger)

	return routerFixture{
		router:       NewRouter(NewHandler(predictions, logger), logger, []string{"*"}),
		standingRepo: standingRepo,
		matchRepo:    matchRepo,
	}
}

func sampleTable() *standing.Table {
	return standing.NewTable([]standing.TeamSeasonStats{
		{ID: 57, Name: "Arsenal FC", Played: 10, Won: 7, GoalsFor: 20, GoalsAgainst: 8},
		{ID: 61, Name: "Chelsea FC", Played: 10, Won: 4, GoalsFor: 15, GoalsAgainst: 12},
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	f := newRouterFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListTeams(t *testing.T) {
	f := newRouterFixture(t)
	f.standingRepo.On("FetchStandings", mock.Anything).Return(sampleTable(), nil).Once()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, []any{"Arsenal FC", "Chelsea FC"}, data["teams"])
}

func TestGetFeatures(t *testing.T) {
	f := newRouterFixture(t)
	f.standingRepo.On("FetchStandings", mock.Anything).Return(sampleTable(), nil).Once()
	f.matchRepo.On("FetchRecentMatches", mock.Anything, mock.Anything, 5).Return([]match.Result{}, nil).Twice()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/features?homeTeamId=57&awayTeamId=61", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Arsenal FC", data["homeTeam"])
	vector := data["vector"].([]any)
	require.Len(t, vector, 8)
	assert.InDelta(t, 2.0, vector[0], 1e-9)
	assert.InDelta(t, 0.5, vector[7], 1e-9)
}

func TestGetFeatures_InvalidQuery(t *testing.T) {
	f := newRouterFixture(t)

	for _, target := range []string{"/v1/features?homeTeamId=57", "/v1/features?homeTeamId=abc&awayTeamId=61", "/v1/features?homeTeamId=57&awayTeamId=57"} {
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetFeatures_UnknownTeam(t *testing.T) {
	f := newRouterFixture(t)
	f.standingRepo.On("FetchStandings", mock.Anything).Return(sampleTable(), nil).Once()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/features?homeTeamId=57&awayTeamId=999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPredictCustom_Validation(t *testing.T) {
	f := newRouterFixture(t)

	bodies := []string{
		`{"homeTeam":"Arsenal FC"}`,
		`{"homeTeam":"Arsenal FC","awayTeam":"Arsenal FC"}`,
		`{"homeTeam":"Arsenal FC","awayTeam":"Chelsea FC","extra":1}`,
		`not json`,
	}
	for _, body := range bodies {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/predictions/custom", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestPredictCustom(t *testing.T) {
	f := newRouterFixture(t)
	f.standingRepo.On("FetchStandings", mock.Anything).Return(sampleTable(), nil).Twice()
	f.matchRepo.On("FetchRecentMatches", mock.Anything, mock.Anything, 5).Return([]match.Result{}, nil).Twice()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions/custom", strings.NewReader(`{"homeTeam":"Arsenal FC","awayTeam":"Chelsea FC"}`))
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	features := data["features"].(map[string]any)
	assert.Equal(t, "Chelsea FC", features["awayTeam"])
	assert.NotContains(t, data, "prediction")
}

func TestPredictCurrentMatchday(t *testing.T) {
	f := newRouterFixture(t)
	f.matchRepo.On("FetchScheduledMatches", mock.Anything).Return([]match.Fixture{
		{ID: 1, HomeTeam: match.Side{ID: 57}, AwayTeam: match.Side{ID: 61}},
		{ID: 2, HomeTeam: match.Side{ID: 61}, AwayTeam: match.Side{ID: 404}},
	}, nil).Once()
	f.standingRepo.On("FetchStandings", mock.Anything).Return(sampleTable(), nil).Once()
	f.matchRepo.On("FetchRecentMatches", mock.Anything, mock.Anything, 5).Return([]match.Result{}, nil).Twice()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/predictions/current-matchday", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["considered"])
	assert.EqualValues(t, 1, data["failed"])
	assert.Len(t, data["predictions"], 1)
}
