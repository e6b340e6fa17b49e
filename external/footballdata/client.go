package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-forecast/internal/domain/match"
	"github.com/riskibarqy/match-forecast/internal/domain/standing"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/platform/resilience"
	"github.com/riskibarqy/match-forecast/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL     = "https://api.football-data.org/v4"
	DefaultCompetition = "PL"

	authHeader = "X-Auth-Token"
)

var ErrEmptyStandings = crerr.New("provider returned no standings")

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	Token             string
	Competition       string
	Timeout           time.Duration
	MaxRetries        int
	RateLimitMargin   time.Duration
	RateLimitFallback time.Duration
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client talks to football-data.org. Requests are serialized through a
// single gate so the per-minute quota is never spent in parallel.
type Client struct {
	fetcher        *Fetcher
	baseURL        string
	token          string
	competition    string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool

	gate   sync.Mutex
	flight resilience.SingleFlight[string, []byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	competition := strings.TrimSpace(cfg.Competition)
	if competition == "" {
		competition = DefaultCompetition
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker(breakerCfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("football-data circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		fetcher: NewFetcher(FetcherConfig{
			HTTPClient:      httpClient,
			RateLimitMargin: cfg.RateLimitMargin,
			FallbackWait:    cfg.RateLimitFallback,
			Logger:          logger,
		}),
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		competition:    competition,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchStandings returns the first (overall) table of the configured competition.
// Rows are projected as the provider sends them.
func (c *Client) FetchStandings(ctx context.Context) (*standing.Table, error) {
	path := fmt.Sprintf("/competitions/%s/standings", url.PathEscape(c.competition))

	var payload standingsEnvelope
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch standings competition=%s: %w", c.competition, err)
	}
	if len(payload.Standings) == 0 {
		return nil, fmt.Errorf("decode standings competition=%s: %w", c.competition, ErrEmptyStandings)
	}

	rows := make([]standing.TeamSeasonStats, 0, len(payload.Standings[0].Table))
	for _, row := range payload.Standings[0].Table {
		stats := standing.TeamSeasonStats{
			ID:           standing.TeamID(row.Team.ID),
			Name:         strings.TrimSpace(row.Team.Name),
			Played:       row.PlayedGames,
			Won:          row.Won,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
		}
		if err := stats.Validate(); err != nil {
			c.logger.WarnContext(ctx, "provider standings row is inconsistent", "competition", c.competition, "team_id", stats.ID, "error", err)
		}
		rows = append(rows, stats)
	}
	return standing.NewTable(rows), nil
}

// FetchRecentMatches returns up to limit finished matches of a team, most
// recent first as the provider orders them. Matches without a full-time
// score are dropped.
func (c *Client) FetchRecentMatches(ctx context.Context, teamID standing.TeamID, limit int) ([]match.Result, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	params := url.Values{}
	params.Set("status", "FINISHED")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var payload matchesEnvelope
	path := fmt.Sprintf("/teams/%d/matches", teamID)
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, fmt.Errorf("fetch matches team_id=%d: %w", teamID, err)
	}

	out := make([]match.Result, 0, len(payload.Matches))
	for _, item := range payload.Matches {
		full := item.Score.FullTime
		if full.Home == nil || full.Away == nil {
			continue
		}
		out = append(out, match.Result{
			HomeTeamID: standing.TeamID(item.HomeTeam.ID),
			AwayTeamID: standing.TeamID(item.AwayTeam.ID),
			HomeScore:  *full.Home,
			AwayScore:  *full.Away,
		})
	}
	return out, nil
}

// FetchScheduledMatches lists the competition's scheduled fixtures in provider order.
func (c *Client) FetchScheduledMatches(ctx context.Context) ([]match.Fixture, error) {
	params := url.Values{}
	params.Set("status", "SCHEDULED")

	var payload matchesEnvelope
	path := fmt.Sprintf("/competitions/%s/matches", url.PathEscape(c.competition))
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, fmt.Errorf("fetch scheduled matches competition=%s: %w", c.competition, err)
	}

	out := make([]match.Fixture, 0, len(payload.Matches))
	for _, item := range payload.Matches {
		fixture := match.Fixture{
			ID:       item.ID,
			HomeTeam: match.Side{ID: standing.TeamID(item.HomeTeam.ID), Name: strings.TrimSpace(item.HomeTeam.Name)},
			AwayTeam: match.Side{ID: standing.TeamID(item.AwayTeam.ID), Name: strings.TrimSpace(item.AwayTeam.Name)},
		}
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(item.UTCDate)); err == nil {
			fixture.UTCDate = parsed.UTC()
		}
		out = append(out, fixture)
	}
	return out, nil
}

// Fetch performs an authenticated GET against the provider and returns the
// raw body of a 200 response. Concurrent callers for the same URL share one
// provider call; a caller that joined a call aborted by another caller's
// context tries again under its own.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	key := fullURL + "?" + params.Encode()

	for {
		raw, err, shared := c.flight.Do(key, func() ([]byte, error) {
			return c.fetchGuarded(ctx, path, fullURL, params)
		})
		if !shared {
			return raw, err
		}
		if isContextErr(err) && ctx.Err() == nil {
			c.logger.DebugContext(ctx, "shared football-data request was cancelled by another caller, retrying", "path", path)
			continue
		}
		c.logger.DebugContext(ctx, "football-data request deduplicated", "path", path)
		return raw, err
	}
}

func (c *Client) fetchGuarded(ctx context.Context, path, fullURL string, params url.Values) ([]byte, error) {
	var body []byte
	call := func() error {
		resp, err := c.get(ctx, fullURL, params)
		if err != nil {
			return err
		}
		body = resp.Body
		return nil
	}

	var err error
	if c.circuitEnabled {
		err = c.breaker.Execute(call, isCircuitFailure)
	} else {
		err = call()
	}
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return body, err
}

func isContextErr(err error) bool {
	return crerr.Is(err, context.Canceled) || crerr.Is(err, context.DeadlineExceeded)
}

func (c *Client) get(ctx context.Context, fullURL string, params url.Values) (*Response, error) {
	c.gate.Lock()
	defer c.gate.Unlock()

	header := http.Header{}
	if c.token != "" {
		header.Set(authHeader, c.token)
	}
	return c.fetcher.Get(ctx, fullURL, header, params, c.maxRetries)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	raw, err := c.Fetch(ctx, path, params)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, usecase.ErrDependencyUnavailable)
}
