package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	DefaultMaxRetries      = 3
	DefaultRateLimitMargin = 2 * time.Second
	DefaultFallbackWait    = 60 * time.Second

	maxBodyBytes = 6 << 20
)

// Response is a fully read provider response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type FetcherConfig struct {
	HTTPClient *http.Client
	// RateLimitMargin is added to the provider's advisory wait.
	RateLimitMargin time.Duration
	// FallbackWait is used when the advisory wait cannot be parsed.
	FallbackWait time.Duration
	Logger       *logging.Logger
}

// Fetcher issues GET requests and rides out provider rate limiting. It starts
// no goroutines of its own; rate-limit waits suspend the calling flow.
type Fetcher struct {
	httpClient      *http.Client
	rateLimitMargin time.Duration
	fallbackWait    time.Duration
	logger          *logging.Logger
	sleep           func(ctx context.Context, d time.Duration) error
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	margin := cfg.RateLimitMargin
	if margin <= 0 {
		margin = DefaultRateLimitMargin
	}
	fallback := cfg.FallbackWait
	if fallback <= 0 {
		fallback = DefaultFallbackWait
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Fetcher{
		httpClient:      httpClient,
		rateLimitMargin: margin,
		fallbackWait:    fallback,
		logger:          logger,
		sleep:           sleepContext,
	}
}

// Get requests rawURL with params and header. A 200 is returned as is; a 429
// waits for the advised time and retries, counting towards maxRetries; any
// other status fails immediately with a *FetchError.
func (f *Fetcher) Get(ctx context.Context, rawURL string, header http.Header, params url.Values, maxRetries int) (*Response, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	fullURL, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := f.do(ctx, fullURL, header)
		if err != nil {
			return nil, err
		}

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusTooManyRequests:
			if attempt == maxRetries {
				continue
			}
			wait, advised := f.retryWait(resp.Body)
			f.logger.WarnContext(ctx, "provider rate limit hit, waiting before retry",
				"url", fullURL,
				"attempt", attempt,
				"max_retries", maxRetries,
				"wait", wait,
				"advised", advised,
			)
			if err := f.sleep(ctx, wait); err != nil {
				return nil, err
			}
		default:
			return nil, &FetchError{
				Kind:     KindStatus,
				URL:      fullURL,
				Status:   resp.StatusCode,
				Body:     resp.Body,
				Attempts: attempt,
			}
		}
	}

	f.logger.WarnContext(ctx, "provider rate limit retries exhausted", "url", fullURL, "max_retries", maxRetries)
	return nil, &FetchError{
		Kind:     KindMaxRetriesExceeded,
		URL:      fullURL,
		Status:   http.StatusTooManyRequests,
		Attempts: maxRetries,
	}
}

func (f *Fetcher) do(ctx context.Context, fullURL string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: send request: %w", usecase.ErrDependencyUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", usecase.ErrDependencyUnavailable, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       append([]byte(nil), buf.B...),
	}, nil
}

// retryWait returns how long to wait after a 429 and whether the provider's
// advice could be used.
func (f *Fetcher) retryWait(body []byte) (time.Duration, bool) {
	advised, ok := parseAdvisoryWait(body)
	if !ok {
		return f.fallbackWait, false
	}
	return advised + f.rateLimitMargin, true
}

type rateLimitBody struct {
	Message string `json:"message"`
}

// parseAdvisoryWait reads N from a message like "... Wait N seconds ...".
// Anything else, including a change of wording or units, is reported as not
// parseable so the caller falls back to a fixed wait.
func parseAdvisoryWait(body []byte) (time.Duration, bool) {
	var payload rateLimitBody
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return 0, false
	}

	_, rest, ok := strings.Cut(payload.Message, "Wait")
	if !ok {
		return 0, false
	}
	value, _, ok := strings.Cut(rest, "seconds")
	if !ok {
		return 0, false
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func buildURL(rawURL string, params url.Values) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", crerr.Wrapf(err, "parse url %q", rawURL)
	}
	if len(params) == 0 {
		return parsed.String(), nil
	}

	query := parsed.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
