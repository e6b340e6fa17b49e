package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
	"github.com/riskibarqy/match-forecast/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	waits []time.Duration
	err   error
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return r.err
}

func newTestFetcher(rec *sleepRecorder) *Fetcher {
	f := NewFetcher(FetcherConfig{Logger: logging.NewNop()})
	f.sleep = rec.sleep
	return f
}

// sequenceServer answers each request with the next status/body pair and
// repeats the last one once the sequence is exhausted.
func sequenceServer(t *testing.T, statuses []int, bodies []string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		idx := int(calls.Add(1)) - 1
		if idx >= len(statuses) {
			idx = len(statuses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statuses[idx])
		_, _ = w.Write([]byte(bodies[idx]))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetcherGet_ReturnsOKWithoutWaiting(t *testing.T) {
	t.Parallel()

	srv, calls := sequenceServer(t, []int{http.StatusOK}, []string{`{"ok":true}`})
	rec := &sleepRecorder{}

	resp, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.EqualValues(t, 1, calls.Load())
	assert.Empty(t, rec.waits)
}

func TestFetcherGet_WaitsAdvisedSecondsPlusMargin(t *testing.T) {
	t.Parallel()

	srv, calls := sequenceServer(t,
		[]int{http.StatusTooManyRequests, http.StatusOK},
		[]string{`{"message":"You reached your request limit. Wait 12 seconds."}`, `{}`},
	)
	rec := &sleepRecorder{}

	resp, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, []time.Duration{14 * time.Second}, rec.waits)
}

func TestFetcherGet_FallsBackWhenAdviceUnreadable(t *testing.T) {
	t.Parallel()

	srv, _ := sequenceServer(t,
		[]int{http.StatusTooManyRequests, http.StatusOK},
		[]string{`not json`, `{}`},
	)
	rec := &sleepRecorder{}

	_, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{60 * time.Second}, rec.waits)
}

func TestFetcherGet_SucceedsOnLastAttempt(t *testing.T) {
	t.Parallel()

	limited := `{"message":"Wait 1 seconds"}`
	srv, calls := sequenceServer(t,
		[]int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK},
		[]string{limited, limited, `{"done":1}`},
	)
	rec := &sleepRecorder{}

	resp, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
	require.NoError(t, err)
	assert.JSONEq(t, `{"done":1}`, string(resp.Body))
	assert.EqualValues(t, 3, calls.Load())
	assert.Len(t, rec.waits, 2)
}

func TestFetcherGet_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	srv, calls := sequenceServer(t, []int{http.StatusTooManyRequests}, []string{`{"message":"Wait 5 seconds"}`})
	rec := &sleepRecorder{}

	_, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindMaxRetriesExceeded, fetchErr.Kind)
	assert.Equal(t, srv.URL, fetchErr.URL)
	assert.True(t, crerr.Is(err, ErrMaxRetriesExceeded))
	assert.True(t, crerr.Is(err, usecase.ErrDependencyUnavailable))
	assert.EqualValues(t, 3, calls.Load())
	// no wait after the final 429
	assert.Len(t, rec.waits, 2)
}

func TestFetcherGet_NonRetryableStatusFailsImmediately(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		srv, calls := sequenceServer(t, []int{status}, []string{`{"message":"nope"}`})
		rec := &sleepRecorder{}

		_, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
		require.Error(t, err)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, KindStatus, fetchErr.Kind)
		assert.Equal(t, status, fetchErr.Status)
		assert.JSONEq(t, `{"message":"nope"}`, string(fetchErr.Body))
		assert.True(t, crerr.Is(err, ErrUnexpectedStatus))
		assert.Equal(t, status >= 500, crerr.Is(err, usecase.ErrDependencyUnavailable))
		assert.EqualValues(t, 1, calls.Load())
		assert.Empty(t, rec.waits)
	}
}

func TestFetcherGet_NonPositiveMaxRetriesUsesDefault(t *testing.T) {
	t.Parallel()

	srv, calls := sequenceServer(t, []int{http.StatusTooManyRequests}, []string{`{}`})
	rec := &sleepRecorder{}

	_, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 0)
	require.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.EqualValues(t, DefaultMaxRetries, calls.Load())
}

func TestFetcherGet_SleepCancellationAborts(t *testing.T) {
	t.Parallel()

	srv, calls := sequenceServer(t, []int{http.StatusTooManyRequests}, []string{`{"message":"Wait 30 seconds"}`})
	rec := &sleepRecorder{err: context.Canceled}

	_, err := newTestFetcher(rec).Get(context.Background(), srv.URL, nil, nil, 3)
	require.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetcherGet_SendsHeadersAndParams(t *testing.T) {
	t.Parallel()

	var gotToken, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	header := http.Header{}
	header.Set("X-Auth-Token", "secret")
	params := url.Values{}
	params.Set("status", "FINISHED")

	_, err := newTestFetcher(&sleepRecorder{}).Get(context.Background(), srv.URL+"/teams/1/matches", header, params, 1)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "status=FINISHED", gotQuery)
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	require.NoError(t, sleepContext(context.Background(), 0))
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))
}

func TestParseAdvisoryWait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want time.Duration
		ok   bool
	}{
		{name: "provider wording", body: `{"message":"You reached your request limit. Wait 12 seconds.","errorCode":429}`, want: 12 * time.Second, ok: true},
		{name: "zero", body: `{"message":"Wait 0 seconds"}`, want: 0, ok: true},
		{name: "extra spaces", body: `{"message":"Wait   7   seconds"}`, want: 7 * time.Second, ok: true},
		{name: "not json", body: `Too Many Requests`},
		{name: "no message", body: `{"error":"limit"}`},
		{name: "no wait keyword", body: `{"message":"slow down"}`},
		{name: "other unit", body: `{"message":"Wait 1 minute"}`},
		{name: "not a number", body: `{"message":"Wait a few seconds"}`},
		{name: "negative", body: `{"message":"Wait -3 seconds"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parseAdvisoryWait([]byte(tc.body))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
