package footballdata

import (
	"fmt"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-forecast/internal/usecase"
)

var (
	ErrUnexpectedStatus   = crerr.New("provider returned unexpected status")
	ErrMaxRetriesExceeded = crerr.New("provider rate limit retries exhausted")
)

type FetchErrorKind string

const (
	KindStatus             FetchErrorKind = "status"
	KindMaxRetriesExceeded FetchErrorKind = "max_retries_exceeded"
)

// FetchError is returned by Fetcher.Get for a non-retryable status or when
// every attempt was rate limited.
type FetchError struct {
	Kind     FetchErrorKind
	URL      string
	Status   int
	Body     []byte
	Attempts int
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindMaxRetriesExceeded:
		return fmt.Sprintf("max retries (%d) exceeded for %s", e.Attempts, e.URL)
	default:
		return fmt.Sprintf("provider status=%d url=%s body=%s", e.Status, e.URL, abbreviateBody(e.Body))
	}
}

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return e.Kind == KindStatus
	case ErrMaxRetriesExceeded:
		return e.Kind == KindMaxRetriesExceeded
	case usecase.ErrDependencyUnavailable:
		return e.Kind == KindMaxRetriesExceeded || e.Status >= http.StatusInternalServerError
	default:
		return false
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
