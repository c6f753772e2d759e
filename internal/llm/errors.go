package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned when a client is created without credentials.
var ErrMissingAPIKey = errors.New("API key is required")

// ErrEmptyResponse is returned when the provider reply carries no content.
var ErrEmptyResponse = errors.New("no content in LLM response")

// StatusError is a non-success HTTP status returned by the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("LLM API returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("LLM API returned status %d", e.StatusCode)
}

// IsRateLimited reports whether err is a provider 429.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsQuotaExhausted reports whether err is a provider 402.
func IsQuotaExhausted(err error) bool {
	return hasStatus(err, http.StatusPaymentRequired)
}

func hasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
