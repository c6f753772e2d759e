package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/career-coach/internal/oracle"
	"github.com/jonathan/career-coach/internal/types"
)

// Caller-facing messages that do not come from an oracle error.
const (
	msgInvalidJSON   = "Invalid JSON body"
	msgInternal      = "Internal server error"
	msgUnauthorized  = "Unauthorized"
	msgInvalidID     = "Invalid ID format"
	msgStoreFailure  = "Failed to save data"
	msgRateLimitBody = "Rate limit exceeded. Please try again later."
)

// publicMessager is implemented by errors whose message is safe to return.
type publicMessager interface {
	PublicMessage() string
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *types.ValidationError
		configErr     *oracle.ConfigError
		rateErr       *oracle.RateLimitedError
		quotaErr      *oracle.QuotaExhaustedError
		parseErr      *oracle.ParseError
		upstreamErr   *oracle.UpstreamError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &quotaErr):
		return http.StatusPaymentRequired
	case errors.As(err, &configErr), errors.As(err, &parseErr), errors.As(err, &upstreamErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message shown to the caller for err. Operation
// failures use the operation's generic message and configuration problems stay
// hidden behind fallback.
func PublicMessage(err error, fallback string) string {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var configErr *oracle.ConfigError
	if errors.As(err, &configErr) {
		return fallback
	}

	var pm publicMessager
	if errors.As(err, &pm) {
		return pm.PublicMessage()
	}
	return fallback
}
