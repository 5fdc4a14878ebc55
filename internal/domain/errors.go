package domain

import "errors"

// Authentication failures. All of them are answered with 401 and a Basic challenge.
var (
	ErrMissingCredentials   = errors.New("authorization header is missing")
	ErrUnsupportedScheme    = errors.New("basic authorization scheme required")
	ErrMalformedEncoding    = errors.New("credentials are not valid base64")
	ErrMalformedCredentials = errors.New("credentials must be username:password")
	ErrInvalidCredentials   = errors.New("invalid username or password")
)

// Sentinel errors used across service boundaries.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrRateLimited  = errors.New("rate limited")
)

// ErrorResponse is the standard JSON error envelope returned to clients.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"`
}
