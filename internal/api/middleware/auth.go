package middleware

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"employeeapi/internal/api"
	"employeeapi/internal/domain"
	"employeeapi/internal/platform/telemetry"
)

const basicScheme = "Basic"

// BasicAuth returns a middleware that authenticates requests with HTTP Basic
// credentials checked against store. On success the principal is attached to
// the request context; on failure the request ends with 401 and a Basic challenge.
// Paths in publicPaths are exempt from authentication.
// An empty realm sends a bare "Basic" challenge.
// The metrics parameter is optional; pass nil to skip metric recording.
func BasicAuth(store api.CredentialStore, realm string, publicPaths []string, m *telemetry.APIMetrics) Middleware {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}
	challenge := Challenge(realm)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authenticate(store, r.Header.Get("Authorization"))
			if err != nil {
				reason := failureReason(err)
				slog.Debug("basic auth rejected",
					"reason", reason,
					"request_id", api.RequestIDFromContext(r.Context()),
				)
				if m != nil {
					m.RecordAuthAttempt(r.Context(), "failure", reason)
				}
				writeUnauthorized(w, challenge, err.Error())
				return
			}

			if m != nil {
				m.RecordAuthAttempt(r.Context(), "success", "")
			}
			ctx := api.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Challenge returns the WWW-Authenticate value for realm.
func Challenge(realm string) string {
	if realm == "" {
		return basicScheme
	}
	return basicScheme + " realm=" + strconv.Quote(realm)
}

func authenticate(store api.CredentialStore, header string) (domain.Principal, error) {
	username, password, err := ParseBasic(header)
	if err != nil {
		return domain.Principal{}, err
	}
	principal, ok := store.Verify(username, password)
	if !ok {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	return principal, nil
}

// ParseBasic extracts the username and password from an Authorization header value.
// The scheme must be exactly "Basic". The decoded text is split on its first
// colon, so passwords may themselves contain colons.
func ParseBasic(header string) (username, password string, err error) {
	if header == "" {
		return "", "", domain.ErrMissingCredentials
	}
	scheme, param, _ := strings.Cut(header, " ")
	if scheme != basicScheme {
		return "", "", domain.ErrUnsupportedScheme
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(param))
	if err != nil || !utf8.Valid(decoded) {
		return "", "", domain.ErrMalformedEncoding
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", domain.ErrMalformedCredentials
	}
	return username, password, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, domain.ErrUnsupportedScheme):
		return "unsupported_scheme"
	case errors.Is(err, domain.ErrMalformedEncoding):
		return "malformed_encoding"
	case errors.Is(err, domain.ErrMalformedCredentials):
		return "malformed_credentials"
	default:
		return "invalid_credentials"
	}
}

func writeUnauthorized(w http.ResponseWriter, challenge, msg string) {
	w.Header().Set("WWW-Authenticate", challenge)
	writeError(w, http.StatusUnauthorized, "unauthorized", msg)
}
