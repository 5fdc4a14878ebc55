package middleware

import (
	"log/slog"
	"net/http"

	"employeeapi/internal/api"
	"employeeapi/internal/domain"
	"employeeapi/internal/platform/telemetry"
)

// RequireRoles returns a middleware that lets a request through only when the
// authenticated principal holds at least one of roles. route names the endpoint
// in logs and metrics. A request with no principal gets 401, a principal
// lacking every role gets 403.
// The metrics parameter is optional; pass nil to skip metric recording.
func RequireRoles(route string, roles []domain.Role, m *telemetry.APIMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := api.PrincipalFromContext(r.Context())
			if !ok {
				slog.Warn("no principal on protected route; is BasicAuth wired?", "route", route)
				if m != nil {
					m.RecordAuthzDecision(r.Context(), route, "unauthenticated")
				}
				writeUnauthorized(w, basicScheme, domain.ErrUnauthorized.Error())
				return
			}
			if !principal.HasAnyRole(roles...) {
				slog.Debug("role check denied",
					"route", route,
					"username", principal.Username,
					"request_id", api.RequestIDFromContext(r.Context()),
				)
				if m != nil {
					m.RecordAuthzDecision(r.Context(), route, "denied")
				}
				writeError(w, http.StatusForbidden, "forbidden", domain.ErrForbidden.Error()+": insufficient role")
				return
			}
			if m != nil {
				m.RecordAuthzDecision(r.Context(), route, "allowed")
			}
			next.ServeHTTP(w, r)
		})
	}
}
