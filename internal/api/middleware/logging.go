package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"employeeapi/internal/api"
)

// Logging returns a middleware that writes one structured line per request.
// Server errors are logged at error level. Credentials are never logged.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &api.StatusWriter{ResponseWriter: w, Code: http.StatusOK}

			// The principal is attached further down the chain, so it is
			// captured from the request the inner handlers saw.
			var username string
			next.ServeHTTP(sw, r.WithContext(api.ContextWithUsernameSink(r.Context(), &username)))

			level := slog.LevelInfo
			if sw.Code >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.Code,
				"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
				"request_id", api.RequestIDFromContext(r.Context()),
				"username", username,
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}
