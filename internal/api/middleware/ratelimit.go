package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"employeeapi/internal/api"
	"employeeapi/internal/domain"
	"employeeapi/internal/platform/telemetry"
)

// RateLimit returns middleware that enforces per-IP rate limits. It runs ahead
// of BasicAuth so failed logins are throttled too.
// The metrics parameter is optional; pass nil to skip metric recording.
func RateLimit(limiter api.RateLimiter, m *telemetry.APIMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			result := limiter.Allow(ip)
			if m != nil {
				m.RecordRateLimitDecision(r.Context(), "ip", decision(result.Allowed))
			}
			if !result.Allowed {
				slog.Debug("rate limited", "ip", ip, "retry_after", result.RetryAfter)
				writeRateLimited(w, result.RetryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP uses RemoteAddr only. X-Forwarded-For is client-controlled.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func decision(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}

func writeRateLimited(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if err := writeJSON(w, domain.ErrorResponse{
		Error:      "rate_limited",
		Message:    domain.ErrRateLimited.Error(),
		RetryAfter: retryAfter,
	}); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}
