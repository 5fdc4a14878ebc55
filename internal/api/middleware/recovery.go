package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"employeeapi/internal/api"
)

// Recovery catches panics from downstream handlers and answers 500 so a faulty
// handler never takes the process down. If the handler already started the
// response, the connection is left as is.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &api.StatusWriter{ResponseWriter: w}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", api.RequestIDFromContext(r.Context()),
				"stack", string(debug.Stack()),
			)
			if sw.Code != 0 {
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
		}()
		next.ServeHTTP(sw, r)
	})
}
