package middleware

import (
	"net/http"
	"strconv"
)

// MaxBodySize returns middleware that limits request bodies to maxBytes.
// A declared Content-Length over the limit is refused up front with 413;
// undeclared bodies are cut off by http.MaxBytesReader while being read.
func MaxBodySize(maxBytes int64) Middleware {
	limit := strconv.FormatInt(maxBytes, 10)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
					"request body exceeds "+limit+" bytes")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
