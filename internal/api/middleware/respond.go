package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"employeeapi/internal/domain"
)

func writeError(w http.ResponseWriter, status int, errCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, domain.ErrorResponse{
		Error:   errCode,
		Message: msg,
	}); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	return json.NewEncoder(w).Encode(v)
}
