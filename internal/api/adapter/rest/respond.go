package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"employeeapi/internal/domain"
)

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, errCode, msg string) {
	respond(w, status, domain.ErrorResponse{
		Error:   errCode,
		Message: msg,
	})
}

func writeJSON(w http.ResponseWriter, v any) error {
	return json.NewEncoder(w).Encode(v)
}
