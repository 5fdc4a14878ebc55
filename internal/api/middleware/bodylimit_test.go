package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employeeapi/internal/api/middleware"
	"employeeapi/internal/domain"
)

func TestMaxBodySize(t *testing.T) {
	const limit int64 = 16

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{
			name:       "body within limit",
			method:     http.MethodPost,
			body:       "hello",
			wantStatus: http.StatusOK,
		},
		{
			name:       "body exceeds limit",
			method:     http.MethodPost,
			body:       strings.Repeat("x", int(limit)+1),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "exact boundary",
			method:     http.MethodPost,
			body:       strings.Repeat("x", int(limit)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty body",
			method:     http.MethodPost,
			body:       "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no body GET request",
			method:     http.MethodGet,
			body:       "",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, err := io.ReadAll(r.Body)
				if err != nil {
					// MaxBytesReader triggers http.MaxBytesError on read
					http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := middleware.MaxBodySize(limit)(inner)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/api/employee", body)
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestMaxBodySizeRejectsDeclaredLengthUpFront(t *testing.T) {
	called := false
	handler := middleware.MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/employee", strings.NewReader(`{"Name":"too long"}`))
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler should not be called when Content-Length exceeds the limit")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	var errResp domain.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Error != "payload_too_large" {
		t.Errorf("expected error 'payload_too_large', got %q", errResp.Error)
	}
}

func TestMaxBodySizeUndeclaredLength(t *testing.T) {
	var readErr error
	handler := middleware.MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/employee", strings.NewReader(strings.Repeat("x", 32)))
	req.ContentLength = -1
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Fatalf("expected *http.MaxBytesError, got %v", readErr)
	}
	if maxErr.Limit != 8 {
		t.Errorf("expected limit 8, got %d", maxErr.Limit)
	}
}
