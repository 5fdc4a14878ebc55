package testutil_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employeeapi/internal/api"
	"employeeapi/internal/domain"
	"employeeapi/internal/testutil"
)

func TestBasicHeader(t *testing.T) {
	h := testutil.BasicHeader("admin", "Admin@123")

	if !strings.HasPrefix(h, "Basic ") {
		t.Fatalf("expected Basic prefix, got %q", h)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(h, "Basic "))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if string(raw) != "admin:Admin@123" {
		t.Errorf("expected admin:Admin@123, got %q", raw)
	}
}

func TestBasicHeaderMatchesStdlib(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	testutil.SetBasicAuth(req, "hr1", "p:a:ss")

	user, pass, ok := req.BasicAuth()
	if !ok {
		t.Fatal("net/http could not parse the header")
	}
	if user != "hr1" || pass != "p:a:ss" {
		t.Errorf("got %q/%q", user, pass)
	}
}

func TestSeedStores(t *testing.T) {
	creds := testutil.SeedCredentials(t)
	if _, ok := creds.Verify(testutil.AdminUser, testutil.AdminPassword); !ok {
		t.Error("expected admin to verify")
	}
	if _, ok := creds.Verify(testutil.HrUser, testutil.HrPassword); !ok {
		t.Error("expected hr1 to verify")
	}
	if _, ok := creds.Verify(testutil.PlainUser, testutil.PlainPassword); !ok {
		t.Error("expected user1 to verify")
	}

	if n := len(testutil.SeedEmployees(t).List()); n != 5 {
		t.Errorf("expected 5 seed employees, got %d", n)
	}
}

func TestPrincipalEchoHandler(t *testing.T) {
	h := testutil.PrincipalEchoHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 without principal, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(api.ContextWithPrincipal(req.Context(), domain.Principal{
		Username: "hr1",
		Roles:    []domain.Role{domain.RoleHr},
	}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body struct {
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body.Username != "hr1" || len(body.Roles) != 1 || body.Roles[0] != "Hr" {
		t.Errorf("unexpected body: %+v", body)
	}
}
