package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employeeapi/internal/api/adapter/rest"
	"employeeapi/internal/api/middleware"
	"employeeapi/internal/domain"
	"employeeapi/internal/platform/validation"
	"employeeapi/internal/testutil"
)

const employeeJSON = `{"Name":"Deepika Padukone","Department":"Design","Salary":950000}`

// newAuthedHandler wires the router behind BasicAuth backed by the seed users.
func newAuthedHandler(t *testing.T) http.Handler {
	t.Helper()
	router := rest.NewRouter(testutil.SeedEmployees(t), validation.New(), nil)
	return middleware.Chain(router,
		middleware.BasicAuth(testutil.SeedCredentials(t), "", []string{"/healthz", "/readyz"}, nil),
	)
}

func TestRouteRoleMatrix(t *testing.T) {
	type call struct {
		method string
		path   string
		body   string
	}
	calls := map[string]call{
		"current_user":    {http.MethodGet, "/api/employee/current", ""},
		"list_employees":  {http.MethodGet, "/api/employee", ""},
		"get_employee":    {http.MethodGet, "/api/employee/1", ""},
		"create_employee": {http.MethodPost, "/api/employee", employeeJSON},
		"update_employee": {http.MethodPut, "/api/employee/1", employeeJSON},
		"delete_employee": {http.MethodDelete, "/api/employee/1", ""},
	}

	tests := []struct {
		route string
		user  string
		pass  string
		want  int
	}{
		{"current_user", testutil.AdminUser, testutil.AdminPassword, http.StatusOK},
		{"current_user", testutil.HrUser, testutil.HrPassword, http.StatusOK},
		{"current_user", testutil.PlainUser, testutil.PlainPassword, http.StatusOK},
		{"list_employees", testutil.AdminUser, testutil.AdminPassword, http.StatusOK},
		{"list_employees", testutil.HrUser, testutil.HrPassword, http.StatusOK},
		{"list_employees", testutil.PlainUser, testutil.PlainPassword, http.StatusForbidden},
		{"get_employee", testutil.AdminUser, testutil.AdminPassword, http.StatusOK},
		{"get_employee", testutil.HrUser, testutil.HrPassword, http.StatusOK},
		{"get_employee", testutil.PlainUser, testutil.PlainPassword, http.StatusOK},
		{"create_employee", testutil.AdminUser, testutil.AdminPassword, http.StatusForbidden},
		{"create_employee", testutil.HrUser, testutil.HrPassword, http.StatusCreated},
		{"create_employee", testutil.PlainUser, testutil.PlainPassword, http.StatusForbidden},
		{"update_employee", testutil.AdminUser, testutil.AdminPassword, http.StatusForbidden},
		{"update_employee", testutil.HrUser, testutil.HrPassword, http.StatusOK},
		{"update_employee", testutil.PlainUser, testutil.PlainPassword, http.StatusForbidden},
		{"delete_employee", testutil.AdminUser, testutil.AdminPassword, http.StatusForbidden},
		{"delete_employee", testutil.HrUser, testutil.HrPassword, http.StatusOK},
		{"delete_employee", testutil.PlainUser, testutil.PlainPassword, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.route+"/"+tt.user, func(t *testing.T) {
			c := calls[tt.route]
			handler := newAuthedHandler(t)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
			testutil.SetBasicAuth(req, tt.user, tt.pass)
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouteTableCoversEveryRoute(t *testing.T) {
	router := rest.NewRouter(testutil.SeedEmployees(t), validation.New(), nil)

	want := map[string]string{
		"current_user":    "GET /api/employee/current",
		"list_employees":  "GET /api/employee",
		"get_employee":    "GET /api/employee/{id}",
		"create_employee": "POST /api/employee",
		"update_employee": "PUT /api/employee/{id}",
		"delete_employee": "DELETE /api/employee/{id}",
	}

	routes := router.Routes()
	if len(routes) != len(want) {
		t.Fatalf("expected %d routes, got %d", len(want), len(routes))
	}
	for _, rt := range routes {
		if got := rt.Method + " " + rt.Pattern; got != want[rt.Name] {
			t.Errorf("route %s: expected %q, got %q", rt.Name, want[rt.Name], got)
		}
		if len(rt.Roles) == 0 {
			t.Errorf("route %s has no roles and would deny everyone", rt.Name)
		}
	}
}

func TestRouterUnauthenticatedGetsChallenge(t *testing.T) {
	handler := newAuthedHandler(t)

	for _, path := range []string{"/api/employee", "/api/employee/current", "/api/employee/1"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") != "Basic" {
			t.Errorf("%s: expected Basic challenge, got %q", path, rec.Header().Get("WWW-Authenticate"))
		}
	}
}

func TestRouterHealthEndpointsArePublic(t *testing.T) {
	handler := newAuthedHandler(t)

	tests := []struct {
		path   string
		status string
	}{
		{"/healthz", "ok"},
		{"/readyz", "ready"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.path, rec.Code)
		}
		var body map[string]string
		json.NewDecoder(rec.Body).Decode(&body)
		if body["status"] != tt.status {
			t.Errorf("%s: expected status %q, got %q", tt.path, tt.status, body["status"])
		}
	}
}

func TestRouterWithoutAuthMiddlewareFailsClosed(t *testing.T) {
	router := rest.NewRouter(testutil.SeedEmployees(t), validation.New(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/employee", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 when no principal is present, got %d", rec.Code)
	}

	var errResp domain.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&errResp)
	if errResp.Error != "unauthorized" {
		t.Errorf("expected error 'unauthorized', got %q", errResp.Error)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	handler := newAuthedHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/employee/1", nil)
	testutil.SetBasicAuth(req, testutil.HrUser, testutil.HrPassword)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
