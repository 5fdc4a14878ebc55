// Package rest exposes the employee store over HTTP. Every route is declared
// once in the route table together with the roles allowed to call it.
package rest

import (
	"log/slog"
	"net/http"

	"employeeapi/internal/api"
	"employeeapi/internal/api/middleware"
	"employeeapi/internal/domain"
	"employeeapi/internal/platform/telemetry"
	"employeeapi/internal/platform/validation"
)

// Route binds a method and path pattern to a handler and the roles allowed to call it.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Roles   []domain.Role
	handler http.HandlerFunc
}

// Router serves the employee API.
type Router struct {
	mux       *http.ServeMux
	routes    []Route
	employees api.EmployeeStore
	validate  *validation.Validator
	metrics   *telemetry.APIMetrics
}

// NewRouter registers the route table on a fresh ServeMux.
// The metrics parameter is optional; pass nil to skip metric recording.
func NewRouter(employees api.EmployeeStore, v *validation.Validator, m *telemetry.APIMetrics) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		employees: employees,
		validate:  v,
		metrics:   m,
	}

	anyone := []domain.Role{domain.RoleAdmin, domain.RoleHr, domain.RoleUser}
	staff := []domain.Role{domain.RoleAdmin, domain.RoleHr}
	hr := []domain.Role{domain.RoleHr}

	r.routes = []Route{
		{Name: "current_user", Method: http.MethodGet, Pattern: "/api/employee/current", Roles: anyone, handler: r.currentUser},
		{Name: "list_employees", Method: http.MethodGet, Pattern: "/api/employee", Roles: staff, handler: r.listEmployees},
		{Name: "get_employee", Method: http.MethodGet, Pattern: "/api/employee/{id}", Roles: anyone, handler: r.getEmployee},
		{Name: "create_employee", Method: http.MethodPost, Pattern: "/api/employee", Roles: hr, handler: r.createEmployee},
		{Name: "update_employee", Method: http.MethodPut, Pattern: "/api/employee/{id}", Roles: hr, handler: r.updateEmployee},
		{Name: "delete_employee", Method: http.MethodDelete, Pattern: "/api/employee/{id}", Roles: hr, handler: r.deleteEmployee},
	}

	r.mux.HandleFunc("GET /healthz", r.healthz)
	r.mux.HandleFunc("GET /readyz", r.readyz)

	for _, rt := range r.routes {
		r.mux.Handle(rt.Method+" "+rt.Pattern, middleware.RequireRoles(rt.Name, rt.Roles, m)(rt.handler))
	}

	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := writeJSON(w, map[string]string{"status": "ok"}); err != nil {
		slog.Error("encoding healthz response", "error", err)
	}
}

func (r *Router) readyz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := writeJSON(w, map[string]string{"status": "ready"}); err != nil {
		slog.Error("encoding readyz response", "error", err)
	}
}
