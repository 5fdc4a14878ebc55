package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"employeeapi/internal/api"
	"employeeapi/internal/domain"
	"employeeapi/internal/platform/validation"
)

func (r *Router) currentUser(w http.ResponseWriter, req *http.Request) {
	principal, ok := api.PrincipalFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", domain.ErrUnauthorized.Error())
		return
	}
	respond(w, http.StatusOK, domain.CurrentUser{
		Username: principal.Username,
		IsAdmin:  principal.IsAdmin(),
	})
}

func (r *Router) listEmployees(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, r.employees.List())
}

func (r *Router) getEmployee(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	e, err := r.employees.Get(id)
	if err != nil {
		r.storeError(w, req, "get", err)
		return
	}
	respond(w, http.StatusOK, e)
}

func (r *Router) createEmployee(w http.ResponseWriter, req *http.Request) {
	var e domain.Employee
	if !r.decode(w, req, &e) {
		return
	}
	created, err := r.employees.Create(e)
	if err != nil {
		r.recordMutation(req, "create", "error")
		r.storeError(w, req, "create", err)
		return
	}
	r.recordMutation(req, "create", "ok")
	slog.Info("employee created",
		"id", created.ID,
		"request_id", api.RequestIDFromContext(req.Context()),
	)
	w.Header().Set("Location", "/api/employee/"+strconv.Itoa(created.ID))
	respond(w, http.StatusCreated, created)
}

func (r *Router) updateEmployee(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	var e domain.Employee
	if !r.decode(w, req, &e) {
		return
	}
	if e.ID != 0 && e.ID != id {
		writeError(w, http.StatusBadRequest, "invalid_input",
			fmt.Sprintf("body id %d does not match path id %d", e.ID, id))
		return
	}
	updated, err := r.employees.Update(id, e)
	if err != nil {
		r.recordMutation(req, "update", "error")
		r.storeError(w, req, "update", err)
		return
	}
	r.recordMutation(req, "update", "ok")
	respond(w, http.StatusOK, updated)
}

func (r *Router) deleteEmployee(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	if err := r.employees.Delete(id); err != nil {
		r.recordMutation(req, "delete", "error")
		r.storeError(w, req, "delete", err)
		return
	}
	r.recordMutation(req, "delete", "ok")
	slog.Info("employee deleted",
		"id", id,
		"request_id", api.RequestIDFromContext(req.Context()),
	)
	w.WriteHeader(http.StatusOK)
}

// decode reads a JSON employee from the request body. It writes the error
// response itself and reports whether the handler should continue.
func (r *Router) decode(w http.ResponseWriter, req *http.Request, dst *domain.Employee) bool {
	err := r.validate.DecodeJSON(req.Body, dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
	case validation.FieldErrors(err) != nil:
		writeError(w, http.StatusBadRequest, "invalid_input",
			"invalid fields: "+strings.Join(validation.FieldErrors(err), ", "))
	default:
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	}
	return false
}

// storeError maps store failures onto HTTP responses. Anything unexpected is
// reported as a 500 carrying the failure detail.
func (r *Router) storeError(w http.ResponseWriter, req *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		slog.Error("employee store failure",
			"op", op,
			"error", err,
			"request_id", api.RequestIDFromContext(req.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func (r *Router) recordMutation(req *http.Request, op, result string) {
	if r.metrics != nil {
		r.metrics.RecordEmployeeMutation(req.Context(), op, result)
	}
}

// pathID parses the {id} path segment. It writes a 400 and returns false when
// the segment is not an integer.
func pathID(w http.ResponseWriter, req *http.Request) (int, bool) {
	raw := req.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input",
			fmt.Sprintf("%s: employee id must be an integer, got %q", domain.ErrInvalidInput, raw))
		return 0, false
	}
	return id, true
}
