package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"employeeapi/internal/api"
	"employeeapi/internal/api/adapter/inmem"
	"employeeapi/internal/platform/seed"
)

// Reference credentials from the built-in seed.
const (
	AdminUser     = "admin"
	AdminPassword = "Admin@123"
	HrUser        = "hr1"
	HrPassword    = "Hr1@123"
	PlainUser     = "user1"
	PlainPassword = "User1@123"
)

// BasicHeader returns an Authorization header value for username and password.
func BasicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// SetBasicAuth sets the Authorization header on req.
func SetBasicAuth(req *http.Request, username, password string) {
	req.Header.Set("Authorization", BasicHeader(username, password))
}

// SeedCredentials returns a credential store holding the built-in seed users.
func SeedCredentials(t *testing.T) *inmem.CredentialStore {
	t.Helper()
	return inmem.NewCredentialStore(seed.Default().Users)
}

// SeedEmployees returns an employee store holding the built-in seed records.
func SeedEmployees(t *testing.T) *inmem.EmployeeStore {
	t.Helper()
	return inmem.NewEmployeeStore(seed.Default().Employees)
}

// PrincipalEchoHandler returns an http.Handler that answers with the
// authenticated principal's username and roles, or 500 if there is none.
func PrincipalEchoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := api.PrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "no principal", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"username": p.Username,
			"roles":    p.Roles,
		})
	})
}
