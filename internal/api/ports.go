package api

import (
	"context"
	"net/http"

	"employeeapi/internal/domain"
)

// CredentialStore is the read-only table of users the Basic auth filter checks against.
type CredentialStore interface {
	// Verify returns a new Principal for the first entry matching username and password.
	Verify(username, password string) (domain.Principal, bool)
}

// EmployeeStore holds employee records.
type EmployeeStore interface {
	List() []domain.Employee
	Get(id int) (domain.Employee, error)
	Create(e domain.Employee) (domain.Employee, error)
	Update(id int, e domain.Employee) (domain.Employee, error)
	Delete(id int) error
}

// RateLimiter decides whether a request identified by key should be allowed.
type RateLimiter interface {
	Allow(key string) RateLimitResult
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	RetryAfter int // seconds until next token available; 0 if allowed
}

// StatusWriter wraps http.ResponseWriter to capture the status code.
type StatusWriter struct {
	http.ResponseWriter
	Code int
}

func (sw *StatusWriter) WriteHeader(code int) {
	sw.Code = code
	sw.ResponseWriter.WriteHeader(code)
}

// Write records an implicit 200 when no status was set before the first write.
func (sw *StatusWriter) Write(b []byte) (int, error) {
	if sw.Code == 0 {
		sw.Code = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sw *StatusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// PrincipalFromContext extracts the authenticated principal from a request context.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// ContextWithPrincipal stores the authenticated principal in the context and
// reports its username to the sink installed by ContextWithUsernameSink, if any.
func ContextWithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	if sink, ok := ctx.Value(usernameSinkKey{}).(*string); ok {
		*sink = p.Username
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// ContextWithUsernameSink lets an outer handler learn who a request was
// authenticated as. sink must only be read after the inner handler returns.
func ContextWithUsernameSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, usernameSinkKey{}, sink)
}

type (
	principalKey    struct{}
	usernameSinkKey struct{}
)

// RequestIDFromContext extracts the request ID from the context.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ContextWithRequestID stores the request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type requestIDKey struct{}
