package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ShutdownFunc releases telemetry resources.
type ShutdownFunc func(ctx context.Context) error

// Setup initializes OpenTelemetry with a Prometheus exporter.
// Returns a shutdown function that must be called on exit.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter for %s: %w", serviceName, err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

// MetricsHandler returns an http.Handler that serves Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// APIMetrics holds all OTel instruments for the employee API.
type APIMetrics struct {
	httpRequestsTotal       otelmetric.Int64Counter
	httpRequestDuration     otelmetric.Float64Histogram
	authAttemptsTotal       otelmetric.Int64Counter
	authzDecisionsTotal     otelmetric.Int64Counter
	rateLimitDecisionsTotal otelmetric.Int64Counter
	employeeMutationsTotal  otelmetric.Int64Counter
}

// NewAPIMetrics creates and registers all API metrics.
func NewAPIMetrics() (*APIMetrics, error) {
	meter := otel.Meter("employeeapi")
	m := &APIMetrics{}
	var err error

	latencyBuckets := otelmetric.WithExplicitBucketBoundaries(
		0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0,
	)

	if m.httpRequestsTotal, err = meter.Int64Counter("api_http_requests_total",
		otelmetric.WithDescription("Total HTTP requests")); err != nil {
		return nil, fmt.Errorf("creating http_requests_total: %w", err)
	}
	if m.httpRequestDuration, err = meter.Float64Histogram("api_http_request_duration_seconds",
		otelmetric.WithDescription("HTTP request duration"), latencyBuckets); err != nil {
		return nil, fmt.Errorf("creating http_request_duration: %w", err)
	}
	if m.authAttemptsTotal, err = meter.Int64Counter("api_auth_attempts_total",
		otelmetric.WithDescription("Basic authentication attempts by outcome")); err != nil {
		return nil, fmt.Errorf("creating auth_attempts_total: %w", err)
	}
	if m.authzDecisionsTotal, err = meter.Int64Counter("api_authz_decisions_total",
		otelmetric.WithDescription("Role checks by route and outcome")); err != nil {
		return nil, fmt.Errorf("creating authz_decisions_total: %w", err)
	}
	if m.rateLimitDecisionsTotal, err = meter.Int64Counter("api_ratelimit_decisions_total",
		otelmetric.WithDescription("Total rate limit decisions")); err != nil {
		return nil, fmt.Errorf("creating ratelimit_decisions_total: %w", err)
	}
	if m.employeeMutationsTotal, err = meter.Int64Counter("api_employee_mutations_total",
		otelmetric.WithDescription("Employee create/update/delete operations")); err != nil {
		return nil, fmt.Errorf("creating employee_mutations_total: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request metric.
func (m *APIMetrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, durationSec float64) {
	attrs := otelmetric.WithAttributes(
		methodAttr(method),
		pathAttr(path),
		statusAttr(status),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, durationSec, attrs)
}

// RecordAuthAttempt records the outcome of a Basic authentication attempt.
// reason is empty on success.
func (m *APIMetrics) RecordAuthAttempt(ctx context.Context, result, reason string) {
	m.authAttemptsTotal.Add(ctx, 1, otelmetric.WithAttributes(
		resultAttr(result),
		reasonAttr(reason),
	))
}

// RecordAuthzDecision records a role check made for a route.
func (m *APIMetrics) RecordAuthzDecision(ctx context.Context, route, result string) {
	m.authzDecisionsTotal.Add(ctx, 1, otelmetric.WithAttributes(
		routeAttr(route),
		resultAttr(result),
	))
}

// RecordRateLimitDecision records a rate limit decision.
func (m *APIMetrics) RecordRateLimitDecision(ctx context.Context, layer, result string) {
	m.rateLimitDecisionsTotal.Add(ctx, 1, otelmetric.WithAttributes(
		layerAttr(layer),
		resultAttr(result),
	))
}

// RecordEmployeeMutation records a create, update or delete against the employee store.
func (m *APIMetrics) RecordEmployeeMutation(ctx context.Context, op, result string) {
	m.employeeMutationsTotal.Add(ctx, 1, otelmetric.WithAttributes(
		opAttr(op),
		resultAttr(result),
	))
}
