package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employeeapi/internal/api/adapter/inmem"
	"employeeapi/internal/api/adapter/rest"
	"employeeapi/internal/api/middleware"
	"employeeapi/internal/platform/config"
	"employeeapi/internal/platform/seed"
	"employeeapi/internal/platform/server"
	"employeeapi/internal/platform/telemetry"
	"employeeapi/internal/platform/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Logging
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	shutdown, err := telemetry.Setup(context.Background(), "employeeapi")
	if err != nil {
		slog.Error("telemetry setup failed", "error", err)
		os.Exit(1)
	}

	// Seed data
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		slog.Error("seed load failed", "error", err, "seed_file", cfg.SeedFile)
		os.Exit(1)
	}
	credentials := inmem.NewCredentialStore(data.Users)
	employees := inmem.NewEmployeeStore(data.Employees)

	// Rate limiter
	rl := inmem.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst, time.Now)
	go rl.RunSweeper(ctx, 5*time.Minute)

	// Metrics
	metrics, err := telemetry.NewAPIMetrics()
	if err != nil {
		slog.Error("metrics initialization failed", "error", err)
		os.Exit(1)
	}

	router := rest.NewRouter(employees, validation.New(), metrics)

	// Public paths (no auth required)
	publicPaths := []string{"/healthz", "/readyz", "/metrics"}

	// Assemble middleware chain
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.MetricsHandler())
	mux.Handle("/", middleware.Chain(
		router,
		middleware.Metrics(metrics),
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.Recovery,
		middleware.MaxBodySize(cfg.MaxBodyBytes),
		middleware.RateLimit(rl, metrics),
		middleware.BasicAuth(credentials, cfg.Realm, publicPaths, metrics),
	))

	srv := server.New(cfg.Addr, mux, server.WithShutdownTimeout(cfg.ShutdownTimeout))

	slog.Info("employeeapi starting",
		"addr", cfg.Addr,
		"users", credentials.Len(),
		"employees", len(data.Employees),
		"realm", cfg.Realm,
		"seed_file", cfg.SeedFile,
	)

	if err := srv.Run(ctx); err != nil {
		slog.Error("server error", "error", err)
	}

	if err := shutdown(context.Background()); err != nil {
		slog.Error("telemetry shutdown error", "error", err)
	}
}
