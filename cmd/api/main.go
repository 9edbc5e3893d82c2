// Package main is the entry point for the fleet management API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/fleetops/fms/backend/internal/auth"
	"github.com/fleetops/fms/backend/internal/config"
	"github.com/fleetops/fms/backend/internal/handler"
	"github.com/fleetops/fms/backend/internal/metrics"
	"github.com/fleetops/fms/backend/internal/middleware"
	"github.com/fleetops/fms/backend/internal/realtime"
	"github.com/fleetops/fms/backend/internal/repo"
	"github.com/fleetops/fms/backend/internal/service"
	"github.com/fleetops/fms/backend/migrations"
	"github.com/fleetops/fms/backend/spec"
)

// maxBodySize caps request bodies at 1 MiB. No API payload comes close.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a local-dev convenience; in production the variables come from
	// the environment and the file is simply absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Migrations -------------------------------------------------------
	// goose needs database/sql; the API itself uses the pgx pool below.
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Wiring -----------------------------------------------------------
	collector := metrics.NewCollector()
	hub := realtime.NewHub(logger, collector)

	tripRepo := repo.NewTripRepo(pool)
	truckRepo := repo.NewTruckRepo(pool)
	employeeRepo := repo.NewEmployeeRepo(pool)
	customerRepo := repo.NewCustomerRepo(pool)
	locationRepo := repo.NewLocationRepo(pool)
	tripLogRepo := repo.NewTripLogRepo(pool)
	analyticsRepo := repo.NewAnalyticsRepo(pool)

	server := handler.NewServer(
		service.NewTripService(tripRepo, truckRepo, tripLogRepo, auth.NewRoleProvider(), hub),
		service.NewTruckService(truckRepo),
		service.NewEmployeeService(employeeRepo),
		service.NewCustomerService(customerRepo),
		service.NewLocationService(locationRepo),
		service.NewAnalyticsService(analyticsRepo),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	// Unauthenticated surface: probes, metrics, API docs, and the websocket
	// channel (driver devices authenticate out of band today).
	r.Get("/healthz", handler.Health)
	r.Method(http.MethodGet, "/metrics", collector.Handler())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(spec.OpenAPI)
	})
	r.Get("/ws/trips/{id}", realtime.ServeWS(hub, logger))

	// Authenticated REST API.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))
		r.Use(middleware.NewAuthenticator([]byte(cfg.JWTSecret)))
		server.Register(r)
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout is generous because websocket connections share this
	// server; per-message write deadlines are enforced in the realtime
	// package instead.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending embedded migrations at startup.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	_, err = provider.Up(context.Background())
	return err
}
