// Package main is the entry point for the HR operations API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/hr-ops/internal/calendar"
	"github.com/pkordes/hr-ops/internal/config"
	"github.com/pkordes/hr-ops/internal/events"
	"github.com/pkordes/hr-ops/internal/handler"
	"github.com/pkordes/hr-ops/internal/maintenance"
	"github.com/pkordes/hr-ops/internal/repo"
	"github.com/pkordes/hr-ops/internal/repo/gormrepo"
	"github.com/pkordes/hr-ops/internal/service"
	"github.com/pkordes/hr-ops/migrations"
)

// shutdownGrace is how long in-flight requests get to finish after a signal.
const shutdownGrace = 15 * time.Second

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
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

	// --- Database ---------------------------------------------------------
	store, closeStore, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Calendar ---------------------------------------------------------
	cal := calendar.Default()
	if cfg.HolidaysDir != "" {
		cal, err = calendar.LoadDir(cfg.HolidaysDir, cal)
		if err != nil {
			slog.Error("failed to load production calendars", "dir", cfg.HolidaysDir, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("holiday calendar ready", "years", cal.Years())

	// --- Services ---------------------------------------------------------
	broker := events.NewBroker(logger)
	srv := handler.NewServer(handler.Services{
		Trips:         service.NewTripService(store, logger),
		Vacations:     service.NewVacationService(store, logger),
		Employees:     service.NewEmployeeService(store, logger),
		Organizations: service.NewOrganizationService(store),
		Maintenance:   service.NewMaintenanceService(store, maintenance.NewProjector(cal), cfg.ProjectionYears, logger),
		Signatures:    service.NewSignatureService(store, logger, nil),
		Verification:  service.NewVerificationService(store, logger, nil),
		Records:       service.NewRecordsService(store, logger, nil),
		Events:        broker,
		Calendar:      cal,
	}, logger)

	// --- Router -----------------------------------------------------------
	router := handler.NewRouter(srv, handler.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// The event stream lifts its own write deadline.
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// Open event streams would otherwise hold Shutdown until the grace expires.
	httpServer.RegisterOnShutdown(broker.Close)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpServer.Addr, "driver", cfg.DatabaseDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore connects the configured backend and returns the Store with a
// func that releases its connections.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.Store, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := gormrepo.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite handle: %w", err)
		}
		slog.Info("database connection established", "driver", cfg.DatabaseDriver)
		return gormrepo.New(db), func() { sqlDB.Close() }, nil

	default:
		// pgxpool.New does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect: %w", err)
		}
		slog.Info("database connection established", "driver", cfg.DatabaseDriver)

		if cfg.MigrateOnStart {
			sqlDB := stdlib.OpenDBFromPool(pool)
			err := migrations.Up(ctx, sqlDB, logger)
			sqlDB.Close()
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return repo.NewStore(pool), pool.Close, nil
	}
}
