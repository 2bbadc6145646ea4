// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/event-planner/cliparse"
	"github.com/danielhkuo/event-planner/db"
	"github.com/danielhkuo/event-planner/logging"
	"github.com/danielhkuo/event-planner/middleware"
	"github.com/danielhkuo/event-planner/router"
	"github.com/danielhkuo/event-planner/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database and create tables
	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Database schema ready", "type", store.Dialect())

	if cfg.Seed {
		data, err := store.Seed(ctx)
		if err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Sample data loaded",
			"username", data.Planner.Username,
			"password", db.SeedPassword,
			"event_id", data.Event.ID,
			"guest_id", data.Guest.ID,
			"attendance_id", data.Attendance.ID)
		return
	}

	// Sessions live in Redis when configured, otherwise in process memory
	var sessionStore session.Store
	if cfg.RedisAddr != "" {
		client, err := session.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Error("redis connection failed", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		defer client.Close()
		sessionStore = session.NewRedisStore(client)
		slog.Info("Using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessionStore = session.NewMemoryStore()
		slog.Info("Using in-memory session store")
	}
	sessions := session.NewManager(sessionStore, cfg.SessionTTL, cfg.CookieSecure)

	mux := router.NewRouter(store, sessions)

	server := http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigins)(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	slog.Info("Listening", "port", cfg.Port, "session_ttl", sessions.TTL())
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
