// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// companiond is the backend for the pocket companion device: it accepts
// text and image submissions, keeps a per-device memory log, and pushes
// replies and scheduled pings to subscribed devices over websockets.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/companion-go/internal/config"
	"github.com/olegiv/companion-go/internal/handler"
	"github.com/olegiv/companion-go/internal/hub"
	"github.com/olegiv/companion-go/internal/memory"
	"github.com/olegiv/companion-go/internal/middleware"
	"github.com/olegiv/companion-go/internal/notify"
	"github.com/olegiv/companion-go/internal/responder"
	"github.com/olegiv/companion-go/internal/scheduler"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (ignore errors - file is optional)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	store := memory.NewStore()
	connHub := hub.New(logger)
	gateway := notify.NewGateway(connHub, store, logger)

	var rsp responder.Responder = responder.NewStatic()
	if cfg.UseOpenAI() {
		rsp = responder.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
		slog.Info("responder configured", "backend", "openai", "model", cfg.OpenAIModel)
	} else {
		slog.Info("responder configured", "backend", "static")
	}

	sched, err := scheduler.New(gateway, store, cfg.ScheduleDeviceIDs(), cfg.Timezone, logger)
	if err != nil {
		return err
	}

	h := handler.New(cfg, store, connHub, rsp, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)

	// The subscribe socket is long-lived and hijacks the connection, so
	// it stays outside the timeout and rate-limit stack.
	r.Get("/ws/subscribe", h.Subscribe)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Post("/api/message", h.Message)
		r.Post("/api/analyze", h.Analyze)
		r.Get("/api/memory", h.Memory)
		r.Get("/api/checklist", h.Checklist)
		r.Put("/api/checklist", h.UpdateChecklist)
	})

	if err := sched.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"devices", cfg.ScheduleDeviceIDs(),
			"timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	sched.Stop()
	connHub.CloseAll()

	slog.Info("shutdown complete")
	return nil
}
