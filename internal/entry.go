// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/resumeforge/resumeforge/internal/agent"
	"github.com/resumeforge/resumeforge/internal/api"
	"github.com/resumeforge/resumeforge/internal/compiler"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/session"
	"github.com/resumeforge/resumeforge/internal/sse"
	"github.com/resumeforge/resumeforge/internal/storage"
	"github.com/resumeforge/resumeforge/internal/template"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("artifacts_path", cfg.Artifacts.Path),
		slog.String("compiler_url", cfg.Compiler.URL),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize resume store.
	db, err := resume.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init resume store: %w", err)
	}
	defer db.Close()

	// Initialize artifact storage.
	artifacts, err := storage.NewFS(cfg.Artifacts.Path)
	if err != nil {
		return fmt.Errorf("init artifact storage: %w", err)
	}

	// Template registry.
	templates, err := template.NewRegistry(cfg.Templates.Path, logger)
	if err != nil {
		return fmt.Errorf("init templates: %w", err)
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Language-model collaborator and orchestrator.
	llm := app.llm
	if llm == nil {
		llm, err = agent.NewOpenAILLM(agent.LLMSettings{
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			return fmt.Errorf("init llm client: %w", err)
		}
	}
	orch := agent.New(llm, logger)
	sessions := session.NewManager(orch)

	// Compile relay.
	comp := compiler.NewClient(cfg.Compiler.URL, time.Duration(cfg.Compiler.TimeoutSeconds)*time.Second)

	// Build API handler and router.
	h := api.NewHandler(db, sessions, comp, artifacts, templates, broker, logger)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, cfg.Auth.User, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Cancelled once shutdown begins so background watchers exit.
	watchCtx, stopWatchers := context.WithCancel(gCtx)
	defer stopWatchers()

	// Watch the template directory for changes.
	g.Go(func() error {
		if err := templates.Watch(watchCtx, func() {
			broker.Publish(sse.Event{Type: "templates.reloaded", Data: map[string]any{
				"styles": templates.Styles(),
			}})
		}); err != nil {
			logger.Warn("template watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		stopWatchers()

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
