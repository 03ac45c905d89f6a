package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbsqlite "dialoq/internal/adapters/db/sqlite"
	"dialoq/internal/adapters/seedfile"
	translatefactory "dialoq/internal/adapters/translate/factory"
	translatereg "dialoq/internal/adapters/translate/registry"
	"dialoq/internal/api"
	"dialoq/internal/config"
	"dialoq/internal/usecase/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	db, err := dbsqlite.Init(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer db.Close()
	dialogRepo := dbsqlite.NewDialogRepo(db)
	cacheRepo := dbsqlite.NewCacheRepo(db)

	// Provider registry; the default engine is explicit configuration.
	providers := translatereg.New()
	provider, ok := translatefactory.FromType(cfg.Provider, cfg.ProviderAPIKey, cfg.ProviderBaseURL)
	if !ok {
		logger.Error("unsupported translation provider", "provider", cfg.Provider)
		os.Exit(1)
	}
	providers.Register(cfg.Provider, provider)

	wf := workflow.New(workflow.Deps{
		Dialogs:  dialogRepo,
		Provider: providers.MustGet(cfg.Provider),
		Cache:    cacheRepo,
	}, workflow.Config{
		DefaultActor: cfg.DefaultActor,
		ProviderName: cfg.Provider,
	})

	apiCfg := api.DefaultServerConfig()
	apiCfg.TranslateFrom = cfg.TranslateFrom
	apiCfg.TranslateTo = cfg.TranslateTo
	handler := api.Handler(wf, seedfile.New(cfg.SeedFile), apiCfg, logger)

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting dialoq", "listen", cfg.Listen, "db", cfg.DBPath, "provider", cfg.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
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
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
