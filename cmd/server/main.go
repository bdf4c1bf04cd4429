package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/events"
	"github.com/p-n-ai/word-forge/internal/httpapi"
	"github.com/p-n-ai/word-forge/internal/learner"
	"github.com/p-n-ai/word-forge/internal/platform/cache"
	"github.com/p-n-ai/word-forge/internal/platform/config"
	"github.com/p-n-ai/word-forge/internal/platform/database"
	"github.com/p-n-ai/word-forge/internal/progress"
	"github.com/p-n-ai/word-forge/internal/teacher"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	c, err := curriculum.Load(cfg.CurriculumPath)
	if err != nil {
		slog.Error("failed to load curriculum", "path", cfg.CurriculumPath, "error", err)
		os.Exit(1)
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer b.close()

	api := httpapi.Config{
		Engine: learner.NewEngine(learner.EngineConfig{
			Curriculum:      c,
			Store:           b.store,
			Events:          b.events,
			RecallQuestions: cfg.RecallQuestions,
		}),
		Ready: b.ready,
	}
	if cfg.Teacher.Enabled {
		api.Gate, err = teacher.NewGate(cfg.Teacher.Password, cfg.Teacher.PasswordHash)
		if err != nil {
			slog.Error("failed to set up teacher gate", "error", err)
			os.Exit(1)
		}
		api.Materials, err = teacher.NewMaterials(c, nil)
		if err != nil {
			slog.Error("failed to set up teacher materials", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpapi.New(api).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.Store.Backend, "teacher", cfg.Teacher.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newLogger builds the process logger from config. Validate has already
// checked the level and format.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// backends are the progress store and event log selected by config.
type backends struct {
	store   progress.Store
	events  events.Logger
	ready   []httpapi.ReadyCheck
	closers []func()
}

func (b *backends) close() {
	for _, c := range b.closers {
		c()
	}
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		c, err := cache.New(ctx, cfg.Cache.URL, cfg.Cache.KeyPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("progress store: redis", "prefix", cfg.Cache.KeyPrefix)
		return &backends{
			store:   progress.NewRedisStore(c),
			events:  events.NopLogger{},
			ready:   []httpapi.ReadyCheck{c.HealthCheck},
			closers: []func(){func() { c.Close() }},
		}, nil

	case config.StorePostgres:
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		store, err := progress.NewPostgresStore(db.Pool)
		if err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("progress store: postgres")
		return &backends{
			store:   store,
			events:  events.NewPostgresLogger(db.Pool),
			ready:   []httpapi.ReadyCheck{db.HealthCheck},
			closers: []func(){db.Close},
		}, nil
	}

	slog.Info("progress store: memory")
	return &backends{
		store:  progress.NewMemoryStore(),
		events: events.NopLogger{},
	}, nil
}
