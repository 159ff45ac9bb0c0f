package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	"github.com/BorisDmv/portfolio-api/internal/cache"
	"github.com/BorisDmv/portfolio-api/internal/config"
	"github.com/BorisDmv/portfolio-api/internal/db"
	"github.com/BorisDmv/portfolio-api/internal/handlers"
	"github.com/BorisDmv/portfolio-api/internal/memory"
	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	setupLogging(cfg)
	logs := log.WithFields(log.Fields{"package": "portfolio", "module": "main"})

	ctx := context.Background()

	var (
		repos  repository.Set
		schema repository.SchemaManager
	)
	if cfg.DatabaseURL != "" {
		store, err := db.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logs.WithError(err).Fatal("DB connect failed")
		}
		defer store.Close()
		repos, schema = store.Repositories(), store
	} else {
		logs.Warn("DATABASE_URL not set, content is kept in memory")
		store := memory.NewStore()
		repos, schema = store.Repositories(), store
	}

	// Create tables if not exist
	if err := schema.EnsureSchema(ctx); err != nil {
		logs.WithError(err).Fatal("Failed to create content tables")
	}

	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logs.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer func() { _ = rdb.Close() }()
			repos = cache.Wrap(repos, rdb, cfg.CacheTTL)
		}
	}

	if !cfg.AuthEnabled() {
		logs.Warn("No admin credentials configured, write endpoints are open")
	}

	router := handlers.NewRouter(handlers.Deps{
		Config:   &cfg,
		Repos:    repos,
		Schema:   schema,
		Validate: models.NewValidator(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logs.WithField("port", cfg.Port).Info("Listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.WithError(err).Fatal("Server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.WithError(err).Error("Shutdown error")
	}
}

func setupLogging(cfg config.Config) {
	if cfg.LogFormat == "json" {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(text.New(os.Stderr))
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("Unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
