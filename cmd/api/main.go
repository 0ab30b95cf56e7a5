package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jadarat-dashboard/internal/cache"
	"github.com/justsurfingit/jadarat-dashboard/internal/charts"
	"github.com/justsurfingit/jadarat-dashboard/internal/config"
	"github.com/justsurfingit/jadarat-dashboard/internal/database"
	"github.com/justsurfingit/jadarat-dashboard/internal/dataset"
	"github.com/justsurfingit/jadarat-dashboard/internal/handlers"
	"github.com/justsurfingit/jadarat-dashboard/internal/logger"
	"github.com/justsurfingit/jadarat-dashboard/internal/services"
	"github.com/justsurfingit/jadarat-dashboard/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}
	zl, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}
	defer zl.Sync()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 2. Dataset source. A broken source is fatal at startup.
	var source dataset.Source
	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := database.Connect(cfg.DatabaseDSN, zl)
		if err != nil {
			zl.Fatal("failed to connect to database", zap.Error(err))
		}
		source = dataset.NewPostgresSource(db)
	default:
		source = dataset.NewCSVSource(cfg.DataPath)
	}

	store := dataset.NewStore(source, zl, cfg.ReloadOnRequest)
	if _, err := store.Reload(ctx); err != nil {
		zl.Fatal("data load error", zap.String("source", source.Name()), zap.Error(err))
	}

	// 3. Chart cache
	cacheOpts := cache.DefaultOptions()
	cacheOpts.DefaultTTL = cfg.CacheTTL
	var chartCache cache.Cache
	if cfg.RedisAddr != "" {
		cacheOpts.RedisURL = cfg.RedisAddr
		cacheOpts.RedisPassword = cfg.RedisPassword
		cacheOpts.RedisDB = cfg.RedisDB
		rc := cache.NewRedis(cacheOpts)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			zl.Warn("redis unavailable, falling back to in-process chart cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = rc.Close()
			chartCache = cache.NewMemory(cacheOpts)
		} else {
			zl.Info("chart cache: redis", zap.String("addr", cfg.RedisAddr))
			chartCache = rc
		}
		cancel()
	} else {
		chartCache = cache.NewMemory(cacheOpts)
	}
	defer chartCache.Close()

	// 4. Services
	commentary, err := services.NewCommentaryService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout, zl)
	if err != nil {
		zl.Warn("AI insight disabled", zap.Error(err))
		commentary = &services.CommentaryService{Timeout: cfg.LLMTimeout, Logger: zl}
	}
	dashboardService := services.NewDashboardService(store)

	// 5. Handlers and router
	tmpl, err := web.Templates()
	if err != nil {
		zl.Fatal("failed to parse templates", zap.Error(err))
	}
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, commentary, charts.NewRenderer(), chartCache, cfg.CacheTTL, zl)
	r := handlers.NewRouter(dashboardHandler, tmpl, cfg.CORSAllowOrigins, zl)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("🚀 server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
