package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rollhouse/salesdash/internal/api"
	"github.com/rollhouse/salesdash/internal/cache"
	"github.com/rollhouse/salesdash/internal/config"
	"github.com/rollhouse/salesdash/internal/service"
	"github.com/rollhouse/salesdash/internal/snapshot"
	"github.com/rollhouse/salesdash/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.Server.Mode)
	logger.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// One-shot snapshot load; a failure degrades to empty data and an
	// unhealthy /health rather than a crash.
	source, err := newSource(cfg.Snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize snapshot source")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 60*time.Second)
	store := snapshot.Load(loadCtx, source)
	loadCancel()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, running without memoization")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	dashboardService := service.NewDashboardService(store, dashboardCache)

	router := api.NewRouter(dashboardService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}

func newSource(cfg config.SnapshotConfig) (snapshot.Source, error) {
	switch cfg.Source {
	case "local", "":
		return snapshot.NewDirSource(cfg.Dir)
	case "s3":
		return snapshot.NewS3Source(cfg)
	case "drive":
		return snapshot.NewDriveSource(context.Background(), cfg.DriveCredentialsJSON, cfg.DriveFolderPath)
	default:
		return nil, fmt.Errorf("unknown snapshot source: %s", cfg.Source)
	}
}
