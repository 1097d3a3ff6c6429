package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/scale-advisor/scale-advisor-backend/config"
	"github.com/scale-advisor/scale-advisor-backend/internal/auth"
	"github.com/scale-advisor/scale-advisor-backend/internal/bootstrap"
	"github.com/scale-advisor/scale-advisor-backend/internal/cache"
	"github.com/scale-advisor/scale-advisor-backend/internal/db"
	"github.com/scale-advisor/scale-advisor-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	database, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	// Redis is optional: without it the estimator just skips live rates.
	rdb, err := cache.Open(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		if cfg.App.Environment == "production" {
			logger.Fatal("initialize firebase", zap.Error(err))
		}
		logger.Warn("firebase disabled, using development auth", zap.Error(err))
		authClient = nil
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "scale-advisor-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		DB:             database.Pool,
		Redis:          rdb,
		AuthClient:     authClient,
		Log:            logger,
	})

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
