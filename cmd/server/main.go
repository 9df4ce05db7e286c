package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tonipcv/user-provisioner/internal/api"
	"github.com/tonipcv/user-provisioner/internal/core/service"
	"github.com/tonipcv/user-provisioner/internal/infrastructure/config"
	mongodb "github.com/tonipcv/user-provisioner/internal/infrastructure/db/mongo"
	redisdb "github.com/tonipcv/user-provisioner/internal/infrastructure/db/redis"
	"github.com/tonipcv/user-provisioner/internal/infrastructure/identity/gotrue"
	"github.com/tonipcv/user-provisioner/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional, real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- External stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	identityStore := gotrue.New(gotrue.Config{
		BaseURL:    cfg.Identity.BaseURL,
		ServiceKey: cfg.Identity.ServiceKey,
	})

	// --- Repositories ---
	profileRepo := mongodb.NewProfileRepository(db)
	operatorRepo := mongodb.NewOperatorRepository(db)
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("profile indexes failed")
	}
	if err := operatorRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("operator indexes failed")
	}

	// --- Services ---
	lock := redisdb.NewProvisionLock(redisClient, cfg.Provision.LockTTL)
	provisioner := service.NewProvisioningService(
		identityStore,
		profileRepo,
		lock,
		service.ProvisioningConfig{
			PageSize:           cfg.Identity.PageSize,
			VisibilityInterval: cfg.Provision.VisibilityInterval,
			VisibilityTimeout:  cfg.Provision.VisibilityTimeout,
		},
		log,
	)
	operators := service.NewOperatorService(operatorRepo, cfg.JWTSecret, 24*time.Hour, log)

	e := api.NewRouter(api.Dependencies{
		DB:          db,
		Redis:       redisClient,
		Identity:    identityStore,
		Provisioner: provisioner,
		Operators:   operators,
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
