package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tonipcv/user-provisioner/internal/api/metrics"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
	"github.com/tonipcv/user-provisioner/internal/core/service"
	"github.com/tonipcv/user-provisioner/internal/infrastructure/config"
	mongodb "github.com/tonipcv/user-provisioner/internal/infrastructure/db/mongo"
	redisdb "github.com/tonipcv/user-provisioner/internal/infrastructure/db/redis"
	"github.com/tonipcv/user-provisioner/internal/infrastructure/identity/gotrue"
	"github.com/tonipcv/user-provisioner/internal/pkg/pacing"
	"github.com/tonipcv/user-provisioner/pkg/logger"
)

// batchEntry is one line of the roster file: who to enroll.
type batchEntry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func main() {
	file := flag.String("file", "users.json", "path to the JSON roster of users to provision")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entries, err := readRoster(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("roster load failed")
	}
	if len(entries) == 0 {
		log.Info().Str("file", *file).Msg("roster is empty, nothing to do")
		return
	}

	_, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

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

	profileRepo := mongodb.NewProfileRepository(db)
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("profile indexes failed")
	}

	provisioner := service.NewProvisioningService(
		identityStore,
		profileRepo,
		redisdb.NewProvisionLock(redisClient, cfg.Provision.LockTTL),
		service.ProvisioningConfig{
			PageSize:           cfg.Identity.PageSize,
			VisibilityInterval: cfg.Provision.VisibilityInterval,
			VisibilityTimeout:  cfg.Provision.VisibilityTimeout,
		},
		log,
	)
	sequencer := service.NewSequencer(
		provisioner,
		pacing.NewFixedInterval(cfg.Provision.BatchInterval),
		log,
	)

	inputs := make([]ports.ProvisionInput, 0, len(entries))
	for _, e := range entries {
		inputs = append(inputs, service.DefaultInput(e.Name, e.Email))
	}

	log.Info().Int("users", len(inputs)).Str("file", *file).Msg("batch starting")
	results := sequencer.RunAll(ctx, inputs)

	succeeded := 0
	for _, res := range results {
		if res.Succeeded() {
			succeeded++
			metrics.BatchItemsTotal.WithLabelValues("success").Inc()
			log.Info().
				Str("email", res.Email).
				Str("action", string(res.Outcome.Action)).
				Msg("user provisioned")
			continue
		}
		metrics.BatchItemsTotal.WithLabelValues("failure").Inc()
		log.Error().
			Str("email", res.Email).
			Err(res.Err).
			Msg("user provisioning failed")
	}

	// Per-item failures are part of the report, not a process failure.
	log.Info().
		Int("total", len(results)).
		Int("succeeded", succeeded).
		Int("failed", len(results)-succeeded).
		Msg("batch finished")
}

func readRoster(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []batchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
