package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Identity  IdentityConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Provision ProvisionConfig
}

// IdentityConfig points at the GoTrue admin API used as the identity store.
type IdentityConfig struct {
	BaseURL    string `env:"IDENTITY_URL,         default=http://localhost:9999"`
	ServiceKey string `env:"IDENTITY_SERVICE_KEY"`
	PageSize   int    `env:"IDENTITY_PAGE_SIZE,   default=1000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=provisioning"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ProvisionConfig tunes reconciliation and batch pacing policy.
type ProvisionConfig struct {
	VisibilityInterval time.Duration `env:"PROVISION_VISIBILITY_INTERVAL, default=250ms"`
	VisibilityTimeout  time.Duration `env:"PROVISION_VISIBILITY_TIMEOUT,  default=5s"`
	BatchInterval      time.Duration `env:"PROVISION_BATCH_INTERVAL,      default=1s"`
	LockTTL            time.Duration `env:"PROVISION_LOCK_TTL,            default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
