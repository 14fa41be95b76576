package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT       JWTConfig
	Scraper   ScraperConfig
	Reconcile ReconcileConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER,   default=expensetracker"`
	Lifetime time.Duration `env:"JWT_LIFETIME, default=336h"`
}

// ScraperConfig describes the synthetic identity Prometheus scrapes with.
// The rotated token is written to TokenFile for the scraper to read.
type ScraperConfig struct {
	Email       string        `env:"SCRAPER_EMAIL,        default=prometheus@expensetracker.local"`
	TokenFile   string        `env:"SCRAPER_TOKEN_FILE,   default=/var/run/expensetracker/prometheus-token"`
	RotateEvery time.Duration `env:"SCRAPER_ROTATE_EVERY, default=168h"`
}

type ReconcileConfig struct {
	Hour     int    `env:"RECONCILE_HOUR,     default=0"`
	Timezone string `env:"RECONCILE_TIMEZONE, default=UTC"`
	Workers  int    `env:"RECONCILE_WORKERS,  default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=expensetracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
