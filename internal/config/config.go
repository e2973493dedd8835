package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/minibasket.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// RedisURL enables the live snapshot cache and action stream when set.
	RedisURL string `env:"REDIS_URL"`

	AutosaveDelay     time.Duration `env:"AUTOSAVE_DELAY" envDefault:"500ms"`
	RecomputeOnRemove bool          `env:"RECOMPUTE_ON_REMOVE" envDefault:"false"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	ScorerEmail        string `env:"SCORER_EMAIL" envDefault:"scorer@minibasket.local"`
	ScorerPasswordHash string `env:"SCORER_PASSWORD_HASH" envDefault:"$2a$10$trCdqP4npsbw0R1vQxVwXeT1HebzRmP01SXaNGPz1eSAZ7mpcL0Uu"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
