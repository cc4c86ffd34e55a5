package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	// DatabaseURL es opcional: si viene, el catálogo inicial se lee de PostgreSQL.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	SeedDelay  time.Duration `envconfig:"SEED_DELAY" default:"2s"`
	IDStrategy string        `envconfig:"ID_STRATEGY" default:"uuid"`
	LogFormat  string        `envconfig:"LOG_FORMAT" default:"text"`

	RateLimit       int           `envconfig:"RATE_LIMIT" default:"120"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load lee variables de entorno y valida lo mínimo indispensable.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// Normalizamos por si alguien manda ":8080"
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.IDStrategy = strings.ToLower(strings.TrimSpace(cfg.IDStrategy))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	switch cfg.IDStrategy {
	case "uuid", "sequence":
	default:
		return Config{}, fmt.Errorf("invalid ID_STRATEGY %q: want uuid or sequence", cfg.IDStrategy)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	if cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT %d: must be positive", cfg.RateLimit)
	}
	if cfg.SeedDelay < 0 {
		return Config{}, fmt.Errorf("invalid SEED_DELAY %s: must not be negative", cfg.SeedDelay)
	}

	return cfg, nil
}
