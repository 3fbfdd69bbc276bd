package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DataURL       string        `env:"DATA_URL"`
	DataFile      string        `env:"DATA_FILE"`
	SinkURL       string        `env:"SINK_URL"`
	SinkSecret    string        `env:"SINK_SECRET"`
	Port          string        `env:"PORT" envDefault:"8080"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	FetchRetries  int           `env:"FETCH_RETRIES" envDefault:"0"`
	RetryBase     time.Duration `env:"RETRY_BASE" envDefault:"100ms"`
	ViewCacheSize int           `env:"VIEW_CACHE_SIZE" envDefault:"256"`
	LogLevel      slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
}

// Location is where the bundle comes from: DATA_URL wins over DATA_FILE.
func (c Config) Location() string {
	if c.DataURL != "" {
		return c.DataURL
	}
	return c.DataFile
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Location() == "" {
		return Config{}, errors.New("one of DATA_URL or DATA_FILE is required")
	}
	if cfg.FetchRetries < 0 {
		return Config{}, fmt.Errorf("FETCH_RETRIES must be >= 0, got %d", cfg.FetchRetries)
	}
	return cfg, nil
}

// Load reads optional dotenv files into the environment, then parses it.
// Variables already set are not overridden; missing files are ignored.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}
