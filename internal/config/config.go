package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const cloudSizeLimit = 50 * 1024 * 1024

type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	DataDir string `env:"DATA_DIR" envDefault:"./data"`
	DBPath  string `env:"DB_PATH" envDefault:"./theplug.db"`

	// GoogleAPIKey empty means chat analysis stays disabled.
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-exp"`

	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"209715200"`
	MaxVideoSize  int64 `env:"MAX_VIDEO_SIZE" envDefault:"209715200"`

	// CloudMode switches the downloader to a single conservative strategy
	// and caps downloads at 50MB.
	CloudMode bool `env:"CLOUD_MODE" envDefault:"false"`

	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	ProcessTimeout time.Duration `env:"PROCESS_TIMEOUT" envDefault:"2m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.CloudMode && cfg.MaxVideoSize > cloudSizeLimit {
		cfg.MaxVideoSize = cloudSizeLimit
	}
	return cfg, nil
}
