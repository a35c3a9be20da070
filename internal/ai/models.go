package ai

import (
	"context"
	"time"
)

// Analyzer answers a free-text question about a local video file. The call
// blocks for the full upload, remote processing and generation round trip.
type Analyzer interface {
	AskVideo(ctx context.Context, videoPath, question string) (string, error)
}

type Config struct {
	APIKey         string
	Model          string
	PollInterval   time.Duration
	ProcessTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Model:          "gemini-2.0-flash-exp",
		PollInterval:   2 * time.Second,
		ProcessTimeout: 2 * time.Minute,
	}
}
