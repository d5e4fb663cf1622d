package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all client configuration, loaded from the environment
// (with an optional .env file for development).
type Config struct {
	// ServiceURL is the base URL of the interview service.
	ServiceURL string `env:"INTERVUE_SERVICE_URL" envDefault:"http://localhost:3000"`

	// RequestTimeout bounds every HTTP call to the service. Grading and
	// report generation run an LLM server-side, so the default is
	// generous.
	RequestTimeout time.Duration `env:"INTERVUE_REQUEST_TIMEOUT" envDefault:"60s"`

	// Voice is the TTS voice used for narration.
	Voice string `env:"INTERVUE_VOICE" envDefault:"alloy"`

	// AudioEnabled toggles narration and voice answers. When off, the
	// session is fully usable with typed answers only.
	AudioEnabled bool `env:"INTERVUE_AUDIO" envDefault:"true"`

	// PlayerCommand / RecorderCommand override autodetection of the
	// system audio tools, e.g. "ffplay -nodisp -autoexit".
	PlayerCommand   []string `env:"INTERVUE_PLAYER_CMD" envSeparator:" "`
	RecorderCommand []string `env:"INTERVUE_RECORDER_CMD" envSeparator:" "`

	// DBPath overrides the journal location. Empty means the XDG
	// default.
	DBPath string `env:"INTERVUE_DB"`
}

// Load reads .env if present and parses the environment. A missing
// .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("INTERVUE_SERVICE_URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("INTERVUE_REQUEST_TIMEOUT must be positive")
	}
	return nil
}
