package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything trellis reads from the environment. The
// backend host is configured externally; trellis never hardcodes it
// beyond the local development default.
type Config struct {
	Env string `env:"TRELLIS_ENV" env-default:"prod"`
	API API
	Log Log
}

// API configures the REST client.
type API struct {
	BaseURL string        `env:"TRELLIS_API_URL" env-default:"http://localhost:8080/api"`
	Timeout time.Duration `env:"TRELLIS_API_TIMEOUT" env-default:"10s"`
}

// Log configures the debug log. Stdout belongs to the TUI, so logs go
// to a file.
type Log struct {
	Level string `env:"TRELLIS_LOG_LEVEL" env-default:"info"`
	// File overrides the default log path under the user config dir.
	File string `env:"TRELLIS_LOG_FILE"`
}

// Read loads the configuration from the environment.
func Read() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
