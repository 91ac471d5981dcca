// ABOUTME: Environment-driven configuration for the CRM client
// ABOUTME: Loads an optional .env file, then the process environment
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// APIBaseURL includes the API prefix, e.g. http://localhost:5000/api.
	APIBaseURL     string        `envconfig:"CRM_API_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"CRM_REQUEST_TIMEOUT" default:"15s"`

	// Token and Username override the saved session when set.
	Token    string `envconfig:"CRM_TOKEN"`
	Username string `envconfig:"CRM_USERNAME"`

	// LogFile defaults to an XDG state path when empty. Logs cannot go to
	// stdout while the TUI owns it.
	LogFile string `envconfig:"CRM_LOG_FILE"`
}

// Load reads configuration from .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
