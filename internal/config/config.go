package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings for the panel client.
// Command-line flags override these after parsing.
type Config struct {
	// APIBaseURL is the panel web service that proxies projects, users and
	// message persistence.
	APIBaseURL string `env:"PANEL_API_URL" envDefault:"http://localhost:5000"`
	// ChatBaseURL is the responder microservice, only used for health checks;
	// message exchange goes through the panel service's /send-message route.
	ChatBaseURL string `env:"PANEL_CHAT_URL" envDefault:"http://localhost:5002"`
	// ChatAPIKey is sent as X-API-Key when talking to the responder directly.
	ChatAPIKey string `env:"PANEL_CHAT_API_KEY"`

	// HTTPTimeout of 0 means no timeout: a hung request hangs its flow, which
	// matches the behavior of the browser client this replaces.
	HTTPTimeout time.Duration `env:"PANEL_HTTP_TIMEOUT" envDefault:"0"`

	// LogFile receives zap diagnostics from the TUI. Empty disables file
	// logging (the alternate screen makes stderr useless while interactive).
	LogFile string `env:"PANEL_LOG"`

	Format     string `env:"PANEL_FORMAT" envDefault:"json"`
	PrettyJSON bool   `env:"PANEL_PRETTY" envDefault:"false"`
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
