package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Sessions
	SessionProvider string        `env:"SESSION_PROVIDER" envDefault:"memory"` // "memory" (single instance) or "redis"
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`

	// LLM
	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"anthropic"` // "anthropic" (default) or "openai"
	LLMModel        string `env:"LLM_MODEL" envDefault:"claude-3-haiku-20240307"`
	OpenAIModel     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	MaxAnswerTokens int    `env:"MAX_ANSWER_TOKENS" envDefault:"1000"`

	// Credentials
	SecretsFile string `env:"SECRETS_FILE" envDefault:"secrets.toml"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
