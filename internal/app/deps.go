package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"docqa/internal/config"
	"docqa/internal/credentials"
	"docqa/internal/extract"
	"docqa/internal/llm"
	"docqa/internal/logger"
	"docqa/internal/session"
)

// Credential keys looked up in the secrets file and the environment.
const (
	anthropicKeyName = "ANTHROPIC_API_KEY"
	openAIKeyName    = "OPENAI_API_KEY"
)

// Deps bundles common runtime dependencies for the server.
type Deps struct {
	Config      config.Config
	Log         *slog.Logger
	Credentials *credentials.Resolver
	Sessions    session.Store
	Extractor   extract.Extractor
	LLM         llm.Client
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	// config.env only exists in local development; its absence is fine.
	_ = godotenv.Load("config.env")

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	creds := buildCredentials(cfg, log)
	sessions, err := buildSessions(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize session store: %w", err)
	}
	llmClient, err := buildLLM(cfg, log, creds)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return Deps{
		Config:      cfg,
		Log:         log,
		Credentials: creds,
		Sessions:    sessions,
		Extractor:   extract.NewPDF(),
		LLM:         llmClient,
	}, nil
}

// buildCredentials wires the ordered credential sources for the selected
// provider: structured secrets file first, then the process environment.
func buildCredentials(cfg config.Config, log *slog.Logger) *credentials.Resolver {
	key := anthropicKeyName
	if cfg.LLMProvider == "openai" {
		key = openAIKeyName
	}
	return credentials.NewResolver(log,
		credentials.SecretsFile(cfg.SecretsFile, key),
		credentials.Env(key),
	)
}

func buildSessions(cfg config.Config, log *slog.Logger) (session.Store, error) {
	switch cfg.SessionProvider {
	case "memory":
		log.Info("using in-memory session store", "ttl", cfg.SessionTTL)
		return session.NewMemory(cfg.SessionTTL), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when SESSION_PROVIDER=redis")
		}
		st, err := session.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis session store: %w", err)
		}
		log.Info("using Redis session store", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		return st, nil
	default:
		return nil, fmt.Errorf("invalid SESSION_PROVIDER: %s (valid options: memory, redis)", cfg.SessionProvider)
	}
}

func buildLLM(cfg config.Config, log *slog.Logger, creds *credentials.Resolver) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		client, err := llm.NewAnthropicClient(creds.Resolve, cfg.LLMModel, cfg.MaxAnswerTokens)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Anthropic client: %w", err)
		}
		log.Info("using Anthropic LLM client", "model", cfg.LLMModel)
		return client, nil
	case "openai":
		key, err := creds.Resolve()
		if err != nil {
			return nil, fmt.Errorf("%s is required when LLM_PROVIDER=openai: %w", openAIKeyName, err)
		}
		client, err := llm.NewOpenAIClient(key, openai.ChatModel(cfg.OpenAIModel), cfg.MaxAnswerTokens)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.OpenAIModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: anthropic, openai)", cfg.LLMProvider)
	}
}
