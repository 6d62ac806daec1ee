package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Bot modes.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config keeps every runtime setting. It is built once in main and
// passed into constructors; nothing reads the environment after Load.
type Config struct {
	Environment string

	TelegramToken string
	BotMode       string
	WebhookSecret string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	Model            string
	LLMTimeout       time.Duration
	LLMMaxRetries    int

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPAddr      string
	ReportTime    string // daily summary push, "HH:MM" local time; empty disables
	ContextWindow int    // recent messages fed to the classifier
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is picked up when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:      envOr("ENVIRONMENT", "development"),
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		BotMode:          envOr("BOT_MODE", ModePolling),
		WebhookSecret:    strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")),
		AnthropicAPIKey:  strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
		AnthropicBaseURL: envOr("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		Model:            envOr("LLM_MODEL", "claude-sonnet-4-5-20250929"),
		LLMTimeout:       envDuration("LLM_TIMEOUT_SECONDS", 60*time.Second),
		LLMMaxRetries:    envInt("LLM_MAX_RETRIES", 2),
		DatabaseURL:      envOr("DATABASE_URL", "lifelog.db"),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		RedisDB:          envInt("REDIS_DB", 0),
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		ReportTime:       strings.TrimSpace(os.Getenv("REPORT_TIME")),
		ContextWindow:    envInt("CONTEXT_WINDOW", 5),
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.AnthropicAPIKey == "" {
		return cfg, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	switch cfg.BotMode {
	case ModePolling:
	case ModeWebhook:
		if cfg.WebhookSecret == "" {
			return cfg, fmt.Errorf("WEBHOOK_SECRET is required in webhook mode")
		}
	default:
		return cfg, fmt.Errorf("BOT_MODE must be %q or %q, got %q", ModePolling, ModeWebhook, cfg.BotMode)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
