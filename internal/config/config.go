package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	LogLevel    slog.Level
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration
	PromptsFile string
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),
		LLMBaseURL:  envOr("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:    envOr("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:  30 * time.Second,
		PromptsFile: os.Getenv("PROMPTS_FILE"),
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if c.LLMAPIKey == "" {
		return Config{}, fmt.Errorf("LLM_API_KEY is required")
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
