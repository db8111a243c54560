package config

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL           = "https://openrouter.ai/api/v1"
	defaultModel             = "deepseek/deepseek-chat-v3-0324:free"
	defaultCompletionTimeout = 30 * time.Second
)

// GetAPIKey returns the OpenRouter API key; fatal when absent.
func GetAPIKey() string {
	value := GetEnvOrDefault("API_KEY", "")
	if value == "" {
		log.Fatal().Msg("API_KEY environment variable not set")
	}
	return value
}

// GetAPIBaseURL returns the completion API base URL.
func GetAPIBaseURL() string {
	return GetEnvOrDefault("API_BASE_URL", defaultBaseURL)
}

// GetModel returns the model identifier sent with every completion request.
func GetModel() string {
	return GetEnvOrDefault("MODEL", defaultModel)
}

// GetCompletionTimeout returns the upper bound on a single completion call.
func GetCompletionTimeout() time.Duration {
	raw := GetEnvOrDefault("COMPLETION_TIMEOUT_SECONDS", "")
	if raw == "" {
		return defaultCompletionTimeout
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Warn().Str("value", raw).Msg("Invalid COMPLETION_TIMEOUT_SECONDS, using default")
		return defaultCompletionTimeout
	}
	return time.Duration(seconds) * time.Second
}
