package config

import "github.com/rs/zerolog/log"

// GetBotToken returns the Telegram bot token. The token is required: without
// it the process cannot talk to Telegram at all, so a missing value is fatal.
func GetBotToken() string {
	value := GetEnvOrDefault("BOT_TOKEN", "")
	if value == "" {
		log.Fatal().Msg("BOT_TOKEN environment variable not set")
	}
	return value
}
