package services

import (
	"fmt"

	"github.com/mor1n0/answerbot/internal/config"
	"github.com/mor1n0/answerbot/internal/infrastructure/openrouter"
	"github.com/mor1n0/answerbot/internal/infrastructure/redis"
	"github.com/mor1n0/answerbot/internal/infrastructure/telegram"
	"github.com/mor1n0/answerbot/internal/services/completion"
	"github.com/mor1n0/answerbot/internal/services/conversation"
	"github.com/mor1n0/answerbot/internal/services/turn"
	"github.com/rs/zerolog/log"
)

type Services struct {
	redisService      *redis.Service
	openRouterService *openrouter.Service
	telegramService   *telegram.Service
	conversationStore conversation.Store
	completionService *completion.Service
	turnService       *turn.Service
}

// InitializeServices initializes all required services
func InitializeServices() (*Services, error) {
	log.Info().Msg("Initializing core services")

	// Redis is optional; without it conversations live in memory only.
	redisService := redis.NewService()

	// Telegram and OpenRouter are required; their constructors are fatal on
	// missing credentials.
	telegramService := telegram.NewService()
	openRouterService := openrouter.NewService()

	conversationStore := conversation.NewStore(redisService)
	log.Info().Msg("Initialized conversation store")

	completionService, err := completion.NewService(
		openRouterService,
		config.GetModel(),
		config.GetCompletionTimeout(),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize completion service")
		return nil, fmt.Errorf("failed to initialize completion service: %w", err)
	}

	turnService := turn.NewService(conversationStore, completionService, telegramService)

	log.Info().Msg("All services initialized successfully")

	return &Services{
		redisService:      redisService,
		openRouterService: openRouterService,
		telegramService:   telegramService,
		conversationStore: conversationStore,
		completionService: completionService,
		turnService:       turnService,
	}, nil
}

// GetTelegramService returns the Telegram client wrapper
func (s *Services) GetTelegramService() *telegram.Service {
	return s.telegramService
}

// GetConversationStore returns the conversation store
func (s *Services) GetConversationStore() conversation.Store {
	return s.conversationStore
}

// GetTurnService returns the turn orchestrator
func (s *Services) GetTurnService() *turn.Service {
	return s.turnService
}

// Close releases held connections
func (s *Services) Close() {
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
