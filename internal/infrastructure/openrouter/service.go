package openrouter

import (
	"sync"

	"github.com/mor1n0/answerbot/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// Service holds the OpenAI-compatible client configured for OpenRouter.
type Service struct {
	mu     sync.RWMutex
	client *openai.Client
}

func NewService() *Service {
	log.Info().Msg("Initialising OpenRouter service")
	key := config.GetAPIKey()

	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = config.GetAPIBaseURL()

	return &Service{
		client: openai.NewClientWithConfig(cfg),
	}
}

func (s *Service) GetClient() *openai.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}
