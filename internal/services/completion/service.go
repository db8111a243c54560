package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mor1n0/answerbot/internal/infrastructure/openrouter"
	"github.com/mor1n0/answerbot/internal/services/conversation"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse means the API answered successfully but produced no usable
// text. Expected to happen occasionally; not a transport problem.
var ErrEmptyResponse = errors.New("completion: empty response from model")

// TransportError wraps a network, timeout or API-level failure of the
// completion call. The wrapped error carries detail for logging; API
// credentials never appear in it.
type TransportError struct {
	err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion: transport failure: %v", e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// Service sends conversation histories to the completion API. It is the only
// place an unbounded-latency external call happens, so every request runs
// under the configured timeout. The service never retries: a failed turn
// requires the user to resend.
type Service struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewService(openRouterService *openrouter.Service, model string, timeout time.Duration) (*Service, error) {
	if openRouterService == nil {
		return nil, fmt.Errorf("OpenRouter service is required")
	}

	return &Service{
		client:  openRouterService.GetClient(),
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete sends the full ordered history and returns the model's reply,
// trimmed. Returns ErrEmptyResponse when the API succeeds without content and
// a *TransportError for everything else that goes wrong.
func (s *Service) Complete(ctx context.Context, history []conversation.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, turn := range history {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		}
	}

	log.Debug().
		Str("model", s.model).
		Int("turns", len(messages)).
		Msg("Sending completion request")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", &TransportError{err: err}
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
