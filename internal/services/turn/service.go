package turn

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mor1n0/answerbot/internal/services/completion"
	"github.com/mor1n0/answerbot/internal/services/conversation"
	"github.com/mor1n0/answerbot/pkg/markup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxMessageLength is Telegram's per-message character limit.
const MaxMessageLength = 4096

// answerPrefix labels the first chunk of a reply. The asterisks are
// intentional MarkdownV2 bold markers, not content.
const answerPrefix = "*Answer:*\n"

const (
	msgTransportFailure = "Something went wrong while contacting the model. Please try again."
	msgEmptyResponse    = "The model returned an empty response."
)

// tagResidue matches leftover tag-like fragments in the escaped reply, such
// as chain-of-thought markers some models emit.
var tagResidue = regexp.MustCompile(`<[^>\n]*>`)

// Completer produces a model reply for a conversation history.
type Completer interface {
	Complete(ctx context.Context, history []conversation.Turn) (string, error)
}

// Sender delivers outbound messages to a chat.
type Sender interface {
	SendMarkdown(chatID int64, text string) error
	SendPlain(chatID int64, text string) error
}

// Service drives one conversation turn per inbound text message: record the
// user turn, request a completion over the full history, and deliver the
// escaped reply in bounded chunks.
type Service struct {
	store     conversation.Store
	completer Completer
	sender    Sender

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

func NewService(store conversation.Store, completer Completer, sender Sender) *Service {
	return &Service{
		store:     store,
		completer: completer,
		sender:    sender,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serialising history mutations for one user.
// Different users never share a lock.
func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, exists := s.userLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// HandleMessage runs the full turn for one inbound message. Every failure is
// contained here: the user gets templated text, the log gets the detail, and
// no assistant turn is recorded unless the reply was actually produced.
func (s *Service) HandleMessage(ctx context.Context, userID, chatID int64, text string) {
	logger := log.With().
		Str("turn", uuid.NewString()[:8]).
		Int64("user", userID).
		Logger()
	logger.Info().Int("length", len(text)).Msg("Handling inbound message")

	// The lock covers only the append-and-snapshot sequence, never the
	// network wait, so a slow completion cannot stall other messages from
	// this user being recorded.
	lock := s.userLock(userID)
	lock.Lock()
	history, err := s.recordUserTurn(ctx, userID, text)
	lock.Unlock()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record user turn")
		s.notify(logger, chatID, msgTransportFailure)
		return
	}

	content, err := s.completer.Complete(ctx, history)
	if err != nil {
		if errors.Is(err, completion.ErrEmptyResponse) {
			logger.Info().Msg("Model returned no usable content")
			s.notify(logger, chatID, msgEmptyResponse)
		} else {
			logger.Error().Err(err).Msg("Completion request failed")
			s.notify(logger, chatID, msgTransportFailure)
		}
		return
	}

	cleaned := strings.TrimSpace(tagResidue.ReplaceAllString(markup.EscapeMarkdownV2(content), ""))
	if cleaned == "" {
		logger.Info().Msg("Reply empty after cleanup")
		s.notify(logger, chatID, msgEmptyResponse)
		return
	}

	s.deliver(logger, chatID, cleaned)

	// History keeps the original model output, not the escaped form, so
	// future requests carry clean context.
	lock.Lock()
	err = s.store.Append(ctx, userID, conversation.Turn{Role: conversation.RoleAssistant, Content: content})
	lock.Unlock()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record assistant turn")
	}
}

// recordUserTurn appends the user's message and snapshots the history while
// the caller holds the user lock, so a concurrent later message can never
// leak into this request's payload.
func (s *Service) recordUserTurn(ctx context.Context, userID int64, text string) ([]conversation.Turn, error) {
	if err := s.store.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.store.Append(ctx, userID, conversation.Turn{Role: conversation.RoleUser, Content: text}); err != nil {
		return nil, err
	}
	return s.store.Snapshot(ctx, userID)
}

// deliver sends the cleaned reply in order, one chunk per message. A chunk
// rejected by the MarkdownV2 renderer goes out again as plain text; delivery
// of the remaining chunks continues either way.
func (s *Service) deliver(logger zerolog.Logger, chatID int64, cleaned string) {
	for i, chunk := range markup.Chunk(cleaned, MaxMessageLength) {
		out := chunk
		if i == 0 {
			out = answerPrefix + chunk
		}

		if err := s.sender.SendMarkdown(chatID, out); err != nil {
			logger.Warn().Err(err).Int("chunk", i).Msg("Markdown delivery rejected, retrying as plain text")
			if err := s.sender.SendPlain(chatID, chunk); err != nil {
				logger.Error().Err(err).Int("chunk", i).Msg("Plain text delivery failed")
			}
		}
	}
}

func (s *Service) notify(logger zerolog.Logger, chatID int64, text string) {
	if err := s.sender.SendPlain(chatID, text); err != nil {
		logger.Error().Err(err).Msg("Failed to deliver notice")
	}
}
