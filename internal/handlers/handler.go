package handlers

import (
	"context"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mor1n0/answerbot/internal/services/conversation"
	"github.com/mor1n0/answerbot/internal/services/turn"
	"github.com/rs/zerolog/log"
)

const genericErrorText = "⚠️ Something went wrong. Please try again later."

// TurnService runs the conversation turn for an inbound text message.
type TurnService interface {
	HandleMessage(ctx context.Context, userID, chatID int64, text string)
}

// Handler routes inbound Telegram updates to commands and the turn service.
type Handler struct {
	store  conversation.Store
	turns  TurnService
	sender turn.Sender
}

func NewHandler(store conversation.Store, turns TurnService, sender turn.Sender) *Handler {
	return &Handler{
		store:  store,
		turns:  turns,
		sender: sender,
	}
}

// HandleUpdate processes one update. It is the containment boundary: a panic
// anywhere below is recovered here so one bad message never takes the process
// down or spills into another user's turn.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Int64("user", msg.From.ID).
				Msg("Recovered from panic while handling update")
			if err := h.sender.SendPlain(msg.Chat.ID, genericErrorText); err != nil {
				log.Error().Err(err).Msg("Failed to deliver generic error notice")
			}
		}
	}()

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
		return
	}

	if msg.Text == "" {
		return
	}

	h.turns.HandleMessage(ctx, msg.From.ID, msg.Chat.ID, msg.Text)
}
