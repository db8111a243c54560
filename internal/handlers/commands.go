package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mor1n0/answerbot/pkg/markup"
	"github.com/rs/zerolog/log"
)

const welcomeText = "Hi! I'm a chat bot backed by a language model. Ask me anything.\n" +
	"Use /help to see the available commands."

const helpText = "*Commands:*\n" +
	"/start - Start a conversation\n" +
	"/help - Show this help\n" +
	"/reset - Clear your conversation history"

const (
	resetDoneText  = "History cleared."
	resetEmptyText = "No history to clear."
)

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.reply(msg.Chat.ID, helpText)
	case "reset":
		h.handleReset(ctx, msg)
	default:
		log.Debug().Str("command", msg.Command()).Msg("Ignoring unknown command")
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if err := h.store.Ensure(ctx, msg.From.ID); err != nil {
		log.Error().Err(err).Int64("user", msg.From.ID).Msg("Failed to ensure conversation")
	}
	h.reply(msg.Chat.ID, welcomeText)
}

func (h *Handler) handleReset(ctx context.Context, msg *tgbotapi.Message) {
	existed, err := h.store.Reset(ctx, msg.From.ID)
	if err != nil {
		log.Error().Err(err).Int64("user", msg.From.ID).Msg("Failed to reset conversation")
		h.reply(msg.Chat.ID, genericErrorText)
		return
	}

	if existed {
		h.reply(msg.Chat.ID, resetDoneText)
	} else {
		h.reply(msg.Chat.ID, resetEmptyText)
	}
}

// reply escapes the whole text and sends it in MarkdownV2 mode.
func (h *Handler) reply(chatID int64, text string) {
	if err := h.sender.SendMarkdown(chatID, markup.EscapeMarkdownV2(text)); err != nil {
		log.Warn().Err(err).Int64("chat", chatID).Msg("Failed to deliver command reply")
	}
}
