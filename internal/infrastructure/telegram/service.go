package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mor1n0/answerbot/internal/config"
	"github.com/rs/zerolog/log"
)

const updateTimeoutSeconds = 30

// Service wraps the Telegram Bot API client used for long polling and
// outbound delivery.
type Service struct {
	bot *tgbotapi.BotAPI
}

func NewService() *Service {
	token := config.GetBotToken()

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise Telegram bot client")
	}

	log.Info().Str("username", bot.Self.UserName).Msg("Authorised on Telegram")

	return &Service{bot: bot}
}

// Updates starts long polling and returns the inbound update channel.
func (s *Service) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	return s.bot.GetUpdatesChan(u)
}

// Stop terminates long polling; the Updates channel closes afterwards.
func (s *Service) Stop() {
	s.bot.StopReceivingUpdates()
}

// SendMarkdown delivers text to the chat in MarkdownV2 rendering mode. The
// text must already be escaped; Telegram rejects malformed markup.
func (s *Service) SendMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := s.bot.Send(msg)
	return err
}

// SendPlain delivers text to the chat without any rendering mode.
func (s *Service) SendPlain(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := s.bot.Send(msg)
	return err
}
