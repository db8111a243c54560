package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mor1n0/answerbot/internal/config"
	"github.com/mor1n0/answerbot/internal/handlers"
	"github.com/mor1n0/answerbot/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A missing .env file is fine; credentials may come from the real
	// environment.
	_ = godotenv.Load()

	setupLogging()

	svcs, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer svcs.Close()

	go serveOps()

	handler := handlers.NewHandler(
		svcs.GetConversationStore(),
		svcs.GetTurnService(),
		svcs.GetTelegramService(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telegramService := svcs.GetTelegramService()
	updates := telegramService.Updates()
	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutdown signal received, stopping update polling")
		telegramService.Stop()
	}()

	log.Info().Msg("Listening for Telegram updates")
	for update := range updates {
		go handler.HandleUpdate(ctx, update)
	}
	log.Info().Msg("Update stream closed, exiting")
}

func serveOps() {
	addr := config.GetOpsAddr()
	log.Info().Str("addr", addr).Msg("Ops server starting")
	if err := http.ListenAndServe(addr, handlers.NewOpsRouter()); err != nil {
		log.Error().Err(err).Msg("Ops server stopped")
	}
}

func setupLogging() {
	level, err := zerolog.ParseLevel(config.GetEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Timestamp().Logger()
}
