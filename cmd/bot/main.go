package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dacarsoft/finance-bot/internal/api/handlers"
	"github.com/dacarsoft/finance-bot/internal/api/middleware"
	"github.com/dacarsoft/finance-bot/internal/bot"
	"github.com/dacarsoft/finance-bot/internal/config"
	"github.com/dacarsoft/finance-bot/internal/logger"
	"github.com/dacarsoft/finance-bot/internal/parser"
	"github.com/dacarsoft/finance-bot/internal/sheets"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Debug)
	ctx := context.Background()

	// Persistence path. A startup fault here is fatal only for saving:
	// the bot still parses messages and the API keeps serving.
	var store bot.Store
	backend, err := sheets.NewGoogleBackend(ctx, cfg.SheetsCredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		log.Error().Err(err).Msg("Sheets unavailable; records will not be persisted")
	} else {
		svc := sheets.NewService(backend, log)
		if err := svc.Initialize(ctx); err != nil {
			log.Error().Err(err).Msg("Sheet initialization failed; records will not be persisted")
		} else {
			store = svc
		}
	}

	model, err := parser.NewGeminiModel(ctx, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	classifier := parser.New(model, log)

	handler := bot.NewHandler(classifier, store, log)
	tgBot, err := bot.New(cfg.BotToken, handler, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go tgBot.Run(runCtx)

	// REST surface next to the bot: descriptor, health, identity.
	statusHandler := handlers.NewStatusHandler(cfg.BotName, cfg.BotUsername, version, tgBot, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		statusHandler.Root(w, r)
	})
	mux.HandleFunc("/health", statusHandler.Health)
	mux.HandleFunc("/info", statusHandler.Info)

	handlerChain := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort),
		Handler:      handlerChain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Stopped")
}
