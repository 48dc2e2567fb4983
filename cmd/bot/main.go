package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tubegrabbot/internal/adapters/httpfetch"
	"tubegrabbot/internal/adapters/telegram"
	"tubegrabbot/internal/adapters/workspace"
	"tubegrabbot/internal/adapters/ytdlp"
	"tubegrabbot/internal/config"
	"tubegrabbot/internal/service"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize adapters
	engine := ytdlp.New(cfg.YtDlpPath, cfg.CookiesFile)
	scratch := workspace.New("")
	fetcher := httpfetch.New()

	orchestrator := service.NewOrchestrator(engine, scratch, fetcher, logger)

	bot, err := telegram.New(cfg, orchestrator, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize bot: %v", err)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("Received interrupt signal, shutting down...")
		cancel()
	}()

	logger.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil {
		logger.Fatalf("Bot stopped: %v", err)
	}
}
