package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vladimiradmaev/recipebox/internal/app"
	"github.com/vladimiradmaev/recipebox/internal/bot"
	"github.com/vladimiradmaev/recipebox/internal/bot/handlers"
	"github.com/vladimiradmaev/recipebox/internal/config"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	logger.Info("Starting Recipe Box bot")

	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Failed to close connections", "error", err)
		}
	}()

	deps := handlers.Dependencies{
		UserService:   a.Users,
		RecipeService: a.Recipes,
		Importer:      a.Importer,
		ErrorHandler:  apperrors.NewHandler(logger.GetLogger()),
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, a.StateManager())
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	go func() {
		<-ctx.Done()
		telegramBot.Stop()
	}()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Bot stopped with error", "error", err)
	}
	logger.Info("Bot stopped")
}
