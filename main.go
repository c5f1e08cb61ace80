package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dmsavelev/caloriebot/internal/bot"
	"github.com/dmsavelev/caloriebot/internal/bot/handlers"
	"github.com/dmsavelev/caloriebot/internal/bot/state"
	"github.com/dmsavelev/caloriebot/internal/charts"
	"github.com/dmsavelev/caloriebot/internal/config"
	"github.com/dmsavelev/caloriebot/internal/logger"
	"github.com/dmsavelev/caloriebot/internal/server"
	"github.com/dmsavelev/caloriebot/internal/services"
	"github.com/dmsavelev/caloriebot/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting calorie counter bot...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	catalogService, err := services.NewCatalogService(ctx, store)
	if err != nil {
		logger.Error("Failed to load product catalog", "error", err)
		os.Exit(1)
	}
	ledgerService, err := services.NewLedgerService(ctx, store)
	if err != nil {
		logger.Error("Failed to load user ledger", "error", err)
		os.Exit(1)
	}
	statsService := services.NewStatsService()
	logger.Info("Services initialized successfully")

	telegramBot, err := bot.NewBot(cfg.TelegramToken)
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.WebhookURL != "" {
		if err := telegramBot.RegisterWebhook(cfg.WebhookURL); err != nil {
			logger.Error("Failed to register webhook", "error", err)
			os.Exit(1)
		}
	}

	stateManager, err := newStateManager(cfg.State)
	if err != nil {
		logger.Error("Failed to init state manager", "error", err)
		os.Exit(1)
	}

	updateHandler := handlers.NewUpdateHandler(telegramBot, handlers.Dependencies{
		Catalog: catalogService,
		Ledger:  ledgerService,
		Stats:   statsService,
		Charts:  charts.NewRenderer(),
	}, stateManager)

	srv := server.New(cfg.Port, updateHandler)
	logger.Infof("Bot is running on port %s. Press Ctrl+C to stop.", cfg.Port)
	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}

func newStateManager(cfg config.StateConfig) (state.StateManager, error) {
	if cfg.Backend == config.StateBackendRedis {
		return state.NewRedisManager(cfg.RedisHost, cfg.RedisPort)
	}
	return state.NewManager(), nil
}
