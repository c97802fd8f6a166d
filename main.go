package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MangoMods-code/telegram-bot/internal/app/service"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/config"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/http"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/http/handler"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/repository/file"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/telegram"
	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/telemetry"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	telem, err := telemetry.NewTelemetry(&cfg.OTLP)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("storefront-bot")
	meter := telem.MeterProvider.Meter("storefront-bot")
	logger := telem.Logger

	logger.Info("Starting storefront bot")

	// File-backed stores
	catalog := file.NewCatalogRepository(cfg.Storage.ProductsFile(), tracer, logger)
	carts := file.NewCartRepository(cfg.Storage.CartFile(), tracer, logger)
	orders := file.NewOrderRepository(cfg.Storage.OrdersFile(), tracer, logger)
	purchaseLog := file.NewPurchaseLog(cfg.Storage.LogFile(), tracer, logger)
	backup := file.NewBackup(cfg.Storage.BackupDir, cfg.Storage.TrackedFiles(), cfg.Storage.BackupKeep, tracer, logger)

	store := service.NewStorefront(
		catalog, carts, orders, purchaseLog, backup,
		cfg.Bot.AdminIDs, cfg.Bot.PayPalUsername,
		tracer, meter, logger,
	)

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}
	bot := telegram.New(api, store.Routes(), logger)

	webhookMode := cfg.Bot.Mode == config.ModeWebhook
	if webhookMode {
		if err := bot.RegisterWebhook(cfg.Bot.PublicURL); err != nil {
			log.Fatalf("Failed to register webhook: %v", err)
		}
		logger.Info("Webhook registered", "public_url", cfg.Bot.PublicURL)
	}

	webhookHandler := handler.NewWebhookHandler(bot, store, logger)
	server := http.NewServer(&cfg.Server, webhookHandler, logger, webhookMode)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	if !webhookMode {
		go bot.Run(ctx)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err.Error())
	}

	logger.Info("Stopped")
}
