// Package main is the entry point for the freightops automation server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"freightops/internal/config"
	"freightops/internal/core/types"
	"freightops/internal/domain/automation"
	"freightops/internal/domain/ledger"
	"freightops/internal/domain/notify"
	"freightops/internal/domain/party"
	"freightops/internal/domain/payment"
	"freightops/internal/domain/reporting"
	"freightops/internal/domain/shipment"
	"freightops/internal/infrastructure/channels"
	v1 "freightops/internal/infrastructure/http/v1"
	"freightops/internal/infrastructure/http/v1/handlers"
	"freightops/internal/infrastructure/storage/postgres"
	"freightops/pkg/logger"
	"freightops/pkg/numerator"
)

func main() {
	// .env is a development convenience; absent in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := context.Background()
	log.Info("starting freightops server")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	outbox := postgres.NewOutboxPublisher(txManager)

	// Repositories
	supplierRepo := postgres.NewSupplierRepo(txManager)
	clientRepo := postgres.NewClientRepo(txManager)
	bankRepo := postgres.NewBankAccountRepo(txManager)
	shipmentRepo := postgres.NewShipmentRepo(txManager)
	costsRepo := postgres.NewCostsRepo(txManager)
	entryRepo := postgres.NewEntryRepo(txManager)
	paymentRepo := postgres.NewPaymentRepo(txManager)
	recipientRepo := postgres.NewRecipientRepo(txManager)
	notifyLogRepo := postgres.NewNotificationLogRepo(txManager)

	automationLogRepo, err := postgres.NewAutomationLogRepo(txManager)
	if err != nil {
		log.Fatalw("failed to initialize automation log", "error", err)
	}

	commissionRate, err := types.NewMoneyFromString(cfg.FXCommissionRate)
	if err != nil {
		log.Fatalw("invalid FX_COMMISSION_RATE", "value", cfg.FXCommissionRate, "error", err)
	}

	// Domain services
	resolver := party.NewResolver(supplierRepo, clientRepo, bankRepo)
	numbers := numerator.New(pool)

	shipmentSvc := shipment.NewService(shipmentRepo, resolver, txManager, outbox)
	ledgerSvc := ledger.NewService(shipmentRepo, costsRepo, entryRepo, txManager, outbox, commissionRate)
	paymentSvc := payment.NewService(resolver, supplierRepo, shipmentRepo, paymentRepo, entryRepo, numbers, txManager, outbox, commissionRate)
	reportSvc := reporting.NewService(shipmentRepo, costsRepo, entryRepo, paymentRepo, resolver)

	dispatcher := notify.NewDispatcher(recipientRepo, notifyLogRepo, []notify.Adapter{
		channels.NewWhatsAppAdapter(cfg.WhatsApp),
		channels.NewTelegramAdapter(cfg.Telegram),
	})

	gateway := automation.NewGateway(automationLogRepo)
	automationHandler := handlers.NewAutomationHandler(gateway, shipmentSvc, ledgerSvc, paymentSvc, reportSvc, dispatcher)

	var idempotencyStore *postgres.IdempotencyStore
	if cfg.IdempotencyEnabled {
		idempotencyStore = postgres.NewIdempotencyStore(txManager, cfg.IdempotencyTTL)
	}

	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		Token:            cfg.AutomationToken,
		TokenHash:        cfg.AutomationTokenHash,
		Automation:       automationHandler,
		IdempotencyStore: idempotencyStore,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
