// Command seed populates a development database with demo suppliers,
// clients, bank accounts and notification recipients.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"freightops/internal/config"
	"freightops/internal/core/id"
	"freightops/internal/domain/notify"
	"freightops/internal/domain/party"
	"freightops/internal/infrastructure/storage/postgres"
	"freightops/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	suppliers := postgres.NewSupplierRepo(txManager)
	clients := postgres.NewClientRepo(txManager)

	for _, s := range []*party.Supplier{
		party.NewSupplier("WINTEX - ADNAN", "USD"),
		party.NewSupplier("GUANGZHOU FREIGHT CO", "USD"),
		party.NewSupplier("MUMBAI TEXTILES LTD", "USD"),
	} {
		if err := suppliers.Create(ctx, s); err != nil {
			log.Warnw("seed supplier", "name", s.Name, "error", err)
			continue
		}
		log.Infow("seeded supplier", "name", s.Name)
	}

	for _, c := range []*party.Client{
		party.NewClient("ACME TRADING (PTY) LTD"),
		party.NewClient("CAPE IMPORTS"),
	} {
		if err := clients.Create(ctx, c); err != nil {
			log.Warnw("seed client", "name", c.Name, "error", err)
			continue
		}
		log.Infow("seeded client", "name", c.Name)
	}

	seedBankAccounts(ctx, pool, log)
	seedRecipients(ctx, pool, log)

	log.Info("seed complete")
}

func seedBankAccounts(ctx context.Context, pool *postgres.Pool, log *logger.Logger) {
	accounts := []struct {
		name, number, currency string
	}{
		{"FNB Main", "62000000001", "ZAR"},
		{"Investec FX", "10000000002", "USD"},
	}
	for _, a := range accounts {
		_, err := pool.Exec(ctx, `
			INSERT INTO bank_accounts (id, name, account_number, currency, created_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT DO NOTHING
		`, id.New(), a.name, a.number, a.currency)
		if err != nil {
			log.Warnw("seed bank account", "name", a.name, "error", err)
			continue
		}
		log.Infow("seeded bank account", "name", a.name)
	}
}

func seedRecipients(ctx context.Context, pool *postgres.Pool, log *logger.Logger) {
	quiet := func(s string) *string { return &s }
	recipients := []*notify.Recipient{
		{ID: id.New(), UserID: "owner", Role: "admin", Channel: notify.ChannelWhatsApp, Address: "27820000001", Active: true},
		{ID: id.New(), UserID: "finance", Role: "finance", Channel: notify.ChannelTelegram, Address: "100200300", QuietStart: quiet("22:00"), QuietEnd: quiet("06:00"), Active: true},
		{ID: id.New(), UserID: "ops", Role: "operations", Channel: notify.ChannelWhatsApp, Address: "27820000002", Active: true},
	}
	for _, r := range recipients {
		_, err := pool.Exec(ctx, `
			INSERT INTO notification_recipients (id, user_id, role, channel, address, quiet_start, quiet_end, filter_expr, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT DO NOTHING
		`, r.ID, r.UserID, r.Role, r.Channel, r.Address, r.QuietStart, r.QuietEnd, r.FilterExpr, r.Active)
		if err != nil {
			log.Warnw("seed recipient", "user", r.UserID, "error", err)
			continue
		}
		log.Infow("seeded recipient", "user", r.UserID, "channel", r.Channel)
	}
}
