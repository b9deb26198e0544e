package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	telegramAdapter "lease-recert-bot/internal/adapter/telegram"
	"lease-recert-bot/internal/config"
	"lease-recert-bot/internal/infra/memory"
	sqliteRepo "lease-recert-bot/internal/infra/sqlite"
	"lease-recert-bot/internal/infra/webhook"
	"lease-recert-bot/internal/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.Token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	go func() {
		_ = http.ListenAndServe(cfg.HealthAddr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
	}()

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		log.Fatalf("bot init error: %v", err)
	}
	bot.Debug = false
	logger.Info("authorized", "username", bot.Self.UserName)

	leaseRepo, err := sqliteRepo.NewLeaseRepo(cfg.SQLiteDSN)
	if err != nil {
		log.Fatalf("sqlite init error: %v", err)
	}

	sender := telegramAdapter.NewSender(bot)
	statRepo := memory.NewSweepStatRepo()

	reminderUC := usecase.NewReminder(leaseRepo, sender, cfg.TeamChatID, statRepo, logger)
	if cfg.WebhookURL != "" {
		reminderUC.SetDelivery(webhook.NewClient(cfg.WebhookURL, cfg.WebhookSecret))
	}

	dialog := usecase.NewDialog(leaseRepo, logger)
	sessions := usecase.NewSessions()
	statsUC := usecase.NewStats(leaseRepo, statRepo)

	c := cron.New()
	if _, err := c.AddFunc(cfg.ReminderCron, func() {
		reminderUC.Run(context.Background(), time.Now())
	}); err != nil {
		log.Fatalf("reminder cron error: %v", err)
	}
	c.Start()
	logger.Info("reminder sweep scheduled", "cron", cfg.ReminderCron)

	handler := telegramAdapter.NewHandler(bot, dialog, sessions, statsUC, cfg.AdminIDs, logger)
	handler.Run()
}
