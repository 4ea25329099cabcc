package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/moneta-dev/moneta/internal/bill"
	billStore "github.com/moneta-dev/moneta/internal/bill/store"
	"github.com/moneta-dev/moneta/internal/config"
	"github.com/moneta-dev/moneta/internal/database"
	"github.com/moneta-dev/moneta/internal/notify"
	"github.com/moneta-dev/moneta/internal/reminder"
	userStore "github.com/moneta-dev/moneta/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var notifier reminder.Notifier = notify.LogNotifier{}
	if cfg.MailEnabled() {
		notifier = notify.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	var (
		billService     = bill.NewService(billStore.New(db))
		reminderService = reminder.NewService(userStore.New(db), billService, notifier, cfg.Worker.MaxLeadDays)
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting reminder worker", "interval", cfg.Worker.Interval, "max_lead_days", cfg.Worker.MaxLeadDays)

	ticker := time.NewTicker(cfg.Worker.Interval)
	defer ticker.Stop()

	// First pass runs right away so a restart doesn't push reminders
	// back by a whole interval.
	sent := reminderService.Run(ctx, time.Now())
	slog.Info("reminder pass complete", "sent", sent)

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down reminder worker")
			return
		case now := <-ticker.C:
			sent := reminderService.Run(ctx, now)
			slog.Info("reminder pass complete", "sent", sent)
		}
	}
}
