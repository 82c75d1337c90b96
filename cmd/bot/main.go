package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	logCloser := logger.Init(cfg)
	defer logCloser.Close()
	mainLogger := logger.Component("main")

	mainLogger.WithField("environment", cfg.Environment).
		WithField("chat_id", cfg.TelegramChatID).
		WithField("retry_period", cfg.RetryPeriod).
		Info("Homework status bot starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional delivery log
	var deliveries homework.DeliveryLog
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			mainLogger.Fatalf("Could not connect to database: %v", err)
		}
		defer db.Close()
		if err := idb.EnsureSchema(ctx, db); err != nil {
			mainLogger.Fatalf("Could not prepare database schema: %v", err)
		}
		deliveries = idb.NewPostgresDeliveryRepository(db)
		mainLogger.Info("Delivery log enabled.")
	}

	// Optional metrics endpoint
	var collector *metrics.Collector
	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector()
		metricsServer = metrics.NewServer(cfg.MetricsAddr, collector, logger.Component("metrics"))
		metricsServer.Start()
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramTimeout)
	if err != nil {
		mainLogger.Fatalf("%v", err)
	}
	mainLogger.WithField("bot", bot.Me.Username).Info("Telegram bot initialized.")

	notifier := app.NewNotifier(
		telegram.NewTelebotAdapter(bot),
		cfg.TelegramChatID,
		rate.NewLimiter(rate.Limit(cfg.NotifyRate), 1),
		deliveries,
		collector,
		logger.Component("notifier"),
	)

	apiClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.HTTPTimeout, logger.Component("practicum"))
	poller := app.NewPoller(apiClient, notifier, cfg.InitialCursor(time.Now()), collector, logger.Component("poller"))

	pollScheduler := scheduler.NewPollScheduler(poller, cfg.RetryPeriod, logger.Component("scheduler"))
	// Cycles get their own context so a signal lets the running cycle finish;
	// Stop cancels it afterwards.
	pollScheduler.Start(context.Background())
	mainLogger.Info("Application setup complete. Polling homework statuses...")

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			mainLogger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}
	mainLogger.Info("Application shut down gracefully.")
}
