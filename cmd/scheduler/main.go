package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casaora_backend/internal/email"
	"casaora_backend/internal/events"
	"casaora_backend/internal/notification"
	"casaora_backend/internal/scheduler"
	"casaora_backend/internal/upstream"
	"casaora_backend/internal/whatsapp"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coreAPI := upstream.New(cfg, log)
	if err := withRetry(ctx, log, "core api connection", 5, 2*time.Second, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return coreAPI.Ping(pingCtx)
	}); err != nil {
		log.Error("failed to reach core api", "error", err)
		panic("failed to reach core api: " + err.Error())
	}

	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)

	// A disabled gateway yields a nil client; keep the interface nil too so
	// consumers can tell.
	var gateway scheduler.WhatsAppSender
	if whatsappClient := whatsapp.NewClient(cfg, log); whatsappClient != nil {
		gateway = whatsappClient
	}

	notificationModule := notification.New(sender, cfg, log)
	if gateway != nil {
		notificationModule.SetWhatsAppSender(gateway)
	}
	notificationModule.RegisterHandlers(eventBus)

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		panic("failed to initialize task queue client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	dispatcher := scheduler.NewMessageDispatcher(cfg, client, coreAPI, log)
	go dispatcher.Run(ctx)

	slaMonitor := scheduler.NewSLAMonitor(cfg, coreAPI, eventBus, log)
	go slaMonitor.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, gateway, sender, coreAPI, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
