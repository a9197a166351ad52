package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casaora_backend/internal/applications"
	"casaora_backend/internal/email"
	"casaora_backend/internal/events"
	apphttp "casaora_backend/internal/http"
	"casaora_backend/internal/http/router"
	"casaora_backend/internal/notification"
	"casaora_backend/internal/upstream"
	"casaora_backend/internal/whatsapp"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"
	"casaora_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	coreAPI := upstream.New(cfg, log)
	if err := withRetry(ctx, log, "core api connection", 5, 2*time.Second, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return coreAPI.Ping(pingCtx)
	}); err != nil {
		log.Error("failed to reach core api", "error", err)
		panic("failed to reach core api: " + err.Error())
	}
	log.Info("core api reachable", "baseUrl", cfg.UpstreamBaseURL)

	listCache := upstream.NewListCache(cfg, log)
	if listCache != nil {
		defer listCache.Close()
		log.Info("list cache enabled", "ttl", cfg.CacheTTL)
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	if whatsappClient := whatsapp.NewClient(cfg, log); whatsappClient != nil {
		notificationModule.SetWhatsAppSender(whatsappClient)
	}
	notificationModule.RegisterHandlers(eventBus)

	applicationsModule := applications.NewModule(coreAPI, listCache, eventBus, cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   coreAPI,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			applicationsModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
