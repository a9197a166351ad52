package scheduler

import (
	"context"
	"time"

	"casaora_backend/internal/upstream"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"
)

// MessageSource lists messages waiting for delivery.
type MessageSource interface {
	ListQueuedMessages(ctx context.Context) ([]upstream.MessageLog, error)
}

// DispatchQueue accepts dispatch tasks for delivery.
type DispatchQueue interface {
	EnqueueMessageDispatch(ctx context.Context, payload MessageDispatchPayload) error
}

// MessageDispatcher polls the core backend's message log and feeds queued
// messages into the task queue.
type MessageDispatcher struct {
	client   DispatchQueue
	source   MessageSource
	interval time.Duration
	log      *logger.Logger
}

func NewMessageDispatcher(cfg config.SchedulerConfig, client DispatchQueue, source MessageSource, log *logger.Logger) *MessageDispatcher {
	interval := cfg.GetDispatchInterval()
	if interval <= 0 {
		interval = time.Minute
	}

	return &MessageDispatcher{
		client:   client,
		source:   source,
		interval: interval,
		log:      log,
	}
}

func (d *MessageDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil || d.source == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		d.sweep(ctx)
	}
}

func (d *MessageDispatcher) sweep(ctx context.Context) {
	messages, err := d.source.ListQueuedMessages(ctx)
	if err != nil {
		d.log.Warn("queued message poll failed", "error", err)
		return
	}

	enqueued := 0
	for _, msg := range messages {
		if msg.ID == "" || msg.RetryCount >= maxDispatchAttempts {
			continue
		}

		err := d.client.EnqueueMessageDispatch(ctx, MessageDispatchPayload{
			MessageID:  msg.ID,
			Channel:    msg.Channel,
			Recipient:  msg.Recipient,
			Subject:    msg.Subject,
			Body:       msg.Body,
			RetryCount: msg.RetryCount,
		})
		if err != nil {
			d.log.Warn("failed to enqueue message dispatch", "messageId", msg.ID, "error", err)
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		d.log.Info("queued messages enqueued for dispatch", "count", enqueued)
	}
}
