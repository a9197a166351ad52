package scheduler

import (
	"context"
	"fmt"

	"casaora_backend/internal/email"
	"casaora_backend/internal/upstream"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// WhatsAppSender sends WhatsApp messages.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// MessageStore records delivery outcomes on the core backend's message log.
type MessageStore interface {
	UpdateMessageLog(ctx context.Context, id string, patch upstream.MessageLogPatch) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	whatsapp WhatsAppSender
	sender   email.Sender
	store    MessageStore
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, whatsapp WhatsAppSender, sender email.Sender, store MessageStore, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		whatsapp: whatsapp,
		sender:   sender,
		store:    store,
		log:      log,
	}

	mux.HandleFunc(TaskMessageDispatch, w.handleMessageDispatch)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleMessageDispatch delivers one queued message and records the outcome.
// A failed delivery is marked failed with an incremented retry count; the
// dispatcher re-enqueues failed messages while they are under the attempt
// limit.
func (w *Worker) handleMessageDispatch(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMessageDispatchPayload(task)
	if err != nil {
		return err
	}

	sendErr := w.deliver(ctx, payload)
	if sendErr == nil {
		if err := w.store.UpdateMessageLog(ctx, payload.MessageID, upstream.MessageLogPatch{
			Status:     "sent",
			RetryCount: payload.RetryCount,
		}); err != nil {
			w.log.Error("failed to mark message sent", "messageId", payload.MessageID, "error", err)
			return err
		}
		w.log.Info("message dispatched", "messageId", payload.MessageID, "channel", payload.Channel)
		return nil
	}

	attempts := payload.RetryCount + 1
	patch := upstream.MessageLogPatch{
		Status:     "failed",
		Error:      sendErr.Error(),
		RetryCount: attempts,
	}

	if err := w.store.UpdateMessageLog(ctx, payload.MessageID, patch); err != nil {
		w.log.Error("failed to record delivery failure", "messageId", payload.MessageID, "error", err)
		return err
	}

	w.log.Warn("message delivery failed",
		"messageId", payload.MessageID,
		"channel", payload.Channel,
		"attempts", attempts,
		"error", sendErr,
	)
	return nil
}

func (w *Worker) deliver(ctx context.Context, payload MessageDispatchPayload) error {
	switch payload.Channel {
	case "whatsapp":
		if w.whatsapp == nil {
			return fmt.Errorf("whatsapp gateway not configured")
		}
		return w.whatsapp.SendMessage(ctx, payload.Recipient, payload.Body)
	case "email":
		return w.sender.SendCustomEmail(ctx, payload.Recipient, payload.Subject, payload.Body)
	default:
		return fmt.Errorf("unsupported channel %q", payload.Channel)
	}
}
