package scheduler

import (
	"context"
	"testing"
	"time"

	"casaora_backend/internal/upstream"
	"casaora_backend/platform/logger"
)

type fakeMessageSource struct {
	messages []upstream.MessageLog
}

func (f *fakeMessageSource) ListQueuedMessages(ctx context.Context) ([]upstream.MessageLog, error) {
	return f.messages, nil
}

type fakeDispatchQueue struct {
	enqueued []MessageDispatchPayload
}

func (f *fakeDispatchQueue) EnqueueMessageDispatch(ctx context.Context, payload MessageDispatchPayload) error {
	f.enqueued = append(f.enqueued, payload)
	return nil
}

func TestSweepEnqueuesQueuedAndRetryableFailures(t *testing.T) {
	source := &fakeMessageSource{messages: []upstream.MessageLog{
		{ID: "msg-1", Channel: "whatsapp", Recipient: "+595981123456", Body: "Hola", Status: "queued"},
		{ID: "msg-2", Channel: "email", Recipient: "ana@example.com", Status: "failed", RetryCount: 2},
		{ID: "msg-3", Channel: "email", Recipient: "luis@example.com", Status: "failed", RetryCount: 3},
		{ID: "", Channel: "email", Recipient: "sin-id@example.com", Status: "queued"},
	}}
	queue := &fakeDispatchQueue{}
	d := &MessageDispatcher{
		client:   queue,
		source:   source,
		interval: time.Minute,
		log:      logger.New("test"),
	}

	d.sweep(context.Background())

	if len(queue.enqueued) != 2 {
		t.Fatalf("enqueued %d payloads, want 2", len(queue.enqueued))
	}
	if queue.enqueued[0].MessageID != "msg-1" || queue.enqueued[1].MessageID != "msg-2" {
		t.Errorf("enqueued = %q and %q, want msg-1 and msg-2",
			queue.enqueued[0].MessageID, queue.enqueued[1].MessageID)
	}
	if queue.enqueued[1].RetryCount != 2 {
		t.Errorf("retry count carried into payload = %d, want 2", queue.enqueued[1].RetryCount)
	}
}
