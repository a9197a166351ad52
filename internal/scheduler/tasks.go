package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskMessageDispatch = "messages.dispatch"

// maxDispatchAttempts bounds how often a queued message is retried before it
// is marked failed.
const maxDispatchAttempts = 3

type MessageDispatchPayload struct {
	MessageID  string `json:"messageId"`
	Channel    string `json:"channel"`
	Recipient  string `json:"recipient"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	RetryCount int    `json:"retryCount"`
}

func NewMessageDispatchTask(payload MessageDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMessageDispatch, data), nil
}

func ParseMessageDispatchPayload(task *asynq.Task) (MessageDispatchPayload, error) {
	var payload MessageDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MessageDispatchPayload{}, err
	}
	return payload, nil
}
