// Package jobs defines the background tasks exchanged between the web
// process and the worker through the Redis-backed queue.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue name for transactional jobs.
	QueueDefault = "default"
	// TaskTypeActivationEmail delivers the account-activation email.
	TaskTypeActivationEmail = "mail:activation"
)

// ActivationEmailPayload carries everything the worker needs to render
// and send the activation email.
type ActivationEmailPayload struct {
	To    string `json:"to"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// NewActivationEmailTask constructs the Asynq task for an activation email.
func NewActivationEmailTask(payload ActivationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeActivationEmail, data, asynq.Queue(QueueDefault), asynq.MaxRetry(5)), nil
}

// Enqueuer submits tasks from the web process. Implements the
// activations module's Enqueuer interface.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer wraps an Asynq client.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueActivationEmail queues the activation email for delivery.
func (e *Enqueuer) EnqueueActivationEmail(ctx context.Context, to, name, token string) error {
	task, err := NewActivationEmailTask(ActivationEmailPayload{To: to, Name: name, Token: token})
	if err != nil {
		return fmt.Errorf("jobs: build activation task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("jobs: enqueue activation task: %w", err)
	}
	return nil
}
