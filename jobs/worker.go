package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/mail"
)

// Worker wraps the Asynq server processing queued jobs.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts       asynq.RedisClientOpt
	Logger          *slog.Logger
	Mailer          mail.Mailer
	ActivationURL   string // base URL the token is appended to
	ActivationGreet string // site name used in the email body
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) *Worker {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeActivationEmail, activationEmailHandler(cfg))

	return &Worker{server: srv, mux: mux, logger: cfg.Logger}
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("jobs: start worker: %w", err)
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}

func activationEmailHandler(cfg WorkerConfig) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ActivationEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		msg := mail.Message{
			To:      payload.To,
			Subject: fmt.Sprintf("Ative seu cadastro no %s", cfg.ActivationGreet),
			Body: fmt.Sprintf(
				"Olá, %s!\n\nClique no link abaixo para ativar seu cadastro:\n\n%s/cadastro/ativar/%s\n\nCaso você não tenha feito este cadastro, ignore este email.",
				payload.Name, cfg.ActivationURL, payload.Token,
			),
		}
		if err := cfg.Mailer.Send(ctx, msg); err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("send activation email", slog.String("to", payload.To), slog.Any("error", err))
			}
			return err
		}
		return nil
	}
}
