// Package jobqueue runs Telegram generation requests as River jobs so a slow
// LLM round trip never blocks the polling loop, and failed generations get
// River's retry bookkeeping for free.
package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/rs/zerolog/log"

	"github.com/pinegen/internal/generation"
	"github.com/pinegen/internal/store"
	"github.com/pinegen/internal/telegram"
)

// GenerateJobArgs carries one queued Telegram generation request.
type GenerateJobArgs struct {
	TelegramChatID int64  `json:"telegram_chat_id"`
	Prompt         string `json:"prompt"`
}

// Kind returns the job kind for River.
func (GenerateJobArgs) Kind() string {
	return "telegram_generate"
}

// GenerateWorker handles queued generation jobs.
type GenerateWorker struct {
	river.WorkerDefaults[GenerateJobArgs]
	svc    *generation.Service
	store  *store.Store
	tg     *telegram.Client
	config *QueueConfig
}

// Timeout bounds a single attempt.
func (w *GenerateWorker) Timeout(*river.Job[GenerateJobArgs]) time.Duration {
	return w.config.JobTimeout
}

// Work runs generation for the prompt and replies over Telegram. The saved
// indicator is best-effort: a storage failure is logged, not retried, since
// the user already has their script.
func (w *GenerateWorker) Work(ctx context.Context, job *river.Job[GenerateJobArgs]) error {
	args := job.Args

	log.Info().
		Int64("telegram_chat_id", args.TelegramChatID).
		Int("attempt", job.Attempt).
		Msg("Processing generation job")

	result, err := w.svc.Generate(ctx, args.Prompt)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if w.store != nil && result.Code != "" {
		ind := &store.Indicator{
			Code:    result.Code,
			Preview: result.Preview,
			Config:  result.Config,
		}
		if err := w.store.SaveIndicator(ctx, ind); err != nil {
			log.Error().Err(err).Msg("Failed to save generated indicator")
		}
	}

	// A reply without extractable code is still an answer; deliver the
	// model's text as-is instead of an empty message.
	reply := result.Code
	if reply == "" {
		reply = result.Raw
	} else if result.Match.BestMatch != nil {
		reply = fmt.Sprintf("Based on: %s\n\n%s", result.Match.BestMatch.Name, result.Code)
	}

	if err := w.tg.SendMessage(ctx, args.TelegramChatID, reply); err != nil {
		return fmt.Errorf("failed to deliver reply: %w", err)
	}

	return nil
}

// JobQueue manages the River job queue.
type JobQueue struct {
	client *river.Client[pgx.Tx]
	config *QueueConfig
}

// NewJobQueue creates a queue on an existing pool with its worker registered.
func NewJobQueue(pool *pgxpool.Pool, svc *generation.Service, st *store.Store, tg *telegram.Client) (*JobQueue, error) {
	config := DefaultQueueConfig()

	workers := river.NewWorkers()
	river.AddWorker(workers, &GenerateWorker{svc: svc, store: st, tg: tg, config: config})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:  config.RiverQueueConfig(),
		Workers: workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &JobQueue{client: client, config: config}, nil
}

// Start starts the job queue workers.
func (jq *JobQueue) Start(ctx context.Context) error {
	return jq.client.Start(ctx)
}

// Stop stops the job queue workers.
func (jq *JobQueue) Stop(ctx context.Context) error {
	return jq.client.Stop(ctx)
}

// EnqueueGenerate queues one generation request.
func (jq *JobQueue) EnqueueGenerate(ctx context.Context, telegramChatID int64, prompt string) error {
	args := GenerateJobArgs{
		TelegramChatID: telegramChatID,
		Prompt:         prompt,
	}

	_, err := jq.client.Insert(ctx, args, &river.InsertOpts{
		MaxAttempts: jq.config.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("failed to queue generation job: %w", err)
	}

	return nil
}
