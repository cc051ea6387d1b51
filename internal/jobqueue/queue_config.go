package jobqueue

import (
	"time"

	"github.com/riverqueue/river"
)

// QueueConfig holds the tunable parameters for the generation job queue.
type QueueConfig struct {
	// MaxWorkers bounds concurrent generation jobs. Each one holds an
	// outbound LLM request, so this stays small.
	MaxWorkers int

	// MaxRetries is the per-job retry budget before River discards it.
	MaxRetries int

	// JobTimeout is the per-attempt deadline, covering the LLM round trip
	// plus the Telegram reply.
	JobTimeout time.Duration
}

// DefaultQueueConfig returns the default configuration.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		MaxWorkers: 4,
		MaxRetries: 5,
		JobTimeout: 3 * time.Minute,
	}
}

// RiverQueueConfig converts our config to River's queue configuration format.
func (c *QueueConfig) RiverQueueConfig() map[string]river.QueueConfig {
	return map[string]river.QueueConfig{
		river.QueueDefault: {
			MaxWorkers: c.MaxWorkers,
		},
	}
}
