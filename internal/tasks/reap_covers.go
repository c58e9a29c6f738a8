package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"
)

// CoverReaper removes cover files no detail row references. Files can be
// left behind when a save stores a new cover and then rolls back.
type CoverReaper interface {
	ReapCovers() (int, error)
}

// ReapCoversTask removes unreferenced files from the cover directory.
type ReapCoversTask struct{}

// Config returns the queue configuration for reap tasks.
func (t ReapCoversTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "reap_covers",
		MaxAttempts: tuning.MaxRetries,
		Backoff:     tuning.RetryDelay,
		Timeout:     tuning.TaskTimeout,
		Retention:   retention(),
	}
}

// ReapCoversProcessor creates a processor function for ReapCoversTask.
func ReapCoversProcessor(reaper CoverReaper) backlite.QueueProcessor[ReapCoversTask] {
	return func(ctx context.Context, task ReapCoversTask) error {
		if reaper == nil {
			return fmt.Errorf("cover reaper not configured")
		}

		removed, err := reaper.ReapCovers()
		if err != nil {
			return fmt.Errorf("reap covers: %w", err)
		}

		log.Printf("[TASK] Reaped %d unreferenced cover files", removed)
		return nil
	}
}

// NewReapCoversQueue creates a backlite queue for cover reap tasks.
func NewReapCoversQueue(reaper CoverReaper) backlite.Queue {
	return backlite.NewQueue(ReapCoversProcessor(reaper))
}
