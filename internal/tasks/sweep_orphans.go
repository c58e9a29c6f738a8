package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"bookshelf/internal/catalog"
)

// OrphanSweeper removes authors, publishers and genres no book references.
type OrphanSweeper interface {
	SweepOrphans() (catalog.SweepResult, error)
}

// SweepOrphansTask triggers one orphan sweep pass. Sweeps are idempotent, so
// duplicate queue entries are harmless.
type SweepOrphansTask struct{}

// Config returns the queue configuration for sweep tasks.
func (t SweepOrphansTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_orphans",
		MaxAttempts: tuning.MaxRetries,
		Backoff:     tuning.RetryDelay,
		Timeout:     tuning.TaskTimeout,
		Retention:   retention(),
	}
}

// SweepOrphansProcessor creates a processor function for SweepOrphansTask.
func SweepOrphansProcessor(sweeper OrphanSweeper) backlite.QueueProcessor[SweepOrphansTask] {
	return func(ctx context.Context, task SweepOrphansTask) error {
		if sweeper == nil {
			return fmt.Errorf("orphan sweeper not configured")
		}

		result, err := sweeper.SweepOrphans()
		if err != nil {
			return fmt.Errorf("sweep orphans: %w", err)
		}

		log.Printf("[TASK] Swept %d orphan rows (%d authors, %d publishers, %d genres)",
			result.Total(), result.Authors, result.Publishers, result.Genres)
		return nil
	}
}

// NewSweepOrphansQueue creates a backlite queue for orphan sweep tasks.
func NewSweepOrphansQueue(sweeper OrphanSweeper) backlite.Queue {
	return backlite.NewQueue(SweepOrphansProcessor(sweeper))
}
