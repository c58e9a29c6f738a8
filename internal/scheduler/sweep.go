// Package scheduler runs the periodic orphan sweep and cover reap on a cron
// schedule, complementing the opportunistic sweeps the service enqueues
// after deletes.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"bookshelf/internal/catalog"
)

// Maintainer is the subset of the catalog service the scheduler drives.
type Maintainer interface {
	SweepOrphans() (catalog.SweepResult, error)
	ReapCovers() (int, error)
}

// SweepScheduler fires catalog maintenance on a cron schedule.
type SweepScheduler struct {
	maintainer Maintainer
	schedule   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSweepScheduler creates a scheduler with a standard five-field cron
// schedule. An empty schedule disables it.
func NewSweepScheduler(maintainer Maintainer, schedule string) *SweepScheduler {
	return &SweepScheduler{
		maintainer: maintainer,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if a schedule is configured.
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("Sweep scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runMaintenance()
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Sweep scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep to
// complete.
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Sweep scheduler: stopped")
}

// RunNow triggers an immediate maintenance pass.
func (s *SweepScheduler) RunNow() {
	go s.runMaintenance()
}

// IsRunning returns whether the scheduler is active.
func (s *SweepScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sweep will occur, or nil when stopped.
func (s *SweepScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *SweepScheduler) runMaintenance() {
	start := time.Now()

	result, err := s.maintainer.SweepOrphans()
	if err != nil {
		log.Printf("Scheduled sweep failed: %v", err)
		return
	}

	reaped, err := s.maintainer.ReapCovers()
	if err != nil {
		log.Printf("Scheduled cover reap failed: %v", err)
		return
	}

	log.Printf("Scheduled sweep removed %d orphan rows and %d cover files in %v",
		result.Total(), reaped, time.Since(start).Round(time.Millisecond))
}
