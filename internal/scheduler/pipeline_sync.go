// Package scheduler runs the import pipeline on a cron schedule, keeping the
// chapter list and preview pages in step with the published sheet.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/montafon/moonlight/internal/pipeline"
)

// PipelineScheduler manages the periodic sheet sync.
type PipelineScheduler struct {
	runner   *pipeline.Runner
	schedule string
	enabled  bool

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewPipelineScheduler creates a scheduler for the given runner.
func NewPipelineScheduler(runner *pipeline.Runner, schedule string, enabled bool) *PipelineScheduler {
	return &PipelineScheduler{
		runner:   runner,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the pipeline sync is enabled.
func (s *PipelineScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Pipeline scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runOnce()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Pipeline scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync.
func (s *PipelineScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Pipeline scheduler: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *PipelineScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *PipelineScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Pipeline sync: starting")

	result, err := s.runner.Run(ctx)
	if err != nil {
		// The run failed before anything was committed; the previous
		// chapter list and pages stay live.
		log.Printf("Pipeline sync failed: %v", err)
		return
	}

	log.Printf("Pipeline sync: %d chapters imported, %d pages written",
		result.Chapters, result.PagesWritten)
}
