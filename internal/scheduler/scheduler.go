package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/tiagomars/weather-data-pipeline/internal/pipeline"
)

// Scheduler triggers one pipeline run per day at the configured cron schedule.
// The run date handle is the UTC calendar date at trigger time; missed past
// runs are not caught up.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	pipeline   *pipeline.Pipeline
	cronExpr   string
	runTimeout time.Duration
}

// New creates a new Scheduler.
func New(p *pipeline.Pipeline, cronExpr string, runTimeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		pipeline:   p,
		cronExpr:   cronExpr,
		runTimeout: runTimeout,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
// SingletonMode keeps a long-running run from overlapping its own re-trigger.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Cron(s.cronExpr).SingletonMode().Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("INFO: scheduler: daily pipeline scheduled (%s)", s.cronExpr)
	return nil
}

func (s *Scheduler) runOnce() {
	runDate := time.Now().UTC().Format("2006-01-02")

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	log.Printf("INFO: scheduler: triggering run for %s", runDate)
	if _, err := s.pipeline.Execute(ctx, runDate); err != nil {
		log.Printf("ERROR: scheduler: run %s failed: %v", runDate, err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
