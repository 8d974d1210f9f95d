package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is the unit of work triggered on every tick
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron schedule in a fixed location
type Scheduler struct {
	cron    *cron.Cron
	job     Job
	timeout time.Duration
	log     *logrus.Logger
}

// New parses schedule and registers job without starting it
func New(schedule string, loc *time.Location, job Job, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		job:     job,
		timeout: 5 * time.Minute,
		log:     log,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunNow); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunNow runs the job once, logging its outcome
func (s *Scheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.log.WithError(err).Error("Scheduled run failed")
		return
	}
	s.log.WithField("duration", time.Since(start).String()).Info("Scheduled run completed")
}

// Next returns the time of the upcoming run, zero before Start
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("Scheduler started, next run at %s", s.Next().Format(time.RFC3339))
}

// Stop prevents new runs and waits for a running one to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
