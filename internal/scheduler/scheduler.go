package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the analysis on a cron schedule (watch mode).
type Scheduler struct {
	Cron *cron.Cron
}

// New registers job on the given cron spec (with seconds field).
func New(spec string, job func()) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("register refresh task: %w", err)
	}
	return &Scheduler{Cron: c}, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
