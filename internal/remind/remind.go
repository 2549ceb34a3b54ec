// Package remind nudges the user to record the day's observation.
package remind

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/idilsaglam/crms/internal/cycle"
	"github.com/idilsaglam/crms/internal/model"
)

// Reminder is what gets shown when today has no observation yet.
type Reminder struct {
	Date     model.Date
	CycleDay int
	Phase    cycle.Phase
}

func (r Reminder) Message() string {
	return fmt.Sprintf("No observation recorded for %s (cycle day %d, %s). Run `crms add today <type>`.",
		r.Date, r.CycleDay, r.Phase)
}

// Check returns a reminder when nothing is recorded for today.
func Check(obs []model.Observation, today model.Date) (Reminder, bool) {
	if _, ok := cycle.ObservationFor(obs, today); ok {
		return Reminder{}, false
	}
	return Reminder{
		Date:     today,
		CycleDay: cycle.CurrentCycleDay(obs, today),
		Phase:    cycle.CurrentPhase(obs, today),
	}, true
}

// ParseSchedule validates a standard 5-field cron spec.
func ParseSchedule(spec string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

// Scheduler runs job on a cron schedule.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	schedule cron.Schedule
	spec     string
	log      *zap.Logger
	running  bool
}

// New validates spec and registers job. Nothing runs until Start.
func New(spec string, job func(), logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sched, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		logger.Debug("reminder check", zap.String("schedule", spec))
		job()
	}); err != nil {
		return nil, fmt.Errorf("register reminder: %w", err)
	}
	return &Scheduler{cron: c, schedule: sched, spec: spec, log: logger}, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.log.Info("reminder scheduler started", zap.String("schedule", s.spec))
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.log.Info("reminder scheduler stopped")
}

// Next is the first run time after now.
func (s *Scheduler) Next(now time.Time) time.Time {
	return s.schedule.Next(now)
}
