package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Marga-Ghale/bpo-console/internal/service"
)

// Purger drops expired in-process entries and reports how many went.
// The in-memory form store and dropdown cache implement it; their Redis
// counterparts expire on their own and are not registered.
type Purger interface {
	Purge() int
}

// PurgeFunc adapts a function to Purger.
type PurgeFunc func() int

func (f PurgeFunc) Purge() int { return f() }

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron      *cron.Cron
	activity  service.ActivityService
	retention time.Duration
	purgers   map[string]Purger
}

func NewScheduler(activity service.ActivityService, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		activity:  activity,
		retention: retention,
		purgers:   make(map[string]Purger),
	}
}

// Register adds an in-process store to the hourly sweep. Call before Start.
func (s *Scheduler) Register(name string, p Purger) {
	s.purgers[name] = p
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Every hour - expired form sessions, dropdown lists and idle limiters
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running in-memory sweep...")
		s.sweepMemory()
	})

	// Every day at 3 AM - activity log retention
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Running activity cleanup...")
		s.cleanupActivities()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) sweepMemory() {
	for name, p := range s.purgers {
		if n := p.Purge(); n > 0 {
			log.Printf("[Cron] Purged %d expired %s", n, name)
		}
	}
}

func (s *Scheduler) cleanupActivities() {
	if s.activity == nil || s.retention <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.activity.PurgeOlderThan(ctx, s.retention)
	if err != nil {
		log.Printf("[Cron] Error purging activities: %v", err)
		return
	}
	log.Printf("[Cron] Removed %d activities older than %s", n, s.retention)
}

// ManualTrigger runs a job immediately.
func (s *Scheduler) ManualTrigger(job string) {
	switch job {
	case "memory":
		s.sweepMemory()
	case "activities":
		s.cleanupActivities()
	case "all":
		s.sweepMemory()
		s.cleanupActivities()
	}
}
