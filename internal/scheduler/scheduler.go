package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Job is the unit of work the scheduler runs on each tick.
type Job func(ctx context.Context) error

// Scheduler runs a job on a fixed interval. Ticks that arrive while a
// run is still in flight are skipped, so at most one run executes at a
// time.
type Scheduler struct {
	name     string
	interval time.Duration
	job      Job
	inFlight atomic.Bool
	done     chan struct{}
}

func New(name string, interval time.Duration, job Job) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		job:      job,
		done:     make(chan struct{}),
	}
}

// Start runs the ticker loop until ctx is cancelled. It returns
// immediately; the loop runs on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("[SCHEDULER] %s started, interval %s", s.name, s.interval)

		for {
			select {
			case <-ctx.Done():
				log.Printf("[SCHEDULER] %s stopped", s.name)
				return
			case <-ticker.C:
				s.RunNow(ctx)
			}
		}
	}()
}

// Wait blocks until the scheduler loop has exited.
func (s *Scheduler) Wait() {
	<-s.done
}

// RunNow executes the job unless a run is already in flight, in which
// case the invocation is dropped.
func (s *Scheduler) RunNow(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Printf("[SCHEDULER] %s run skipped, previous run still in flight", s.name)
		return
	}
	defer s.inFlight.Store(false)

	if err := s.job(ctx); err != nil {
		log.Printf("[SCHEDULER] %s run failed: %v", s.name, err)
	}
}
