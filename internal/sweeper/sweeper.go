// Package sweeper drives periodic removal of expired session records. The
// session store never sweeps on its own; this is the external timer that
// calls it.
package sweeper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/tgifai/sessiond/internal/pkg/logs"
)

const DefaultSchedule = "@every 1m"

// Cleaner is anything that can drop its expired entries.
type Cleaner interface {
	Cleanup() int
}

type Sweeper struct {
	target   Cleaner
	schedule string

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	// done is closed by Stop so the ctx watcher of the current run exits.
	done chan struct{}
}

// New validates schedule (a 5-field cron expression or a descriptor such as
// "@every 30s") and returns an idle sweeper.
func New(target Cleaner, schedule string) (*Sweeper, error) {
	if target == nil {
		return nil, fmt.Errorf("sweeper target cannot be nil")
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", schedule, err)
	}
	return &Sweeper{target: target, schedule: schedule}, nil
}

func (s *Sweeper) Schedule() string {
	return s.schedule
}

// RunOnce sweeps immediately and returns the number of removed records.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	removed := s.target.Cleanup()
	if removed > 0 {
		logs.CtxInfo(ctx, "[sweeper] removed %d expired session(s)", removed)
	} else {
		logs.CtxDebug(ctx, "[sweeper] nothing to remove")
	}
	return removed
}

// Start schedules sweeps until Stop is called or ctx is done.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return fmt.Errorf("sweeper already started")
	}

	c := cron.New()
	id, err := c.AddFunc(s.schedule, func() { s.RunOnce(ctx) })
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	done := make(chan struct{})
	s.cron = c
	s.entryID = id
	s.done = done
	c.Start()

	go func() {
		select {
		case <-ctx.Done():
			s.stop(done)
		case <-done:
		}
	}()

	logs.CtxInfo(ctx, "[sweeper] started, schedule=%s", s.schedule)
	return nil
}

// Stop halts scheduling and waits for a running sweep to return.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	s.stop(done)
}

// stop tears down the run owning done. A stale watcher from an earlier run
// finds a different done and leaves the current cron alone.
func (s *Sweeper) stop(done chan struct{}) {
	s.mu.Lock()
	if s.cron == nil || s.done != done {
		s.mu.Unlock()
		return
	}
	c := s.cron
	s.cron = nil
	s.done = nil
	close(done)
	s.mu.Unlock()

	<-c.Stop().Done()
	logs.Info("[sweeper] stopped")
}
