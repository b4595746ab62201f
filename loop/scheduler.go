// Package loop drives systems once per simulation tick.
package loop

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type timing struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *timing) observe(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	t.min = min(t.min, d)
	t.max = max(t.max, d)
}

// Scheduler executes registered systems in registration order.
type Scheduler struct {
	systems  []System
	timings  []*timing
	commands *Commands
	tick     uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register adds a system, named after its type in stats.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.RegisterNamed(t.Name(), system)
}

// RegisterNamed adds a system under an explicit stats name. Use this when
// several systems share a type, one per board for example.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &timing{
		name: name,
		min:  time.Duration(1<<63 - 1),
	})
}

// Tick returns how many ticks have completed.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Once executes all registered systems once with dt seconds of elapsed time,
// then flushes deferred commands.
func (s *Scheduler) Once(dt float64) {
	frame := newFrame(s.tick, dt, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].observe(time.Since(start))
	}

	s.commands.Flush()
	s.tick++
}

// Run executes all systems at the given interval until ctx is cancelled.
// Each tick receives the wall time elapsed since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.timings)),
	}

	for i, t := range s.timings {
		var avg time.Duration
		if t.count > 0 {
			avg = t.total / time.Duration(t.count)
		}

		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.count,
			MinDuration:    t.min,
			MaxDuration:    t.max,
			AvgDuration:    avg,
			LastDuration:   t.last,
			TotalDuration:  t.total,
		}
		stats.TotalExecutions += t.count
	}

	return stats
}
