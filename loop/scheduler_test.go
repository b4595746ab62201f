package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockfall/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CountingSystem struct {
	ExecuteCount int
	Elapsed      float64
	Ticks        []uint64
}

func (s *CountingSystem) Execute(frame *loop.Frame) {
	s.ExecuteCount++
	s.Elapsed += frame.DeltaTime
	s.Ticks = append(s.Ticks, frame.Tick)
}

type OrderSystem struct {
	Name string
	Log  *[]string
}

func (s *OrderSystem) Execute(frame *loop.Frame) {
	*s.Log = append(*s.Log, s.Name)
	frame.Commands.Defer(func() {
		*s.Log = append(*s.Log, "deferred "+s.Name)
	})
}

func TestScheduler(t *testing.T) {
	t.Run("system execution and elapsed time", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		counter := &CountingSystem{}
		scheduler.Register(counter)

		scheduler.Once(0.5)
		scheduler.Once(0.25)

		assert.Equal(t, 2, counter.ExecuteCount)
		assert.InDelta(t, 0.75, counter.Elapsed, 1e-9)
		assert.Equal(t, []uint64{0, 1}, counter.Ticks)
		assert.Equal(t, uint64(2), scheduler.Tick())
	})

	t.Run("registration order and deferred commands", func(t *testing.T) {
		var log []string
		scheduler := loop.NewScheduler()
		scheduler.Register(&OrderSystem{Name: "first", Log: &log})
		scheduler.Register(&OrderSystem{Name: "second", Log: &log})

		scheduler.Once(1.0 / 60)

		assert.Equal(t, []string{"first", "second", "deferred first", "deferred second"}, log)

		log = log[:0]
		scheduler.Once(1.0 / 60)
		assert.Len(t, log, 4, "deferred commands must not carry over between ticks")
	})

	t.Run("system func", func(t *testing.T) {
		calls := 0
		scheduler := loop.NewScheduler()
		scheduler.RegisterNamed("func", loop.SystemFunc(func(*loop.Frame) { calls++ }))

		scheduler.Once(1)

		assert.Equal(t, 1, calls)
		assert.Equal(t, "func", scheduler.Stats().Systems[0].Name)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		counter := &CountingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after cancellation")
		}

		assert.Greater(t, counter.ExecuteCount, 0)
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := loop.NewScheduler()
	scheduler.Register(&CountingSystem{})
	scheduler.RegisterNamed("board-1", &CountingSystem{})

	for range 3 {
		scheduler.Once(0.1)
	}

	stats := scheduler.Stats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(3), stats.Ticks)
	assert.Equal(t, int64(6), stats.TotalExecutions)

	assert.Equal(t, "CountingSystem", stats.Systems[0].Name)
	assert.Equal(t, "board-1", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
	}
}

func TestCommandsFlushNested(t *testing.T) {
	scheduler := loop.NewScheduler()
	var order []int
	scheduler.RegisterNamed("nested", loop.SystemFunc(func(frame *loop.Frame) {
		frame.Commands.Defer(func() {
			order = append(order, 1)
			frame.Commands.Defer(func() { order = append(order, 2) })
		})
	}))

	scheduler.Once(0)

	assert.Equal(t, []int{1, 2}, order)
}
