package debugui

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemDefersPanelsUntilFlush(t *testing.T) {
	var order []string
	sys := NewSystem(
		PanelFunc(func(*loop.Frame) { order = append(order, "first") }),
		PanelFunc(func(*loop.Frame) { order = append(order, "second") }),
	)
	sys.Capture = func() InputState { return InputState{WantCaptureKeyboard: true} }

	sched := loop.NewScheduler()
	sched.Register(sys)
	sched.Register(loop.SystemFunc(func(*loop.Frame) { order = append(order, "after") }))
	sched.Once(0.016)

	assert.Equal(t, []string{"after", "first", "second"}, order)
	assert.True(t, sys.Input.WantCaptureKeyboard)
	assert.False(t, sys.Input.WantCaptureMouse)
}

func TestSystemPassesFrameToPanels(t *testing.T) {
	var ticks []uint64
	sys := NewSystem()
	sys.Capture = func() InputState { return InputState{} }
	sys.Add(PanelFunc(func(f *loop.Frame) { ticks = append(ticks, f.Tick) }))

	sched := loop.NewScheduler()
	sched.Register(sys)
	sched.Once(0.016)
	sched.Once(0.016)

	assert.Equal(t, []uint64{0, 1}, ticks)
}

func TestHistoryAverage(t *testing.T) {
	h := newHistory(3)
	assert.Equal(t, float32(0), h.average())

	h.push(10)
	assert.Equal(t, float32(10), h.average(), "unfilled slots do not count")

	h.push(20)
	h.push(30)
	h.push(40)
	assert.Equal(t, []float32{40, 20, 30}, h.samples)
	assert.Equal(t, float32(30), h.average())
}

func TestColumnHeights(t *testing.T) {
	snap := game.Snapshot{ColScores: []int{0, 3, 1}}

	buf := columnHeights(snap, nil)
	require.Len(t, buf, 3)
	assert.Equal(t, []float32{0, 3, 1}, buf)

	snap.ColScores = []int{5, 2}
	again := columnHeights(snap, buf)
	assert.Equal(t, []float32{5, 2}, again)
	assert.Same(t, &buf[0], &again[0])
}

func TestSchedulerStatsSamplesWallTime(t *testing.T) {
	ps := NewSchedulerStats(loop.NewScheduler(), 4)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ps.sample(start)
	assert.Equal(t, float32(0), ps.frames.average(), "the first sample has nothing to measure against")

	ps.sample(start.Add(10 * time.Millisecond))
	ps.sample(start.Add(40 * time.Millisecond))

	assert.Equal(t, []float32{10, 30, 0, 0}, ps.frames.samples)
	assert.InDelta(t, 20, ps.frames.average(), 1e-4)
}
