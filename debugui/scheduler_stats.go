package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// SchedulerStats shows measured frame times and per-system timings.
type SchedulerStats struct {
	scheduler *loop.Scheduler
	frames    *history
	last      time.Time
}

func NewSchedulerStats(scheduler *loop.Scheduler, historyFrames int) *SchedulerStats {
	return &SchedulerStats{
		scheduler: scheduler,
		frames:    newHistory(historyFrames),
	}
}

// sample records the wall time since the previous sample in milliseconds.
func (ps *SchedulerStats) sample(now time.Time) {
	if !ps.last.IsZero() {
		ps.frames.push(float32(now.Sub(ps.last).Seconds() * 1000.0))
	}
	ps.last = now
}

func (ps *SchedulerStats) Render(frame *loop.Frame) {
	ps.sample(time.Now())

	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.scheduler.Stats()

	imgui.Text(fmt.Sprintf("Tick: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
	imgui.Text(fmt.Sprintf("Executions: %d", stats.TotalExecutions))

	avg := ps.frames.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frames.samples[0], int32(len(ps.frames.samples)))

	if imgui.TreeNodeStr("System Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
