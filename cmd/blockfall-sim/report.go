package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Boards   int
	Seed     uint64
	Width    int
	Height   int

	// Results
	TotalTicks uint64
	TotalTime  time.Duration
	TickTime   Stats
	Games      int
	Totals     game.Stats
	GameOvers  int
	Systems    []loop.SystemStats
	Recorded   int

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Add folds one board's counters into the totals.
func (r *Report) Add(stats game.Stats, phase game.Phase) {
	r.Totals.Spawned += stats.Spawned
	r.Totals.Locked += stats.Locked
	r.Totals.RowsCleared += stats.RowsCleared
	if phase == game.PhaseGameOver {
		r.GameOvers++
	}
}

const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Boards:** {{.Boards}} ({{.Width}}x{{.Height}})
- **Seed:** {{.Seed}}

## Play
- **Ticks:** {{.TotalTicks}}
- **Games Finished:** {{.Games}}
- **Pieces Spawned:** {{.Totals.Spawned}}
- **Pieces Locked:** {{.Totals.Locked}}
- **Rows Cleared:** {{.Totals.RowsCleared}}
- **Boards Over At Exit:** {{.GameOvers}}
{{- if .Recorded}}
- **Frames Recorded:** {{.Recorded}}
{{- end}}

## Performance
- **Total Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{range .Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
