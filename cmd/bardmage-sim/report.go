package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/level"
)

type Report struct {
	// Configuration
	Level      string
	MatchID    string
	Characters int
	Step       time.Duration

	// Outcome
	Finished    bool
	Interrupted bool
	Winner      string
	Elapsed     time.Duration
	Survivors   []CharacterResult

	// Performance
	Frames        int
	WallTime      time.Duration
	UpdateTime    Stats
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type CharacterResult struct {
	Player    string
	Minion    bool
	Health    float64
	MaxHealth float64
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

// Finish records the match outcome and the state of every character.
func (r *Report) Finish(match *level.Match, world *level.World, stats *ecs.SchedulerStats) {
	r.Finished = match.Finished
	r.Elapsed = time.Duration(match.Elapsed * float64(time.Second))
	if match.Finished {
		r.Winner = match.Winner.String()
	}
	r.Frames = len(r.UpdateTime.Samples)
	r.Systems = stats.Systems

	for _, id := range world.Characters {
		player := ecs.ReadComponent[bardmage.Player](world.Storage, id)
		life := ecs.ReadComponent[bardmage.Life](world.Storage, id)
		if player == nil || life == nil {
			continue
		}
		r.Survivors = append(r.Survivors, CharacterResult{
			Player:    player.ID.String(),
			Minion:    ecs.ReadComponent[bardmage.Minion](world.Storage, id) != nil,
			Health:    life.Health,
			MaxHealth: life.MaxHealth,
		})
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Bardmage Match Report

## Match
- **Level:** {{.Level}}
- **Match ID:** {{.MatchID}}
- **Characters:** {{.Characters}}
- **Finished:** {{.Finished}}{{if .Interrupted}} (interrupted){{end}}
- **Winner:** {{if .Winner}}{{.Winner}}{{else}}none{{end}}
- **Simulated Time:** {{.Elapsed}}

## Characters
{{range .Survivors}}- {{.Player}}{{if .Minion}} (minion){{end}}: {{printf "%.1f" .Health}} / {{printf "%.1f" .MaxHealth}}
{{end}}
## Performance Results
- **Frames:** {{.Frames}} at {{.Step}} per frame
- **Wall Time:** {{.WallTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Memory Usage
- Heap Alloc:  {{.MemStatsStart.HeapAlloc | mb}} MB (start) -> {{.MemStatsEnd.HeapAlloc | mb}} MB (end)
- Total Alloc: {{.MemStatsStart.TotalAlloc | mb}} MB (start) -> {{.MemStatsEnd.TotalAlloc | mb}} MB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
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
