package main

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

// bot presses random keys, weighted towards doing nothing.
type bot struct {
	rng *rand.Rand
}

func (b *bot) Action() game.Action {
	n := b.rng.IntN(20)
	switch {
	case n < 8:
		return game.ActionNone
	case n < 11:
		return game.ActionMoveLeft
	case n < 14:
		return game.ActionMoveRight
	case n < 16:
		return game.ActionRotate
	case n < 17:
		return game.ActionRotateCCW
	default:
		return game.ActionHardDrop
	}
}

// restarter resets a finished board once the tick's systems are done. It
// keeps the counters of every finished game.
type restarter struct {
	instance *game.Instance
	games    int
	totals   game.Stats
}

func (r *restarter) Execute(frame *loop.Frame) {
	if r.instance.Phase() != game.PhaseGameOver {
		return
	}
	stats := r.instance.Stats()
	r.games++
	r.totals.Spawned += stats.Spawned
	r.totals.Locked += stats.Locked
	r.totals.RowsCleared += stats.RowsCleared
	frame.Commands.Defer(r.instance.Reset)
}
