// Package game runs one playable board: it spawns pieces, applies gravity,
// player actions and the lock delay, and clears completed rows.
//
// An Instance is advanced by calling Update once per tick. It does no I/O
// and keeps no hidden randomness; the caller passes a Source to every tick.
package game

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/geometry"
	"github.com/plus3/blockfall/piece"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Source picks uniformly among n values. *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Timers is the pair of accumulators the phase machine runs on.
type Timers struct {
	Gravity float64 `json:"gravity" msgpack:"gravity"`
	Lock    float64 `json:"lock" msgpack:"lock"`
}

// Stats counts what happened on a board since it was created or reset.
type Stats struct {
	Spawned     int `json:"spawned" msgpack:"spawned"`
	Locked      int `json:"locked" msgpack:"locked"`
	RowsCleared int `json:"rows_cleared" msgpack:"rows_cleared"`
}

type pauseState struct {
	phase  Phase
	timers Timers
}

// Instance is one board and the state machine that plays it.
type Instance struct {
	id     string
	params Params
	log    zerolog.Logger

	board  *board.Board
	phase  Phase
	paused *pauseState
	active *piece.Piece
	timers Timers
	stats  Stats
}

// New creates a board in the Ready phase.
func New(id string, params Params) *Instance {
	i := &Instance{
		id:     id,
		params: params.withDefaults(),
		log:    log.Logger.With().Str("board", id).Logger(),
	}
	i.Reset()
	return i
}

// SetLogger replaces the logger for the instance and its board.
func (i *Instance) SetLogger(l zerolog.Logger) {
	i.log = l.With().Str("board", i.id).Logger()
	i.board.SetLogger(i.log)
}

// Reset replaces the board with an empty one and returns to Ready.
func (i *Instance) Reset() {
	i.board = board.New(i.params.Width, i.params.Height)
	i.board.SetLogger(i.log)
	i.phase = PhaseReady
	i.paused = nil
	i.active = nil
	i.timers = Timers{}
	i.stats = Stats{}
}

// Update advances the board by dt seconds, applying action if the current
// phase accepts input. rng is consulted only when a piece spawns.
func (i *Instance) Update(dt float64, action Action, rng Source) {
	switch i.phase {
	case PhaseReady:
		if i.spawn(rng) {
			i.phase = PhaseFalling
		} else {
			i.phase = PhaseGameOver
			i.log.Info().Int("spawned", i.stats.Spawned).Int("rows_cleared", i.stats.RowsCleared).Msg("game over")
		}

	case PhaseFalling:
		if i.handle(action) {
			return
		}

		i.timers.Gravity += dt
		if i.timers.Gravity >= i.params.GravityInterval {
			i.timers.Gravity = 0
			if !i.fall() {
				i.phase = PhaseLocking
			}
		}

	case PhaseLocking:
		i.handle(action)
		if i.phase == PhasePaused {
			return
		}

		// A move during the grace window may have opened space below.
		if i.fall() {
			i.timers = Timers{}
			i.phase = PhaseFalling
			return
		}

		i.timers.Lock += dt
		if i.timers.Lock >= i.params.LockDelay {
			i.timers.Lock = 0
			i.lock()
			i.phase = PhaseReady
		}

	case PhaseGameOver:

	case PhasePaused:
		if action == ActionTogglePause {
			i.togglePause()
		}
	}
}

func (i *Instance) spawn(rng Source) bool {
	variant := geometry.Variant(rng.IntN(geometry.VariantCount))
	_, maxX := geometry.Extent(variant, 0)
	_, maxY := geometry.Height(variant, 0)

	pos := piece.Position{
		X: i.board.MidX() - maxX/2,
		Y: i.board.Height() - maxY - 1,
	}
	p := piece.New(variant, i.params.Color, pos)

	if !i.board.TryPlace(p, pos).Legal() {
		return false
	}

	i.active = p
	i.stats.Spawned++
	i.log.Debug().Stringer("variant", variant).Int("x", pos.X).Int("y", pos.Y).Msg("spawned piece")
	return true
}

func (i *Instance) lock() {
	p := i.active
	i.active = nil
	if p == nil {
		return
	}

	rows := i.board.Commit(p)
	i.stats.Locked++
	if len(rows) > 0 {
		cleared := i.board.ClearRows(rows)
		i.stats.RowsCleared += cleared
		i.log.Debug().Ints("rows", rows).Msg("cleared rows")
	}
}

// fall moves the active piece one row down if it fits.
func (i *Instance) fall() bool {
	if i.active == nil {
		return false
	}
	return i.moveTo(piece.Position{X: i.active.Position.X, Y: i.active.Position.Y - 1})
}

func (i *Instance) moveTo(pos piece.Position) bool {
	if i.active == nil || !i.board.TryPlace(i.active, pos).Legal() {
		return false
	}
	i.active.Position = pos
	return true
}

// handle applies a player action and reports whether it changed the phase.
func (i *Instance) handle(action Action) bool {
	before := i.phase

	switch action {
	case ActionMoveLeft:
		if i.active != nil {
			i.moveTo(piece.Position{X: i.active.Position.X - 1, Y: i.active.Position.Y})
		}
	case ActionMoveRight:
		if i.active != nil {
			i.moveTo(piece.Position{X: i.active.Position.X + 1, Y: i.active.Position.Y})
		}
	case ActionRotate:
		i.rotate(piece.Clockwise)
	case ActionRotateCCW:
		i.rotate(piece.CounterClockwise)
	case ActionHardDrop:
		i.hardDrop()
	case ActionTogglePause:
		i.togglePause()
	}

	return i.phase != before
}

// rotate turns the active piece in place and reverts if the result does not fit.
func (i *Instance) rotate(dir piece.Direction) {
	p := i.active
	if p == nil {
		return
	}

	prev := p.Rotation
	p.Rotate(dir)
	if !i.board.TryPlace(p, p.Position).Legal() {
		p.Rotation = prev
	}
}

func (i *Instance) hardDrop() {
	p := i.active
	if p == nil {
		return
	}

	target := i.board.DropPosition(p)
	// A piece tucked under an overhang sits below its columns' tops.
	if target.Y > p.Position.Y || !i.board.TryPlace(p, target).Legal() {
		target = i.board.SettlePosition(p)
	}

	p.Position = target
	i.phase = PhaseLocking
}

func (i *Instance) togglePause() {
	if i.phase == PhasePaused {
		i.phase = PhaseReady
		if i.paused != nil {
			i.phase = i.paused.phase
			i.timers = i.paused.timers
			i.paused = nil
		}
		i.log.Debug().Stringer("phase", i.phase).Msg("resumed")
		return
	}

	i.paused = &pauseState{phase: i.phase, timers: i.timers}
	i.phase = PhasePaused
	i.log.Debug().Stringer("phase", i.paused.phase).Msg("paused")
}

// ID returns the identifier the instance was created with.
func (i *Instance) ID() string { return i.id }

// Phase returns the current phase.
func (i *Instance) Phase() Phase { return i.phase }

// Params returns the parameters the instance was created with.
func (i *Instance) Params() Params { return i.params }

// Board returns a read-only view of the grid.
func (i *Instance) Board() board.Reader { return i.board }

// Timers returns the current gravity and lock accumulators.
func (i *Instance) Timers() Timers { return i.timers }

// Stats returns counters since creation or the last Reset.
func (i *Instance) Stats() Stats { return i.stats }

// ActivePiece returns a copy of the falling piece, if there is one.
func (i *Instance) ActivePiece() (piece.Piece, bool) {
	if i.active == nil {
		return piece.Piece{}, false
	}
	return *i.active, true
}

// SavedPhase returns the phase a paused board resumes into.
func (i *Instance) SavedPhase() (Phase, bool) {
	if i.paused == nil {
		return PhaseReady, false
	}
	return i.paused.phase, true
}
