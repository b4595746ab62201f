package game

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/piece"
)

// MutableBoard exposes the owned board so tests can build stacks.
func (i *Instance) MutableBoard() *board.Board {
	return i.board
}

// PlaceActive installs p as the active piece and switches to phase.
func (i *Instance) PlaceActive(p *piece.Piece, phase Phase) {
	i.active = p
	i.phase = phase
}
