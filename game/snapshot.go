package game

import (
	"image/color"

	"github.com/plus3/blockfall/geometry"
	"github.com/plus3/blockfall/piece"
)

// PieceView is the renderable part of an active piece.
type PieceView struct {
	Variant  geometry.Variant  `json:"variant" msgpack:"variant"`
	Rotation int               `json:"rotation" msgpack:"rotation"`
	Position piece.Position    `json:"position" msgpack:"position"`
	Cells    [4]piece.Position `json:"cells" msgpack:"cells"`
	Color    color.RGBA        `json:"color" msgpack:"color"`
}

// Snapshot is a self-contained copy of everything an observer may read.
// Mutating it never affects the instance.
type Snapshot struct {
	ID        string     `json:"id" msgpack:"id"`
	Phase     Phase      `json:"phase" msgpack:"phase"`
	Width     int        `json:"width" msgpack:"width"`
	Height    int        `json:"height" msgpack:"height"`
	Cells     []bool     `json:"cells" msgpack:"cells"`
	RowScores []int      `json:"row_scores" msgpack:"row_scores"`
	ColScores []int      `json:"col_scores" msgpack:"col_scores"`
	Piece     *PieceView `json:"piece,omitempty" msgpack:"piece,omitempty"`
	Timers    Timers     `json:"timers" msgpack:"timers"`
	Stats     Stats      `json:"stats" msgpack:"stats"`
}

// Filled reports whether the board cell at (x, y) is occupied.
func (s Snapshot) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return false
	}
	return s.Cells[y*s.Width+x]
}

// Snapshot copies the observable state.
func (i *Instance) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        i.id,
		Phase:     i.phase,
		Width:     i.board.Width(),
		Height:    i.board.Height(),
		Cells:     i.board.Cells(),
		RowScores: i.board.RowScores(),
		ColScores: i.board.ColScores(),
		Timers:    i.timers,
		Stats:     i.stats,
	}

	if p := i.active; p != nil {
		snap.Piece = &PieceView{
			Variant:  p.Variant,
			Rotation: p.Rotation,
			Position: p.Position,
			Cells:    p.Cells(),
			Color:    p.Color,
		}
	}

	return snap
}
