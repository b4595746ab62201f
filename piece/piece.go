// Package piece binds a catalog variant to a rotation, a color and an
// absolute board position.
package piece

import (
	"image/color"

	"github.com/plus3/blockfall/geometry"
)

// Position is an absolute board coordinate. Y grows upwards from the floor.
type Position struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Offset returns p moved by o.
func (p Position) Offset(o geometry.Offset) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Direction selects which way Rotate turns a piece.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

// Piece is a single falling piece. It never validates its own placement;
// that is the board's job.
type Piece struct {
	Variant  geometry.Variant
	Rotation int
	Position Position
	Color    color.RGBA
}

// New creates a piece at rotation 0.
func New(variant geometry.Variant, c color.RGBA, pos Position) *Piece {
	return &Piece{
		Variant:  variant,
		Color:    c,
		Position: pos,
	}
}

// Offsets returns the relative cells for the current rotation.
func (p *Piece) Offsets() [4]geometry.Offset {
	return geometry.Cells(p.Variant, p.Rotation)
}

// Cells returns the absolute cells at the piece's current position.
func (p *Piece) Cells() [4]Position {
	return p.CellsAt(p.Position)
}

// CellsAt returns the absolute cells the piece would occupy with its origin at pos.
func (p *Piece) CellsAt(pos Position) [4]Position {
	var cells [4]Position
	for i, o := range p.Offsets() {
		cells[i] = pos.Offset(o)
	}
	return cells
}

// Rotate advances the rotation index in the given direction and returns it.
func (p *Piece) Rotate(dir Direction) int {
	count := geometry.RotationCount(p.Variant)
	switch dir {
	case Clockwise:
		p.Rotation = (p.Rotation + 1) % count
	case CounterClockwise:
		p.Rotation = (p.Rotation + count - 1) % count
	}
	return p.Rotation
}
