package game

import "image/color"

// DefaultColor is the cell color used when Params.Color is left zero.
var DefaultColor = color.RGBA{R: 130, G: 207, B: 240, A: 255}

// Params is the flat parameter set a board is built from. Times are seconds.
type Params struct {
	Width           int
	Height          int
	GravityInterval float64
	LockDelay       float64

	// CellSize and Color are carried for renderers; the game never reads them.
	CellSize float64
	Color    color.RGBA
}

// DefaultParams returns a standard 10x20 board.
func DefaultParams() Params {
	return Params{
		Width:           10,
		Height:          20,
		GravityInterval: 0.5,
		LockDelay:       0.5,
		CellSize:        30,
		Color:           DefaultColor,
	}
}

func (p Params) withDefaults() Params {
	if p.Color == (color.RGBA{}) {
		p.Color = DefaultColor
	}
	return p
}
