// Package board models the cell grid that pieces lock into.
//
// The grid is row-major with y = 0 at the floor. Alongside occupancy the
// board keeps two aggregates that are updated as cells fill: the number of
// filled cells per row, and one past the highest filled y per column.
package board

import (
	"slices"

	"github.com/plus3/blockfall/geometry"
	"github.com/plus3/blockfall/piece"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=PlaceResult -linecomment -output=placeresult_string.go

// PlaceResult is the outcome of testing or filling cells.
type PlaceResult uint8

const (
	PlaceOK PlaceResult = iota // ok
	// PlaceRowFilled reports that filling a cell completed its row. Only
	// Commit produces it; TryPlace never mutates row scores.
	PlaceRowFilled   // row filled
	PlaceOutOfBounds // out of bounds
	PlaceBlocked     // blocked
)

// Legal reports whether the placement can go ahead.
func (r PlaceResult) Legal() bool {
	return r == PlaceOK || r == PlaceRowFilled
}

// Reader is the read-only view handed to renderers and telemetry.
type Reader interface {
	Width() int
	Height() int
	IsCellFilled(pos piece.Position) bool
	RowScore(y int) (int, bool)
	ColScore(x int) (int, bool)
	Cells() []bool
	RowScores() []int
	ColScores() []int
}

// Board is a fixed-size grid of filled cells.
type Board struct {
	width  int
	height int

	grid     []bool
	rowScore []int
	colScore []int

	log zerolog.Logger
}

var _ Reader = (*Board)(nil)

// New creates an empty board. Non-positive dimensions panic.
func New(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic("board: dimensions must be positive")
	}
	return &Board{
		width:    width,
		height:   height,
		grid:     make([]bool, width*height),
		rowScore: make([]int, height),
		colScore: make([]int, width),
		log:      log.Logger,
	}
}

// SetLogger replaces the logger used for diagnostics.
func (b *Board) SetLogger(l zerolog.Logger) {
	b.log = l
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// MidX is the horizontal midpoint, rounded down.
func (b *Board) MidX() int {
	return b.width / 2
}

func (b *Board) idx(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// TryPlace checks whether p fits with its origin at pos. Bounds are checked
// for every cell before occupancy, so OutOfBounds wins over Blocked.
func (b *Board) TryPlace(p *piece.Piece, pos piece.Position) PlaceResult {
	cells := p.CellsAt(pos)
	for _, c := range cells {
		if _, ok := b.idx(c.X, c.Y); !ok {
			return PlaceOutOfBounds
		}
	}
	for _, c := range cells {
		if b.IsCellFilled(c) {
			return PlaceBlocked
		}
	}
	return PlaceOK
}

// Commit fills the cells of a piece that already passed TryPlace and
// returns the rows it completed, in ascending order. The result is empty
// when no row was completed.
func (b *Board) Commit(p *piece.Piece) []int {
	filled := []int{}
	for _, c := range p.Cells() {
		switch b.fill(c) {
		case PlaceRowFilled:
			filled = append(filled, c.Y)
		case PlaceOutOfBounds:
			b.log.Warn().Int("x", c.X).Int("y", c.Y).Msg("commit outside the grid")
		case PlaceBlocked:
			b.log.Warn().Int("x", c.X).Int("y", c.Y).Msg("commit over a filled cell")
		}
	}
	slices.Sort(filled)
	return filled
}

func (b *Board) fill(pos piece.Position) PlaceResult {
	i, ok := b.idx(pos.X, pos.Y)
	if !ok {
		return PlaceOutOfBounds
	}
	if b.grid[i] {
		return PlaceBlocked
	}

	b.grid[i] = true
	b.colScore[pos.X] = max(b.colScore[pos.X], pos.Y+1)
	b.rowScore[pos.Y]++

	if b.rowScore[pos.Y] == b.width {
		return PlaceRowFilled
	}
	return PlaceOK
}

// DropPosition returns the lowest legal origin for p at its current x and
// rotation, computed from the column heights under the piece. It matches
// repeated one-row gravity whenever the piece starts above the stack.
func (b *Board) DropPosition(p *piece.Piece) piece.Position {
	skirt := geometry.Skirt(p.Variant, p.Rotation)
	minX, _ := geometry.Extent(p.Variant, p.Rotation)

	y := 0
	for i, low := range skirt {
		x := p.Position.X + minX + i
		if x < 0 || x >= b.width {
			continue
		}
		// An empty column has height 0, which rests the skirt on the floor.
		y = max(y, b.colScore[x]-low)
	}

	return piece.Position{X: p.Position.X, Y: y}
}

// SettlePosition walks p down one row at a time from its current position
// until the next row is not legal.
func (b *Board) SettlePosition(p *piece.Piece) piece.Position {
	pos := p.Position
	for {
		next := piece.Position{X: pos.X, Y: pos.Y - 1}
		if !b.TryPlace(p, next).Legal() {
			return pos
		}
		pos = next
	}
}

// ClearRows removes the given rows, drops everything above them and
// recomputes both aggregates. Out-of-range and repeated rows are ignored.
// It returns how many rows were removed.
func (b *Board) ClearRows(rows []int) int {
	gone := make([]bool, b.height)
	removed := 0
	for _, y := range rows {
		if y < 0 || y >= b.height || gone[y] {
			continue
		}
		gone[y] = true
		removed++
	}
	if removed == 0 {
		return 0
	}

	dst := 0
	for y := range b.height {
		if gone[y] {
			continue
		}
		if dst != y {
			copy(b.grid[dst*b.width:(dst+1)*b.width], b.grid[y*b.width:(y+1)*b.width])
		}
		dst++
	}
	clear(b.grid[dst*b.width:])

	b.rescore()
	return removed
}

func (b *Board) rescore() {
	for y := range b.height {
		n := 0
		for _, filled := range b.grid[y*b.width : (y+1)*b.width] {
			if filled {
				n++
			}
		}
		b.rowScore[y] = n
	}

	for x := range b.width {
		b.colScore[x] = 0
		for y := b.height - 1; y >= 0; y-- {
			if b.grid[y*b.width+x] {
				b.colScore[x] = y + 1
				break
			}
		}
	}
}

// IsCellFilled reports occupancy. Positions outside the grid are empty.
func (b *Board) IsCellFilled(pos piece.Position) bool {
	i, ok := b.idx(pos.X, pos.Y)
	return ok && b.grid[i]
}

// RowScore returns the filled cell count of row y.
func (b *Board) RowScore(y int) (int, bool) {
	if y < 0 || y >= b.height {
		b.log.Warn().Int("y", y).Msg("row score out of bounds")
		return 0, false
	}
	return b.rowScore[y], true
}

// ColScore returns one past the highest filled y of column x.
func (b *Board) ColScore(x int) (int, bool) {
	if x < 0 || x >= b.width {
		b.log.Warn().Int("x", x).Msg("column score out of bounds")
		return 0, false
	}
	return b.colScore[x], true
}

// Cells returns a copy of the occupancy grid.
func (b *Board) Cells() []bool {
	return slices.Clone(b.grid)
}

// RowScores returns a copy of the per-row fill counts.
func (b *Board) RowScores() []int {
	return slices.Clone(b.rowScore)
}

// ColScores returns a copy of the per-column heights.
func (b *Board) ColScores() []int {
	return slices.Clone(b.colScore)
}
