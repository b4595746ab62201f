package board_test

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/geometry"
	"github.com/plus3/blockfall/piece"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(width, height int) *board.Board {
	b := board.New(width, height)
	b.SetLogger(zerolog.Nop())
	return b
}

func newPiece(v geometry.Variant, rot, x, y int) *piece.Piece {
	p := piece.New(v, color.RGBA{A: 255}, piece.Position{X: x, Y: y})
	p.Rotation = rot
	return p
}

func TestNewBoardPanicsOnBadDimensions(t *testing.T) {
	assert.Panics(t, func() { board.New(0, 10) })
	assert.Panics(t, func() { board.New(10, -1) })
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := newBoard(10, 20)

	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 20, b.Height())
	assert.Equal(t, 5, b.MidX())
	assert.Len(t, b.Cells(), 200)
	assert.NotContains(t, b.Cells(), true)
	assert.Equal(t, make([]int, 20), b.RowScores())
	assert.Equal(t, make([]int, 10), b.ColScores())
}

func TestTryPlaceOutOfBounds(t *testing.T) {
	b := newBoard(10, 20)

	tests := []struct {
		name string
		pos  piece.Position
	}{
		{"left", piece.Position{X: 0, Y: 5}},
		{"right", piece.Position{X: 8, Y: 5}},
		{"below", piece.Position{X: 5, Y: -1}},
		{"above", piece.Position{X: 5, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPiece(geometry.I, 0, 0, 0)
			assert.Equal(t, board.PlaceOutOfBounds, b.TryPlace(p, tt.pos))
		})
	}
}

func TestTryPlaceReportsBoundsBeforeOccupancy(t *testing.T) {
	b := newBoard(10, 20)
	require.Equal(t, board.PlaceOK, b.Fill(7, 0))

	// The first cell overlaps the filled one, the last cell leaves the grid.
	p := newPiece(geometry.I, 0, 0, 0)

	assert.Equal(t, board.PlaceOutOfBounds, b.TryPlace(p, piece.Position{X: 8, Y: 0}))
	assert.Equal(t, board.PlaceBlocked, b.TryPlace(p, piece.Position{X: 7, Y: 0}))
}

func TestTryPlaceBlocked(t *testing.T) {
	b := newBoard(10, 20)
	b.Fill(5, 3)

	p := newPiece(geometry.O, 0, 0, 0)
	assert.Equal(t, board.PlaceBlocked, b.TryPlace(p, piece.Position{X: 4, Y: 2}))
	assert.Equal(t, board.PlaceOK, b.TryPlace(p, piece.Position{X: 6, Y: 2}))
}

func TestTryPlaceDoesNotMutate(t *testing.T) {
	b := newBoard(4, 4)
	p := newPiece(geometry.I, 0, 1, 0)

	assert.Equal(t, board.PlaceOK, b.TryPlace(p, p.Position))
	assert.NotContains(t, b.Cells(), true)
	assert.Equal(t, []int{0, 0, 0, 0}, b.RowScores())
}

func TestPlaceResultLegal(t *testing.T) {
	assert.True(t, board.PlaceOK.Legal())
	assert.True(t, board.PlaceRowFilled.Legal())
	assert.False(t, board.PlaceOutOfBounds.Legal())
	assert.False(t, board.PlaceBlocked.Legal())
}

func TestPlaceResultString(t *testing.T) {
	tests := []struct {
		result board.PlaceResult
		want   string
	}{
		{board.PlaceOK, "ok"},
		{board.PlaceRowFilled, "row filled"},
		{board.PlaceOutOfBounds, "out of bounds"},
		{board.PlaceBlocked, "blocked"},
		{board.PlaceResult(9), "PlaceResult(9)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.result.String())
	}
}

func TestCommitSingleFullRow(t *testing.T) {
	b := newBoard(4, 6)

	rows := b.Commit(newPiece(geometry.I, 0, 1, 0))

	assert.Equal(t, []int{0}, rows)
	score, ok := b.RowScore(0)
	assert.True(t, ok)
	assert.Equal(t, 4, score)
}

func TestCommitWithoutFullRowIsEmpty(t *testing.T) {
	b := newBoard(10, 20)

	rows := b.Commit(newPiece(geometry.T, 0, 4, 0))

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCommitSeveralRowsAscending(t *testing.T) {
	b := newBoard(2, 5)

	rows := b.Commit(newPiece(geometry.O, 0, 0, 2))

	assert.Equal(t, []int{2, 3}, rows)
}

func TestCommitUpdatesColumnScores(t *testing.T) {
	b := newBoard(10, 20)

	b.Commit(newPiece(geometry.T, 0, 4, 0))
	assert.Equal(t, []int{0, 0, 0, 1, 2, 1, 0, 0, 0, 0}, b.ColScores())

	before := b.ColScores()
	b.Commit(newPiece(geometry.J, 0, 5, 2))
	after := b.ColScores()

	for x := 4; x <= 6; x++ {
		assert.GreaterOrEqual(t, after[x], before[x])
	}
	// J rotation 0 at (5,2) covers (4,3) (4,2) (5,2) (6,2).
	assert.Equal(t, 4, after[4])
	assert.Equal(t, 3, after[5])
	assert.Equal(t, 3, after[6])
}

func TestCommitDoesNotDoubleCount(t *testing.T) {
	b := newBoard(10, 20)
	b.Fill(4, 0)

	b.Commit(newPiece(geometry.I, 0, 5, 0))

	score, _ := b.RowScore(0)
	assert.Equal(t, 4, score)
}

func TestScoreLookupsOutOfRange(t *testing.T) {
	b := newBoard(10, 20)

	_, ok := b.RowScore(-1)
	assert.False(t, ok)
	_, ok = b.RowScore(20)
	assert.False(t, ok)
	_, ok = b.ColScore(10)
	assert.False(t, ok)
	_, ok = b.ColScore(-3)
	assert.False(t, ok)
}

func TestIsCellFilledOutOfRange(t *testing.T) {
	b := newBoard(3, 3)
	b.Fill(2, 2)

	assert.True(t, b.IsCellFilled(piece.Position{X: 2, Y: 2}))
	assert.False(t, b.IsCellFilled(piece.Position{X: 3, Y: 2}))
	assert.False(t, b.IsCellFilled(piece.Position{X: -1, Y: 0}))
}

func TestDropPositionEmptyBoard(t *testing.T) {
	b := newBoard(10, 20)

	p := newPiece(geometry.I, 0, 4, 19)
	assert.Equal(t, piece.Position{X: 4, Y: 0}, b.DropPosition(p))

	// Vertical I reaches two rows below its origin.
	p = newPiece(geometry.I, 1, 4, 17)
	assert.Equal(t, piece.Position{X: 4, Y: 2}, b.DropPosition(p))
}

func TestDropPositionOnStack(t *testing.T) {
	b := newBoard(10, 20)
	b.Fill(3, 0)
	b.Fill(3, 1)
	b.Fill(4, 0)

	p := newPiece(geometry.I, 0, 4, 19)
	assert.Equal(t, piece.Position{X: 4, Y: 2}, b.DropPosition(p))

	// Z rotation 0 overhangs on its left column.
	p = newPiece(geometry.Z, 0, 4, 18)
	assert.Equal(t, piece.Position{X: 4, Y: 1}, b.DropPosition(p))
}

// Hard drop and repeated gravity must agree for every piece above the stack.
func TestDropPositionMatchesIterativeGravity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	boards := map[string]func() *board.Board{
		"empty": func() *board.Board { return newBoard(10, 20) },
	}
	for n := range 5 {
		boards[fmt.Sprintf("random-%d", n)] = func() *board.Board {
			b := newBoard(10, 20)
			for range 40 {
				b.Fill(rng.IntN(10), rng.IntN(10))
			}
			return b
		}
	}

	for name, build := range boards {
		b := build()
		t.Run(name, func(t *testing.T) {
			for v := range geometry.Variant(geometry.VariantCount) {
				for rot := range geometry.RotationCount(v) {
					_, maxY := geometry.Height(v, rot)
					for x := -2; x < 12; x++ {
						p := newPiece(v, rot, x, 20-maxY-1)
						if b.TryPlace(p, p.Position) != board.PlaceOK {
							continue
						}

						direct := b.DropPosition(p)
						settled := b.SettlePosition(p)
						assert.Equal(t, settled, direct, "variant %s rot %d x %d", v, rot, x)
						assert.True(t, b.TryPlace(p, direct).Legal())
					}
				}
			}
		})
	}
}

func TestDropThenCommitMatchesGravityThenCommit(t *testing.T) {
	direct := newBoard(10, 20)
	stepped := newBoard(10, 20)
	rng := rand.New(rand.NewPCG(3, 5))

	for range 12 {
		v := geometry.Variant(rng.IntN(geometry.VariantCount))
		rot := rng.IntN(geometry.RotationCount(v))
		_, maxY := geometry.Height(v, rot)
		p := newPiece(v, rot, 1+rng.IntN(7), 20-maxY-1)
		if direct.TryPlace(p, p.Position) != board.PlaceOK {
			break
		}

		a := *p
		a.Position = direct.DropPosition(&a)
		direct.ClearRows(direct.Commit(&a))

		s := *p
		for stepped.TryPlace(&s, piece.Position{X: s.Position.X, Y: s.Position.Y - 1}).Legal() {
			s.Position.Y--
		}
		stepped.ClearRows(stepped.Commit(&s))

		require.Equal(t, a.Position, s.Position)
		require.Equal(t, stepped.Cells(), direct.Cells())
	}
}

func TestCenteredHorizontalPieceScenario(t *testing.T) {
	b := newBoard(10, 20)
	_, maxX := geometry.Extent(geometry.I, 0)
	_, maxY := geometry.Height(geometry.I, 0)
	p := newPiece(geometry.I, 0, b.MidX()-maxX/2, b.Height()-maxY-1)
	require.Equal(t, board.PlaceOK, b.TryPlace(p, p.Position))

	p.Position = b.DropPosition(p)
	assert.Equal(t, 0, p.Position.Y)

	rows := b.Commit(p)
	assert.Empty(t, rows)
	for x := range 10 {
		assert.Equal(t, x >= 3 && x <= 6, b.IsCellFilled(piece.Position{X: x, Y: 0}), "column %d", x)
	}
	score, _ := b.RowScore(0)
	assert.Equal(t, 4, score)
}

func TestLastCellCompletesRowScenario(t *testing.T) {
	b := newBoard(10, 20)

	assert.Empty(t, b.Commit(newPiece(geometry.I, 0, 1, 0)))
	assert.Empty(t, b.Commit(newPiece(geometry.I, 0, 5, 0)))
	assert.Empty(t, b.Commit(newPiece(geometry.I, 1, 8, 2)))

	score, _ := b.RowScore(0)
	require.Equal(t, 9, score)

	rows := b.Commit(newPiece(geometry.I, 1, 9, 2))
	assert.Contains(t, rows, 0)
	assert.Equal(t, []int{0}, rows)
}

func TestClearRowsShiftsStackDown(t *testing.T) {
	b := newBoard(4, 6)
	// Row 0 full, row 1 partial, row 2 full, row 3 single cell.
	for x := range 4 {
		b.Fill(x, 0)
		b.Fill(x, 2)
	}
	b.Fill(1, 1)
	b.Fill(3, 3)

	removed := b.ClearRows([]int{2, 0, 2, 9})

	assert.Equal(t, 2, removed)
	assert.True(t, b.IsCellFilled(piece.Position{X: 1, Y: 0}))
	assert.True(t, b.IsCellFilled(piece.Position{X: 3, Y: 1}))
	assert.Equal(t, []int{1, 1, 0, 0, 0, 0}, b.RowScores())
	assert.Equal(t, []int{0, 1, 0, 2}, b.ColScores())

	filled := 0
	for _, c := range b.Cells() {
		if c {
			filled++
		}
	}
	assert.Equal(t, 2, filled)
}

func TestClearRowsNothingToDo(t *testing.T) {
	b := newBoard(4, 6)
	b.Fill(0, 0)

	assert.Equal(t, 0, b.ClearRows(nil))
	assert.Equal(t, 0, b.ClearRows([]int{-1, 6}))
	assert.True(t, b.IsCellFilled(piece.Position{X: 0, Y: 0}))
}

func TestClearedRowsReopenSpace(t *testing.T) {
	b := newBoard(4, 6)
	b.Fill(0, 1)
	rows := b.Commit(newPiece(geometry.I, 0, 1, 0))
	require.Equal(t, []int{0}, rows)

	b.ClearRows(rows)

	assert.Equal(t, []int{1, 0, 0, 0}, b.ColScores())
	p := newPiece(geometry.I, 0, 1, 5)
	assert.Equal(t, piece.Position{X: 1, Y: 1}, b.DropPosition(p))
}
