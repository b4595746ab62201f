package board

import "github.com/plus3/blockfall/piece"

// Fill sets a single cell through the same path Commit uses.
// This is used by tests to build arbitrary stacks.
func (b *Board) Fill(x, y int) PlaceResult {
	return b.fill(piece.Position{X: x, Y: y})
}
