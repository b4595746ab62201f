package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/game"
)

var (
	wellColor   = color.RGBA{24, 26, 32, 255}
	gridColor   = color.RGBA{44, 48, 58, 255}
	borderColor = color.RGBA{200, 200, 210, 255}
)

// renderer draws a board snapshot with row 0 at the bottom of the well.
type renderer struct {
	cell    float32
	originX float32
	originY float32
	color   color.RGBA
}

func newRenderer(cellSize float64, clr color.RGBA) *renderer {
	return &renderer{
		cell:    float32(cellSize),
		originX: 20,
		originY: 20,
		color:   clr,
	}
}

// cellOrigin returns the top-left screen corner of board cell (x, y).
func (r *renderer) cellOrigin(height, x, y int) (float32, float32) {
	sx := r.originX + float32(x)*r.cell
	sy := r.originY + float32(height-1-y)*r.cell
	return sx, sy
}

func (r *renderer) draw(screen *ebiten.Image, snap game.Snapshot) {
	w := float32(snap.Width) * r.cell
	h := float32(snap.Height) * r.cell

	vector.DrawFilledRect(screen, r.originX, r.originY, w, h, wellColor, false)

	locked := shade(r.color, 0.7)
	for y := range snap.Height {
		for x := range snap.Width {
			sx, sy := r.cellOrigin(snap.Height, x, y)
			if snap.Filled(x, y) {
				vector.DrawFilledRect(screen, sx+1, sy+1, r.cell-2, r.cell-2, locked, false)
			} else {
				vector.StrokeRect(screen, sx, sy, r.cell, r.cell, 1, gridColor, false)
			}
		}
	}

	if p := snap.Piece; p != nil {
		for _, c := range p.Cells {
			sx, sy := r.cellOrigin(snap.Height, c.X, c.Y)
			vector.DrawFilledRect(screen, sx+1, sy+1, r.cell-2, r.cell-2, p.Color, false)
		}
	}

	vector.StrokeRect(screen, r.originX, r.originY, w, h, 2, borderColor, false)

	textX := int(r.originX+w) + 20
	textY := int(r.originY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Phase: %s", snap.Phase), textX, textY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Pieces: %d", snap.Stats.Locked), textX, textY+16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Rows: %d", snap.Stats.RowsCleared), textX, textY+32)
	ebitenutil.DebugPrintAt(screen, "Arrows/AD move, Up/X Z rotate", textX, textY+64)
	ebitenutil.DebugPrintAt(screen, "Space drop, P pause, R reset", textX, textY+80)
	ebitenutil.DebugPrintAt(screen, "F1 inspector, Q quit", textX, textY+96)

	switch snap.Phase {
	case game.PhasePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", int(r.originX+w/2)-18, int(r.originY+h/2))
	case game.PhaseGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R", int(r.originX+w/2)-57, int(r.originY+h/2))
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
