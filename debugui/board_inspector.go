package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

// BoardInspector shows one board's phase, timers, active piece and scores.
type BoardInspector struct {
	instance *game.Instance
	heights  []float32
}

func NewBoardInspector(inst *game.Instance) *BoardInspector {
	return &BoardInspector{instance: inst}
}

func (bi *BoardInspector) Render(frame *loop.Frame) {
	snap := bi.instance.Snapshot()

	if !imgui.BeginV(fmt.Sprintf("Board %s", snap.ID), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
	if saved, ok := bi.instance.SavedPhase(); ok {
		imgui.Text(fmt.Sprintf("Resumes into: %s", saved))
	}
	imgui.Text(fmt.Sprintf("Gravity: %.3f / %.3f", snap.Timers.Gravity, bi.instance.Params().GravityInterval))
	imgui.Text(fmt.Sprintf("Lock: %.3f / %.3f", snap.Timers.Lock, bi.instance.Params().LockDelay))
	imgui.Text(fmt.Sprintf("Spawned %d, locked %d, rows cleared %d", snap.Stats.Spawned, snap.Stats.Locked, snap.Stats.RowsCleared))

	imgui.Separator()
	if p := snap.Piece; p != nil {
		imgui.Text(fmt.Sprintf("Piece: %s rot %d at (%d, %d)", p.Variant, p.Rotation, p.Position.X, p.Position.Y))
		for _, c := range p.Cells {
			imgui.BulletText(fmt.Sprintf("(%d, %d)", c.X, c.Y))
		}
	} else {
		imgui.Text("Piece: none")
	}

	imgui.Separator()
	imgui.Text("Column Heights")
	bi.heights = columnHeights(snap, bi.heights)
	imgui.PlotLinesFloatPtr("##heights", &bi.heights[0], int32(len(bi.heights)))

	if imgui.TreeNodeStr("Row Scores") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("RowScoreTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Row")
			imgui.TableSetupColumn("Filled")
			imgui.TableHeadersRow()

			for y := len(snap.RowScores) - 1; y >= 0; y-- {
				if snap.RowScores[y] == 0 {
					continue
				}
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", y))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d / %d", snap.RowScores[y], snap.Width))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Column Scores") {
		for x, score := range snap.ColScores {
			imgui.BulletText(fmt.Sprintf("column %d: %d", x, score))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// columnHeights converts column scores for plotting, reusing buf if it fits.
func columnHeights(snap game.Snapshot, buf []float32) []float32 {
	if cap(buf) < len(snap.ColScores) {
		buf = make([]float32, len(snap.ColScores))
	}
	buf = buf[:len(snap.ColScores)]
	for x, score := range snap.ColScores {
		buf[x] = float32(score)
	}
	return buf
}
