package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/ecs/debugui"
	"github.com/plus3/bardmages/level"
	"github.com/plus3/bardmages/tune"
)

type agentRow struct {
	*bardmage.Transform
	*bardmage.Player
	*bardmage.Life
	Minion     *bardmage.Minion `ecs:"optional"`
	Control    *ai.Control      `ecs:"optional"`
	Controller *ai.Controller   `ecs:"optional"`
	Bard       *tune.Bard       `ecs:"optional"`
}

// spawnArenaWindow adds the match overview: playback controls, a table of
// characters and the steering state of the selected one.
func spawnArenaWindow(storage *ecs.Storage) {
	rows := ecs.NewView[agentRow](storage)

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			var match *level.Match
			var viewer *Viewer
			var arena *ArenaView
			if !storage.ReadSingleton(&match) || !storage.ReadSingleton(&viewer) || !storage.ReadSingleton(&arena) {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(420, 460), imgui.CondOnce)
			if !imgui.BeginV("Arena", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("Level: %s", match.Level))
			imgui.Text(fmt.Sprintf("Match: %s", match.ID))
			imgui.Text(fmt.Sprintf("Elapsed: %.1fs", match.Elapsed))
			if match.Finished {
				imgui.TextColored(imgui.NewVec4(0.3, 0.8, 0.3, 1), fmt.Sprintf("Winner: %s", match.Winner))
			}

			imgui.Separator()
			imgui.Checkbox("Paused", &viewer.Paused)
			imgui.SameLine()
			if imgui.Button("Restart") {
				viewer.Restart = true
			}
			imgui.SetNextItemWidth(120)
			if imgui.InputFloat("Speed", &viewer.Speed) {
				viewer.Speed = min(max(viewer.Speed, 0.1), 8)
			}
			imgui.Checkbox("Show paths", &arena.ShowPaths)
			imgui.SameLine()
			imgui.Checkbox("Show blocked cells", &arena.ShowGrid)

			imgui.Separator()
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
			if imgui.BeginTableV("Characters", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Entity")
				imgui.TableSetupColumn("Player")
				imgui.TableSetupColumn("Health")
				imgui.TableSetupColumn("Steering")
				imgui.TableSetupColumn("Tune")
				imgui.TableHeadersRow()

				for id, row := range rows.Iter() {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					label := fmt.Sprintf("%d", id.Index())
					if imgui.SelectableBoolV(label, viewer.Selected == id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
						viewer.Selected = id
					}
					imgui.TableNextColumn()
					if row.Minion != nil {
						imgui.Text(fmt.Sprintf("%s (minion)", row.Minion.Owner))
					} else {
						imgui.Text(row.Player.ID.String())
					}
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%.0f/%.0f", row.Life.Health, row.Life.MaxHealth))
					imgui.TableNextColumn()
					if row.Control != nil {
						imgui.Text(row.Control.State().String())
					} else {
						imgui.Text("-")
					}
					imgui.TableNextColumn()
					imgui.Text(playingName(row.Bard))
				}
				imgui.EndTable()
			}

			if row := rows.Get(viewer.Selected); row != nil {
				imgui.Separator()
				renderSelected(viewer.Selected, row)
			}
			imgui.End()
		},
	})
}

func renderSelected(id ecs.EntityId, row *agentRow) {
	imgui.Text(fmt.Sprintf("Entity %d (gen %d)", id.Index(), id.Generation()))
	p := row.Transform.Position
	f := row.Transform.Forward
	imgui.Text(fmt.Sprintf("Position: %.2f, %.2f", p.X, p.Z))
	imgui.Text(fmt.Sprintf("Forward: %.2f, %.2f", f.X, f.Z))

	if c := row.Control; c != nil {
		imgui.Text(fmt.Sprintf("Steering: %s", c.State()))
		imgui.Text(fmt.Sprintf("Direction: %.2f, %.2f", c.Direction.X, c.Direction.Y))
		imgui.Text(fmt.Sprintf("Corner: %d of %d", c.NodeIndex(), len(c.Path())))
		if c.IsMoving() {
			imgui.Text(fmt.Sprintf("To corner: %.2f", c.RemainingToCorner(row.Transform)))
		}
	}
	if ctl := row.Controller; ctl != nil {
		imgui.Text(fmt.Sprintf("Behavior: %T", ctl.Behavior))
		imgui.Text(fmt.Sprintf("Opponents: %d", len(ctl.Roster())))
		if chaser, ok := ctl.Behavior.(*ai.Chaser); ok && chaser.Target() != 0 {
			imgui.Text(fmt.Sprintf("Target: entity %d", chaser.Target().Index()))
		}
	}
	if b := row.Bard; b != nil {
		imgui.Text(fmt.Sprintf("Timing accuracy: %.2f", b.TimingAccuracy))
		for i, t := range b.Tunes {
			imgui.BulletText(fmt.Sprintf("%d. %s (%s, %d beats)", i+1, t.Name, t.Rhythm, t.Beats))
		}
		if _, playing := b.Playing(); playing {
			imgui.ProgressBarV(float32(b.Progress()), imgui.NewVec2(-1, 0), playingName(b))
		}
	}
}

func playingName(b *tune.Bard) string {
	if b == nil {
		return "-"
	}
	if t, ok := b.Playing(); ok {
		return t.Name
	}
	return "-"
}
