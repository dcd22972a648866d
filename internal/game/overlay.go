package game

import (
	"context"
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
	"helium/internal/orchestrator"
	"helium/internal/world"
)

var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorText      = rl.NewColor(200, 200, 208, 255)
	colorTextLight = rl.NewColor(255, 255, 255, 255)
)

const (
	overlayX     = 10
	overlayY     = 40
	overlayWidth = 420
	rowHeight    = 24
)

// sceneRow is one loaded scene as listed by the debug overlay.
type sceneRow struct {
	Scene  *engine.Scene
	Name   string
	Ref    engine.SceneRef
	State  orchestrator.SceneState
	Active bool
}

func (r sceneRow) String() string {
	marker := " "
	if r.Active {
		marker = "*"
	}
	return fmt.Sprintf("%s %s (%s) %s", marker, r.Name, r.Ref, r.State)
}

func sceneRows(w *world.World, o *orchestrator.Orchestrator) []sceneRow {
	active := w.ActiveScene()
	loaded := w.LoadedScenes()
	rows := make([]sceneRow, 0, len(loaded))
	for _, s := range loaded {
		rows = append(rows, sceneRow{
			Scene:  s,
			Name:   s.Name,
			Ref:    s.Ref,
			State:  o.SceneState(s),
			Active: s == active,
		})
	}
	return rows
}

func initOverlayStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextLight))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextLight))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawOverlay lists loaded scenes with their lifecycle state. Each row can
// make its scene active or request its closure.
func (g *Game) drawOverlay() {
	rl.DrawFPS(10, 10)

	rows := sceneRows(g.World, g.Orchestrator)
	height := float32(rowHeight*(len(rows)+2) + 8)
	gui.Panel(rl.Rectangle{X: overlayX, Y: overlayY, Width: overlayWidth, Height: height}, "Scenes")

	y := float32(overlayY + rowHeight + 4)
	for _, row := range rows {
		gui.Label(rl.Rectangle{X: overlayX + 8, Y: y, Width: 260, Height: rowHeight}, row.String())

		ref := row.Ref
		if gui.Button(rl.Rectangle{X: overlayX + 272, Y: y, Width: 64, Height: rowHeight - 4}, "Activate") {
			g.Transition("make active", func(ctx context.Context) error {
				return g.Orchestrator.MakeActive(ctx, ref)
			})
		}
		if gui.Button(rl.Rectangle{X: overlayX + 344, Y: y, Width: 64, Height: rowHeight - 4}, "Close") {
			g.Transition("close", func(ctx context.Context) error {
				_, err := g.Orchestrator.RequestClosure(ctx, ref)
				return err
			})
		}
		y += rowHeight
	}

	gui.Label(rl.Rectangle{X: overlayX + 8, Y: y, Width: overlayWidth - 16, Height: rowHeight},
		fmt.Sprintf("Update: %.2f ms  Draw: %.2f ms", g.updateMs, g.drawMs))
}
