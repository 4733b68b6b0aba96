package main

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arplace/internal/app"
	"arplace/internal/commands"
	"arplace/internal/debug"
	"arplace/internal/fonts"
	"arplace/internal/graphics"
	"arplace/internal/scene"
	"arplace/internal/terminal"
	"arplace/internal/ui"
)

// runPreview opens the window: the orbiting camera stands in for the device, the floor for the
// detected plane and left clicks for taps.
func runPreview(ctx context.Context, a *app.App, reg *commands.Registry) {
	term := terminal.New(a.Log, reg)
	scn := scene.New()
	dbg := debug.New()
	engine := ui.New()
	inspector := ui.NewInspector()
	var toasts ui.Toasts

	titles := make([]string, 0, a.Catalog.Len())
	for _, m := range a.Catalog.Models() {
		titles = append(titles, m.Title)
	}
	sheet := ui.NewCatalogSheet(titles)
	nodes := make([]*ui.Node, 0, 32)
	fontLoaded := a.Prefs.Font == ""

	// loadFont runs on the first frame, once the GL context exists.
	loadFont := func() {
		fontLoaded = true
		path, err := fonts.Locate(a.Prefs.Font)
		if err != nil {
			a.Log.Logf("Font %q: %v", a.Prefs.Font, err)
			return
		}
		if err := engine.LoadFont(path); err != nil {
			a.Log.Logf("Font %s: %v", path, err)
			return
		}
		f := rl.LoadFont(path)
		term.SetFont(f)
		dbg.SetFont(f)
	}

	update := func() {
		term.Update()
		scn.SetGridVisible(a.Prefs.GridVisible)
		dbg.SetShowFPS(a.Prefs.ShowFPS)

		if !term.IsOpen() {
			if rl.IsKeyPressed(rl.KeyO) {
				scn.Orbit = !scn.Orbit
			}
			if rl.IsKeyPressed(rl.KeyDelete) {
				if h, ok := a.Placement.Focused(); ok {
					_ = a.Placement.Remove(h)
				}
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			mouse := rl.GetMousePosition()
			switch {
			case int(mouse.Y) < term.Height():
			case sheet.StatusAt(mouse):
				a.Sheet.Toggle()
			case sheet.Covers(mouse):
				if i, ok := sheet.ItemAt(mouse); ok {
					_ = a.SelectIndex(i)
				}
			default:
				if _, err := a.Tap(ctx, scn.MouseRay()); err != nil {
					a.Log.Log(err.Error())
				}
			}
		}
		scn.Update()
		a.Update(scn.CameraPosition())
	}

	draw := func() {
		if !fontLoaded {
			loadFont()
		}
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		scn.Draw(a.Graph, a.Tracker.Planes())

		if m, ok := a.Selection.Get(); ok {
			for i, t := range titles {
				if t == m.Title && sheet.SetSelected(i) {
					engine.Restyle()
				}
			}
		}
		sheetHeight := a.Sheet.Height(ui.SheetFullHeight)
		sheet.Layout(w, h, sheetHeight, a.Status())

		nodes = append(nodes[:0], sheet.Nodes()...)
		var texts []string
		for _, n := range a.Log.Notifications() {
			texts = append(texts, n.Text)
		}
		nodes = toasts.AppendNodes(nodes, engine, texts, w, float32(h-sheetHeight))
		focused, ok := a.Placement.Focused()
		var f ui.Focused
		if ok {
			obj, _ := a.Placement.Object(focused)
			pos, _ := a.Graph.WorldPosition(obj.ModelNode)
			visible, _ := a.Placement.ControlVisible(focused)
			f = ui.Focused{
				Title:          obj.Model.Title,
				Handle:         focused.String()[:8],
				Position:       [3]float32{pos.X, pos.Y, pos.Z},
				ControlVisible: visible,
			}
		}
		f.Placed, f.Loading = a.Placement.Len(), a.Placement.InFlight()
		nodes = inspector.AppendNodes(nodes, ok && !term.IsOpen(), w, f)
		engine.SetNodes(nodes)
		engine.Draw()

		term.Draw()
		dbg.Draw(debug.Counts{Placed: a.Placement.Len(), Loading: a.Placement.InFlight()})
	}

	graphics.Run(graphics.DefaultWindow("arplace"), update, draw)
}
