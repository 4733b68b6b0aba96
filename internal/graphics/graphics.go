package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the preview window.
type Window struct {
	Title     string
	Width     int32
	Height    int32
	TargetFPS int32
}

// DefaultWindow is a resizable 1280x720 window at 60 FPS.
func DefaultWindow(title string) Window {
	return Window{Title: title, Width: 1280, Height: 720, TargetFPS: 60}
}

// Run opens the window and runs the main loop. Each frame it calls update (input, polling),
// then clears the screen and calls draw. ESC is left to the terminal; close via the window
// button.
func Run(w Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(w.TargetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 20, 24, 255))
		draw()
		rl.EndDrawing()
	}
}
