package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Counts is what the overlay reports besides FPS.
type Counts struct {
	Placed  int
	Loading int
}

// Debug draws the FPS and placement counters at the top-right. Off by default.
type Debug struct {
	ShowFPS    bool
	font       rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount uint32
	fpsText    string
	countText  string
	last       Counts
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the overlay is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetFont sets the font used for the overlay. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the overlay. Text is only recomputed every updateInterval frames, or when the
// counts change, to limit allocations.
func (d *Debug) Draw(c Counts) {
	if !d.ShowFPS {
		return
	}
	d.frameCount++
	if d.frameCount%updateInterval == 0 || d.fpsText == "" {
		d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	if c != d.last || d.countText == "" {
		d.countText = fmt.Sprintf("Placed: %d  Loading: %d", c.Placed, c.Loading)
		d.last = c
	}
	screenW := int32(rl.GetScreenWidth())
	d.right(d.fpsText, screenW, padding)
	d.right(d.countText, screenW, padding+lineHeight)
}

func (d *Debug) right(text string, screenW, y int32) {
	if d.font.Texture.ID != 0 {
		w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(screenW)-w-padding, float32(y)), fontSize, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
