package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	toastHeight = 40
	toastGap    = 8
	toastFont   = 18
)

// Toasts draws short-lived notifications centered above the bottom sheet. Nodes are pooled and
// reused across frames.
type Toasts struct {
	pool []*Node
}

// AppendNodes lays out one toast per text, stacked upwards from bottom, and appends them to dst.
func (t *Toasts) AppendNodes(dst []*Node, e *Engine, texts []string, screenW int, bottom float32) []*Node {
	for len(t.pool) < len(texts) {
		t.pool = append(t.pool, NewNode("label", "toast", "", ""))
	}
	for i, text := range texts {
		n := t.pool[i]
		n.Text = text
		w := e.MeasureText(text, toastFont) + 20
		y := bottom - float32((i+1)*(toastHeight+toastGap))
		n.Bounds = rl.NewRectangle((float32(screenW)-w)/2, y, w, toastHeight)
		dst = append(dst, n)
	}
	return dst
}
