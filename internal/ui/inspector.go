package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Inspector is a right-side panel describing the focused placed object.
// It owns its nodes and updates their text in AppendNodes.
type Inspector struct {
	panel    *Node
	title    *Node
	name     *Node
	handle   *Node
	position *Node
	control  *Node
	count    *Node
}

// NewInspector creates an Inspector styled by .inspector, .inspector-title and .inspector-line.
func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Placed"),
		name:     NewNode("label", "inspector-line", "", ""),
		handle:   NewNode("label", "inspector-line", "", ""),
		position: NewNode("label", "inspector-line", "", ""),
		control:  NewNode("label", "inspector-line", "", ""),
		count:    NewNode("label", "inspector-line", "", ""),
	}
}

// Focused holds the data shown in the inspector. The game layer fills it; ui does not depend on
// placement.
type Focused struct {
	Title          string
	Handle         string
	Position       [3]float32
	ControlVisible bool
	Placed         int
	Loading        int
}

const (
	inspectorWidth  = 300
	inspectorMargin = 12
	inspectorLine   = 26
)

// AppendNodes lays out the panel at the top-right of a screenW-wide screen and appends its nodes
// to dst when visible is true. Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, screenW int, f Focused) []*Node {
	if !visible {
		return dst
	}
	in.name.Text = "Model: " + f.Title
	in.handle.Text = "Handle: " + f.Handle
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", f.Position[0], f.Position[1], f.Position[2])
	if f.ControlVisible {
		in.control.Text = "Delete button: shown"
	} else {
		in.control.Text = "Delete button: hidden"
	}
	in.count.Text = fmt.Sprintf("Placed: %d  Loading: %d", f.Placed, f.Loading)

	x := float32(screenW - inspectorWidth - inspectorMargin)
	lines := []*Node{in.title, in.name, in.handle, in.position, in.control, in.count}
	in.panel.Bounds = rl.NewRectangle(x, inspectorMargin+40, inspectorWidth, float32(len(lines)*inspectorLine+16))
	for i, n := range lines {
		n.Bounds = rl.NewRectangle(x+4, in.panel.Bounds.Y+4+float32(i*inspectorLine), inspectorWidth-8, inspectorLine)
	}
	return append(append(dst, in.panel), lines...)
}
