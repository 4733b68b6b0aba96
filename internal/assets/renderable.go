package assets

import (
	"cogentcore.org/core/math32"
)

// Kind tells the preview how to draw a renderable.
type Kind int

const (
	// KindModel is a 3-D model resolved from an asset reference.
	KindModel Kind = iota
	// KindView is a flat UI control (a button snapshot) resolved from a ViewSpec.
	KindView
)

// Renderable is a loaded visual ready to attach to a scene node. Bounds is the collision box in
// the renderable's local frame; for models it sits on the floor (Min.Y == 0) so its height is the
// offset at which controls float above the model.
type Renderable struct {
	Kind      Kind
	Source    string
	Primitive string // preview mesh: cube, cylinder, sphere, quad
	Color     string // hex, e.g. "#8B5A2B"
	Bounds    math32.Box3
	View      *ViewSpec // set for KindView
}

// Height returns the size of the collision box along the up axis.
func (r *Renderable) Height() float32 {
	return r.Bounds.Size().Y
}

// ViewSpec describes a UI control to snapshot into a renderable: a labelled button.
type ViewSpec struct {
	Label       string
	Background  string
	Foreground  string
	Destructive bool
}

// DeleteButton is the control attached above every placed object.
func DeleteButton() ViewSpec {
	return ViewSpec{
		Label:       "Delete",
		Background:  "#FF0000",
		Foreground:  "#FFFFFF",
		Destructive: true,
	}
}
