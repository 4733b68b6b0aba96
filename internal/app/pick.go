package app

import (
	"cogentcore.org/core/math32"

	"arplace/internal/anchor"
	"arplace/internal/scenegraph"
)

// thinPad gives flat renderables (view quads) some depth so rays can hit them.
const thinPad = 0.02

// Pick returns the nearest node with a renderable whose world bounds r passes through.
func (a *App) Pick(r anchor.Ray) (scenegraph.NodeID, bool) {
	var (
		best  scenegraph.NodeID
		bestD float32
		found bool
	)
	a.Graph.Walk(func(id scenegraph.NodeID, _ int) bool {
		box, ok := a.WorldBounds(id)
		if !ok {
			return true
		}
		pt, hit := r.IntersectBox(box)
		if !hit || !anchor.Ahead(r, pt) {
			return true
		}
		if d := pt.DistTo(r.Origin); !found || d < bestD {
			best, bestD, found = id, d, true
		}
		return true
	})
	return best, found
}

// WorldBounds returns the axis-aligned world box of the node's renderable.
func (a *App) WorldBounds(id scenegraph.NodeID) (math32.Box3, bool) {
	rend := a.Graph.Renderable(id)
	if rend == nil {
		return math32.Box3{}, false
	}
	pos, err := a.Graph.WorldPosition(id)
	if err != nil {
		return math32.Box3{}, false
	}
	rot, _ := a.Graph.WorldRotation(id)
	s := a.Graph.WorldScale(id)

	b := rend.Bounds
	b.Min = b.Min.MulScalar(s)
	b.Max = b.Max.MulScalar(s)
	b = b.MulQuat(rot).Translate(pos)
	size := b.Size()
	for axis, v := range [3]float32{size.X, size.Y, size.Z} {
		if v >= thinPad {
			continue
		}
		switch axis {
		case 0:
			b.Min.X, b.Max.X = b.Min.X-thinPad, b.Max.X+thinPad
		case 1:
			b.Min.Y, b.Max.Y = b.Min.Y-thinPad, b.Max.Y+thinPad
		case 2:
			b.Min.Z, b.Max.Z = b.Min.Z-thinPad, b.Max.Z+thinPad
		}
	}
	return b, true
}
