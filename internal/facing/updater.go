package facing

import (
	"cogentcore.org/core/math32"

	"arplace/internal/scenegraph"
)

// Source lists the nodes that should face the camera. *placement.Manager implements it.
type Source interface {
	ControlNodes() []scenegraph.NodeID
}

// Updater turns visible control nodes toward the camera once per frame.
type Updater struct {
	graph  *scenegraph.Graph
	source Source
	up     math32.Vector3
}

// New returns an Updater for the nodes of source in g, with world +Y as up.
func New(g *scenegraph.Graph, source Source) *Updater {
	return &Updater{graph: g, source: source, up: worldUp}
}

// Tick orients every control node that currently shows a renderable so that its +Z axis points
// at camera. Hidden controls are skipped. A control sitting exactly at the camera keeps its last
// orientation. It returns the number of nodes turned.
func (u *Updater) Tick(camera math32.Vector3) int {
	turned := 0
	for _, id := range u.source.ControlNodes() {
		if u.graph.Renderable(id) == nil {
			continue
		}
		pos, err := u.graph.WorldPosition(id)
		if err != nil {
			continue
		}
		q, ok := LookRotation(camera.Sub(pos), u.up)
		if !ok {
			continue
		}
		if u.graph.SetWorldRotation(id, q) == nil {
			turned++
		}
	}
	return turned
}
