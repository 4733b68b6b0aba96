package placement

import (
	"cogentcore.org/core/math32"
	"github.com/jinzhu/copier"

	"arplace/internal/catalog"
)

// Snapshot is a read-only view of a placed object for listings and overlays.
type Snapshot struct {
	Handle         Handle
	Model          catalog.ModelDescriptor
	Position       math32.Vector3
	ControlVisible bool
	Focused        bool
}

// Snapshot returns a view of every placed object, ordered like Handles.
func (m *Manager) Snapshot() []Snapshot {
	handles := m.Handles()
	out := make([]Snapshot, 0, len(handles))
	for _, h := range handles {
		obj := m.objects[h]
		var s Snapshot
		if err := copier.Copy(&s, obj); err != nil {
			s.Handle, s.Model = obj.Handle, obj.Model
		}
		s.Position, _ = m.graph.WorldPosition(obj.ModelNode)
		s.ControlVisible = m.graph.Renderable(obj.ControlNode) != nil
		s.Focused = h == m.focused
		out = append(out, s)
	}
	return out
}
