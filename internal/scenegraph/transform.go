package scenegraph

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// posable returns the node if its pose can be set: it exists and does not follow an anchor.
func (g *Graph) posable(id NodeID) (*node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	if n.anchor != nil {
		return nil, fmt.Errorf("%w: %d", ErrAnchored, id)
	}
	return n, nil
}

// SetLocalPosition sets the node's position relative to its parent. Anchor nodes return ErrAnchored.
func (g *Graph) SetLocalPosition(id NodeID, p math32.Vector3) error {
	n, err := g.posable(id)
	if err != nil {
		return err
	}
	n.position = p
	return nil
}

// LocalPosition returns the node's position relative to its parent.
func (g *Graph) LocalPosition(id NodeID) math32.Vector3 {
	if n, ok := g.nodes[id]; ok {
		return n.position
	}
	return math32.Vector3{}
}

// SetLocalRotation sets the node's rotation relative to its parent. Anchor nodes return ErrAnchored.
func (g *Graph) SetLocalRotation(id NodeID, q math32.Quat) error {
	n, err := g.posable(id)
	if err != nil {
		return err
	}
	n.rotation = q
	return nil
}

// LocalRotation returns the node's rotation relative to its parent.
func (g *Graph) LocalRotation(id NodeID) math32.Quat {
	if n, ok := g.nodes[id]; ok {
		return n.rotation
	}
	return math32.Quat{W: 1}
}

// SetLocalScale sets the node's uniform scale relative to its parent (values <= 0 become 1).
func (g *Graph) SetLocalScale(id NodeID, s float32) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	if s <= 0 {
		s = 1
	}
	n.scale = s
	return nil
}

// world returns the node's world position, rotation and uniform scale.
func (g *Graph) world(id NodeID) (math32.Vector3, math32.Quat, float32, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return math32.Vector3{}, math32.Quat{W: 1}, 1, false
	}
	if n.anchor != nil {
		pose := n.anchor.Pose()
		return pose.Position, pose.Rotation, n.scale, true
	}
	if n.parent == 0 {
		return n.position, n.rotation, n.scale, true
	}
	pp, pr, ps, _ := g.world(n.parent)
	pos := pp.Add(n.position.MulScalar(ps).MulQuat(pr))
	rot := pr
	rot.SetMul(n.rotation)
	return pos, rot, ps * n.scale, true
}

// WorldPosition returns the node's position in world space.
func (g *Graph) WorldPosition(id NodeID) (math32.Vector3, error) {
	p, _, _, ok := g.world(id)
	if !ok {
		return p, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return p, nil
}

// WorldRotation returns the node's rotation in world space.
func (g *Graph) WorldRotation(id NodeID) (math32.Quat, error) {
	_, r, _, ok := g.world(id)
	if !ok {
		return r, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return r, nil
}

// WorldScale returns the node's accumulated uniform scale.
func (g *Graph) WorldScale(id NodeID) float32 {
	_, _, s, _ := g.world(id)
	return s
}

// SetWorldRotation sets the local rotation so that the node's world rotation equals q.
// q must be a unit quaternion. Anchor nodes return ErrAnchored.
func (g *Graph) SetWorldRotation(id NodeID, q math32.Quat) error {
	n, err := g.posable(id)
	if err != nil {
		return err
	}
	if n.parent == 0 {
		n.rotation = q
		return nil
	}
	_, pr, _, _ := g.world(n.parent)
	local := pr.Conjugate()
	local.SetMul(q)
	n.rotation = local
	return nil
}
