package scenegraph

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"

	"arplace/internal/anchor"
	"arplace/internal/assets"
)

// NodeID is a handle into a Graph. The zero value never names a node.
type NodeID uint64

var (
	ErrUnknownNode = errors.New("scenegraph: unknown node")
	ErrRootNode    = errors.New("scenegraph: root node cannot be removed or reparented")
	ErrCycle       = errors.New("scenegraph: node cannot be parented to its own descendant")
	ErrAnchored    = errors.New("scenegraph: anchor node pose follows its anchor")
)

// TapHandler runs when the node is tapped (or clicked, for view renderables).
type TapHandler func(id NodeID)

type node struct {
	name         string
	parent       NodeID
	children     []NodeID
	anchor       anchor.Anchor
	position     math32.Vector3
	rotation     math32.Quat
	scale        float32
	renderable   *assets.Renderable
	onTap        TapHandler
	transforming bool
}

// Graph is an arena of scene nodes addressed by NodeID with explicit parent/child links.
// Removing a node removes its whole subtree; nothing relies on garbage collection to detach
// children. Anchor nodes take their world pose from their anchor; every other node composes
// its local transform with its parent's. Not safe for concurrent use: the main loop owns it.
type Graph struct {
	nodes map[NodeID]*node
	next  NodeID
	root  NodeID
}

// New returns a graph holding only the scene root.
func New() *Graph {
	g := &Graph{nodes: make(map[NodeID]*node)}
	g.root = g.alloc("scene", 0)
	return g
}

func (g *Graph) alloc(name string, parent NodeID) NodeID {
	g.next++
	id := g.next
	g.nodes[id] = &node{name: name, parent: parent, rotation: math32.Quat{W: 1}, scale: 1}
	if p, ok := g.nodes[parent]; ok {
		p.children = append(p.children, id)
	}
	return id
}

// Root returns the scene root. It has identity transform and cannot be removed.
func (g *Graph) Root() NodeID {
	return g.root
}

// NewNode creates a node under parent.
func (g *Graph) NewNode(parent NodeID, name string) (NodeID, error) {
	if _, ok := g.nodes[parent]; !ok {
		return 0, fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}
	return g.alloc(name, parent), nil
}

// NewAnchorNode creates a node under parent whose world pose follows a.
func (g *Graph) NewAnchorNode(parent NodeID, name string, a anchor.Anchor) (NodeID, error) {
	id, err := g.NewNode(parent, name)
	if err != nil {
		return 0, err
	}
	g.nodes[id].anchor = a
	return id, nil
}

// Contains reports whether id names a live node.
func (g *Graph) Contains(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of live nodes, root included.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Name returns the node's name.
func (g *Graph) Name(id NodeID) string {
	if n, ok := g.nodes[id]; ok {
		return n.name
	}
	return ""
}

// Parent returns the node's parent; the root has none.
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	n, ok := g.nodes[id]
	if !ok || n.parent == 0 {
		return 0, false
	}
	return n.parent, true
}

// Children returns a copy of the node's child list.
func (g *Graph) Children(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// SetParent moves id (and its subtree) under parent, keeping its local transform.
func (g *Graph) SetParent(id, parent NodeID) error {
	if id == g.root {
		return ErrRootNode
	}
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	if _, ok := g.nodes[parent]; !ok {
		return fmt.Errorf("%w: parent %d", ErrUnknownNode, parent)
	}
	for p := parent; p != 0; p = g.nodes[p].parent {
		if p == id {
			return ErrCycle
		}
	}
	g.detach(id, n.parent)
	n.parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, id)
	return nil
}

func (g *Graph) detach(id, parent NodeID) {
	p, ok := g.nodes[parent]
	if !ok {
		return
	}
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// Remove deletes id and every descendant, detaching id from its parent. It returns the removed
// IDs, parents before children.
func (g *Graph) Remove(id NodeID) ([]NodeID, error) {
	if id == g.root {
		return nil, ErrRootNode
	}
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	g.detach(id, n.parent)
	var removed []NodeID
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[0]
		stack = stack[1:]
		cn := g.nodes[cur]
		stack = append(stack, cn.children...)
		delete(g.nodes, cur)
		removed = append(removed, cur)
	}
	return removed, nil
}

// Walk visits every node depth-first from the root, parents before children. Returning false
// from fn skips the node's subtree.
func (g *Graph) Walk(fn func(id NodeID, depth int) bool) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		n, ok := g.nodes[id]
		if !ok || !fn(id, depth) {
			return
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	visit(g.root, 0)
}

// SetRenderable attaches r to the node; nil hides it.
func (g *Graph) SetRenderable(id NodeID, r *assets.Renderable) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n.renderable = r
	return nil
}

// Renderable returns the node's renderable, nil when hidden or unknown.
func (g *Graph) Renderable(id NodeID) *assets.Renderable {
	if n, ok := g.nodes[id]; ok {
		return n.renderable
	}
	return nil
}

// SetOnTap registers the node's tap handler, replacing any previous one.
func (g *Graph) SetOnTap(id NodeID, h TapHandler) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n.onTap = h
	return nil
}

// Tap runs the node's tap handler and reports whether one ran. The handler may remove the
// node it was registered on.
func (g *Graph) Tap(id NodeID) bool {
	n, ok := g.nodes[id]
	if !ok || n.onTap == nil {
		return false
	}
	h := n.onTap
	h(id)
	return true
}

// SetTransforming marks the node as being dragged, scaled or rotated by a gesture.
func (g *Graph) SetTransforming(id NodeID, transforming bool) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n.transforming = transforming
	return nil
}

// Transforming reports whether a gesture is currently acting on the node.
func (g *Graph) Transforming(id NodeID) bool {
	n, ok := g.nodes[id]
	return ok && n.transforming
}
