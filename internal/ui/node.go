package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, etc. Class may hold several space-separated classes;
// ID is matched by #id rules. Hidden nodes are neither drawn nor hit.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // e.g. "item selected"
	ID     string // e.g. "status"
	Bounds rl.Rectangle
	Text   string
	Hidden bool
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// HasClass reports whether class is one of the node's classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Contains reports whether the screen point p is inside the node's bounds.
func (n *Node) Contains(p rl.Vector2) bool {
	return !n.Hidden && rl.CheckCollisionPointRec(p, n.Bounds)
}
