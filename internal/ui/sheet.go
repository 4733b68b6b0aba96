package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// SheetFullHeight is the height of the expanded catalog sheet in pixels.
	SheetFullHeight = 170
	itemWidth       = 140
	itemHeight      = 80
	itemGap         = 12
	statusHeight    = 50
)

// CatalogSheet is the bottom sheet: a status line on top (always visible, it is the peek area)
// and the catalog items laid out horizontally under it.
type CatalogSheet struct {
	panel    *Node
	status   *Node
	items    []*Node
	nodes    []*Node
	selected int
}

// NewCatalogSheet creates a sheet with one item per title.
func NewCatalogSheet(titles []string) *CatalogSheet {
	s := &CatalogSheet{
		panel:    NewNode("panel", "sheet", "sheet", ""),
		status:   NewNode("label", "status", "status", ""),
		selected: -1,
	}
	s.nodes = append(s.nodes, s.panel, s.status)
	for _, t := range titles {
		n := NewNode("button", "item", "", t)
		s.items = append(s.items, n)
		s.nodes = append(s.nodes, n)
	}
	return s
}

// Nodes returns the sheet's nodes in draw order.
func (s *CatalogSheet) Nodes() []*Node {
	return s.nodes
}

// Layout places the sheet at the bottom of a screenW x screenH screen with the given visible
// height and status text. Items that do not fit in the visible height are hidden.
func (s *CatalogSheet) Layout(screenW, screenH, height int, status string) {
	top := float32(screenH - height)
	s.panel.Bounds = rl.NewRectangle(0, top, float32(screenW), float32(height))
	s.status.Bounds = rl.NewRectangle(0, top, float32(screenW), statusHeight)
	s.status.Text = status

	itemTop := top + statusHeight
	hidden := height < statusHeight+itemHeight
	for i, n := range s.items {
		n.Bounds = rl.NewRectangle(float32(itemGap+i*(itemWidth+itemGap)), itemTop, itemWidth, itemHeight)
		n.Hidden = hidden
	}
}

// SetSelected marks item i as selected. It reports whether any class changed, in which case
// the engine needs a Restyle.
func (s *CatalogSheet) SetSelected(i int) bool {
	if i == s.selected {
		return false
	}
	for j, n := range s.items {
		if j == i {
			n.Class = "item selected"
		} else {
			n.Class = "item"
		}
	}
	s.selected = i
	return true
}

// ItemAt returns the index of the visible item under p.
func (s *CatalogSheet) ItemAt(p rl.Vector2) (int, bool) {
	for i, n := range s.items {
		if n.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// StatusAt reports whether p is on the status line, the handle that expands the sheet.
func (s *CatalogSheet) StatusAt(p rl.Vector2) bool {
	return s.status.Contains(p)
}

// Covers reports whether p is anywhere on the visible sheet.
func (s *CatalogSheet) Covers(p rl.Vector2) bool {
	return s.panel.Contains(p)
}
