package app

// PeekHeight is the visible height, in pixels, of the collapsed catalog sheet.
const PeekHeight = 50

// Sheet is the bottom sheet holding the catalog list. It starts expanded and collapses to
// PeekHeight whenever a model is selected.
type Sheet struct {
	expanded bool
}

// NewSheet returns an expanded sheet.
func NewSheet() *Sheet {
	return &Sheet{expanded: true}
}

func (s *Sheet) Expanded() bool { return s.expanded }

func (s *Sheet) Expand() { s.expanded = true }

func (s *Sheet) Collapse() { s.expanded = false }

func (s *Sheet) Toggle() { s.expanded = !s.expanded }

// Height returns the sheet's on-screen height given its full height.
func (s *Sheet) Height(full int) int {
	if s.expanded || full < PeekHeight {
		return full
	}
	return PeekHeight
}
