package selection

import (
	"arplace/internal/catalog"
)

// Observer is notified after every Set with the newly selected model.
type Observer func(model catalog.ModelDescriptor)

// State holds the model the user last picked in the catalog list. It starts unset;
// Get reports ok false until the first Set. Like the rest of the scene state it is
// owned by the main loop and is not safe for concurrent use.
type State struct {
	model     catalog.ModelDescriptor
	set       bool
	observers []Observer
}

// New returns an unset selection.
func New() *State {
	return &State{}
}

// Subscribe registers an observer called after every Set, in registration order.
func (s *State) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Set overwrites the current selection and notifies observers. Selecting the same model
// again still notifies, matching a fresh click in the list.
func (s *State) Set(model catalog.ModelDescriptor) {
	s.model = model
	s.set = true
	for _, o := range s.observers {
		o(model)
	}
}

// Get returns the current selection, or ok false before the first Set.
func (s *State) Get() (model catalog.ModelDescriptor, ok bool) {
	return s.model, s.set
}

// Selected returns a pointer to a copy of the current selection, or nil when unset.
// Placement takes a *ModelDescriptor so "no selection" is a nil argument rather than
// a zero-valued descriptor.
func (s *State) Selected() *catalog.ModelDescriptor {
	if !s.set {
		return nil
	}
	m := s.model
	return &m
}

// StatusText is the label shown above the catalog list for a selected model.
func StatusText(model catalog.ModelDescriptor) string {
	return "You are looking at " + model.Title
}
