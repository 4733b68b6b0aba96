package placement

import (
	"context"

	"arplace/internal/anchor"
	"arplace/internal/catalog"
)

// Pending is an in-flight placement. Done closes once the placement is finalized; Result is
// valid after that.
type Pending struct {
	anchor anchor.Anchor
	model  catalog.ModelDescriptor
	cancel context.CancelFunc

	// Set on the main loop only.
	superseded  bool
	invalidated bool
	closed      bool

	done   chan struct{}
	handle Handle
	err    error
}

func newPending(a anchor.Anchor) *Pending {
	return &Pending{anchor: a, cancel: func() {}, done: make(chan struct{})}
}

func (p *Pending) finish(h Handle, err error) {
	p.handle, p.err = h, err
	close(p.done)
}

// Done is closed when the placement has been finalized.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result returns the placed handle or the placement error. Before Done is closed it returns
// the zero handle and nil.
func (p *Pending) Result() (Handle, error) {
	select {
	case <-p.done:
		return p.handle, p.err
	default:
		return Handle{}, nil
	}
}

// Model returns the model being placed.
func (p *Pending) Model() catalog.ModelDescriptor {
	return p.model
}
