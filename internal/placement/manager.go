package placement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"

	"arplace/internal/anchor"
	"arplace/internal/assets"
	"arplace/internal/catalog"
	"arplace/internal/logger"
	"arplace/internal/scenegraph"
	"arplace/internal/selection"
)

// DefaultTimeout bounds the model+control load of one placement.
const DefaultTimeout = 10 * time.Second

// Handle identifies a placed object.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h == Handle{} }

// ParseHandle parses the string form of a handle.
func ParseHandle(s string) (Handle, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %q", ErrNotFound, s)
	}
	return Handle(u), nil
}

// PlacedObject is one object the user placed: an anchor node following the anchor, the model node
// under it, and the control node under the model node, floating at the model's height.
type PlacedObject struct {
	Handle      Handle
	Model       catalog.ModelDescriptor
	Anchor      anchor.Anchor
	AnchorNode  scenegraph.NodeID
	ModelNode   scenegraph.NodeID
	ControlNode scenegraph.NodeID
	control     *assets.Renderable
}

// Options configures a Manager. Zero values use defaults.
type Options struct {
	Timeout time.Duration
	Control assets.ViewSpec
	// OnDrop receives the anchor of a placement that ended without an object: a failed or timed
	// out load, an anchor that stopped tracking, Close, or a failed attach. It is not called when
	// a newer request for the same anchor supersedes the old one.
	OnDrop func(anchor.Anchor)
}

type completion struct {
	req  *Pending
	pair assets.Pair
	err  error
}

// Manager owns the placed objects. Place starts loads in the background; everything that touches
// the scene graph or the object set (Poll, Remove, Toggle, ...) must run on the main loop, the same
// goroutine that drives facing updates and input. Only the completion queue is shared with load
// goroutines.
type Manager struct {
	graph   *scenegraph.Graph
	loader  assets.Loader
	log     *logger.Logger
	timeout time.Duration
	control assets.ViewSpec
	onDrop  func(anchor.Anchor)

	objects     map[Handle]*PlacedObject
	inflight    map[string]*Pending
	outstanding map[*Pending]struct{}
	focused     Handle

	mu     sync.Mutex
	done   []completion
	notify chan struct{}
}

// New returns a Manager placing objects into g with renderables from loader.
func New(g *scenegraph.Graph, loader assets.Loader, log *logger.Logger, opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Control.Label == "" {
		opts.Control = assets.DeleteButton()
	}
	if log == nil {
		log = logger.New("")
	}
	return &Manager{
		graph:       g,
		loader:      loader,
		log:         log,
		timeout:     opts.Timeout,
		control:     opts.Control,
		onDrop:      opts.OnDrop,
		objects:     make(map[Handle]*PlacedObject),
		inflight:    make(map[string]*Pending),
		outstanding: make(map[*Pending]struct{}),
		notify:      make(chan struct{}, 1),
	}
}

// Place requests a new object for model at a. It never blocks: the returned Pending completes
// during a later Poll once both renderables are loaded, or immediately when model is nil
// (ErrNoSelection) or a is not tracking (ErrInvalidAnchor). A second request for the same anchor
// cancels the first.
func (m *Manager) Place(ctx context.Context, a anchor.Anchor, model *catalog.ModelDescriptor) *Pending {
	p := newPending(a)
	if model == nil {
		p.finish(Handle{}, ErrNoSelection)
		return p
	}
	if a == nil || a.Tracking() != anchor.Tracking {
		p.finish(Handle{}, ErrInvalidAnchor)
		return p
	}
	p.model = *model

	if prev, ok := m.inflight[a.ID()]; ok {
		prev.superseded = true
		prev.cancel()
	}
	lctx, cancel := context.WithTimeout(ctx, m.timeout)
	p.cancel = cancel
	m.inflight[a.ID()] = p
	m.outstanding[p] = struct{}{}

	ref := model.Asset
	go func() {
		pair, err := assets.LoadPair(lctx, m.loader, ref, m.control)
		m.post(completion{req: p, pair: pair, err: err})
	}()
	return p
}

// PlaceSelected places the current selection of s at a.
func (m *Manager) PlaceSelected(ctx context.Context, a anchor.Anchor, s *selection.State) *Pending {
	return m.Place(ctx, a, s.Selected())
}

func (m *Manager) post(c completion) {
	m.mu.Lock()
	m.done = append(m.done, c)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Poll finalizes completed loads and cancels loads whose anchor stopped tracking. Call once per
// frame from the main loop. It returns the number of requests finalized.
func (m *Manager) Poll() int {
	for _, p := range m.inflight {
		if p.anchor.Tracking() != anchor.Tracking && !p.invalidated {
			p.invalidated = true
			p.cancel()
		}
	}

	m.mu.Lock()
	batch := m.done
	m.done = nil
	m.mu.Unlock()

	for _, c := range batch {
		p := c.req
		delete(m.outstanding, p)
		if m.inflight[p.anchor.ID()] == p {
			delete(m.inflight, p.anchor.ID())
		}
		p.cancel()
		p.finish(m.finalize(c))
	}
	return len(batch)
}

func (m *Manager) finalize(c completion) (Handle, error) {
	p := c.req
	if p.superseded {
		return Handle{}, ErrCanceled
	}
	h, err := m.settle(c)
	if err != nil && m.onDrop != nil {
		m.onDrop(p.anchor)
	}
	return h, err
}

func (m *Manager) settle(c completion) (Handle, error) {
	p := c.req
	switch {
	case p.closed:
		return Handle{}, ErrCanceled
	case p.invalidated || p.anchor.Tracking() != anchor.Tracking:
		m.log.Logf("Dropped %s: anchor %s", p.model.Title, p.anchor.Tracking())
		return Handle{}, ErrInvalidAnchor
	case c.err != nil && errors.Is(c.err, context.Canceled):
		return Handle{}, fmt.Errorf("%w: %w", ErrCanceled, c.err)
	case c.err != nil:
		err := fmt.Errorf("%w: %w", ErrAssetLoadFailed, c.err)
		m.log.Notify(fmt.Sprintf("Error loading furniture %v", c.err))
		return Handle{}, err
	case c.pair.Model == nil || c.pair.View == nil:
		m.log.Notify(fmt.Sprintf("Error loading furniture %s: empty renderable", p.model.Asset))
		return Handle{}, fmt.Errorf("%w: %s: empty renderable", ErrAssetLoadFailed, p.model.Asset)
	}
	return m.attach(p, c.pair)
}

// attach builds anchor node → model node → control node and registers the object. On error
// nothing is left in the graph.
func (m *Manager) attach(p *Pending, pair assets.Pair) (h Handle, err error) {
	title := p.model.Title
	anchorNode, err := m.graph.NewAnchorNode(m.graph.Root(), "anchor:"+title, p.anchor)
	if err != nil {
		return Handle{}, err
	}
	defer func() {
		if err == nil {
			return
		}
		if _, rerr := m.graph.Remove(anchorNode); rerr != nil {
			err = errors.Join(err, rerr)
		}
		h = Handle{}
	}()

	h = Handle(uuid.New())
	modelNode, err := m.graph.NewNode(anchorNode, title)
	if err != nil {
		return h, err
	}
	if err = m.graph.SetRenderable(modelNode, pair.Model); err != nil {
		return h, err
	}
	if err = m.graph.SetOnTap(modelNode, func(scenegraph.NodeID) {
		_, _ = m.Toggle(h)
	}); err != nil {
		return h, err
	}
	controlNode, err := m.graph.NewNode(modelNode, "control:"+title)
	if err != nil {
		return h, err
	}
	if err = m.graph.SetLocalPosition(controlNode, math32.Vec3(0, pair.Model.Height(), 0)); err != nil {
		return h, err
	}
	if err = m.graph.SetOnTap(controlNode, func(scenegraph.NodeID) {
		_ = m.Remove(h)
	}); err != nil {
		return h, err
	}

	m.objects[h] = &PlacedObject{
		Handle:      h,
		Model:       p.model,
		Anchor:      p.anchor,
		AnchorNode:  anchorNode,
		ModelNode:   modelNode,
		ControlNode: controlNode,
		control:     pair.View,
	}
	m.focused = h
	m.log.Logf("Placed %s (%s)", title, h)
	return h, nil
}

// Wait polls until every outstanding request is finalized or ctx is done. For headless runs and
// tests; the preview calls Poll every frame instead.
func (m *Manager) Wait(ctx context.Context) error {
	for {
		m.Poll()
		if len(m.outstanding) == 0 {
			return nil
		}
		select {
		case <-m.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels every in-flight load. Their Pendings finish on the next Poll or Wait.
func (m *Manager) Close() {
	for p := range m.outstanding {
		p.closed = true
		p.cancel()
	}
}

// Remove deletes the object's nodes (the anchor node and, through it, the model and control
// nodes) and forgets the handle. Removing an unknown or already removed handle returns
// ErrNotFound and changes nothing.
func (m *Manager) Remove(h Handle) error {
	obj, ok := m.objects[h]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	if _, err := m.graph.Remove(obj.AnchorNode); err != nil && !errors.Is(err, scenegraph.ErrUnknownNode) {
		return err
	}
	delete(m.objects, h)
	if m.focused == h {
		m.focused = Handle{}
	}
	m.log.Logf("Removed %s (%s)", obj.Model.Title, h)
	return nil
}

// Toggle flips the control between hidden and shown and returns the new visibility. While a
// gesture is transforming the model the tap is ignored and the visibility is returned unchanged.
func (m *Manager) Toggle(h Handle) (bool, error) {
	obj, ok := m.objects[h]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	visible := m.graph.Renderable(obj.ControlNode) != nil
	if m.graph.Transforming(obj.ModelNode) {
		return visible, nil
	}
	if visible {
		_ = m.graph.SetRenderable(obj.ControlNode, nil)
	} else {
		_ = m.graph.SetRenderable(obj.ControlNode, obj.control)
	}
	return !visible, nil
}

// ControlVisible reports whether the object's control is shown.
func (m *Manager) ControlVisible(h Handle) (bool, error) {
	obj, ok := m.objects[h]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	return m.graph.Renderable(obj.ControlNode) != nil, nil
}

// SetTransforming is called by the gesture layer while it drags, scales or rotates the object.
func (m *Manager) SetTransforming(h Handle, transforming bool) error {
	obj, ok := m.objects[h]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	return m.graph.SetTransforming(obj.ModelNode, transforming)
}

// Object returns a copy of the placed object.
func (m *Manager) Object(h Handle) (PlacedObject, bool) {
	obj, ok := m.objects[h]
	if !ok {
		return PlacedObject{}, false
	}
	return *obj, true
}

// Focused returns the most recently placed object still alive, the one gestures act on.
func (m *Manager) Focused() (Handle, bool) {
	return m.focused, !m.focused.IsZero()
}

// Len returns the number of placed objects.
func (m *Manager) Len() int {
	return len(m.objects)
}

// InFlight returns the number of placements still loading or awaiting Poll.
func (m *Manager) InFlight() int {
	return len(m.outstanding)
}

// Handles returns all handles, sorted by their string form.
func (m *Manager) Handles() []Handle {
	out := make([]Handle, 0, len(m.objects))
	for h := range m.objects {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// ControlNodes returns the control node of every placed object.
func (m *Manager) ControlNodes() []scenegraph.NodeID {
	out := make([]scenegraph.NodeID, 0, len(m.objects))
	for _, obj := range m.objects {
		out = append(out, obj.ControlNode)
	}
	return out
}

// Graph returns the scene graph the manager places into.
func (m *Manager) Graph() *scenegraph.Graph {
	return m.graph
}
