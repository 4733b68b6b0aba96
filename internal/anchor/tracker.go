package anchor

import (
	"cogentcore.org/core/math32"
	"github.com/google/uuid"
)

// parallelEpsilon: rays this close to horizontal never hit a horizontal plane.
const parallelEpsilon = 1e-6

// Ray is a world-space ray, e.g. the camera ray under a screen tap. Dir need not be normalized.
type Ray = math32.Ray

// Plane is a detected horizontal plane: Center.Y is its height, HalfExtent bounds it on X (X) and Z (Y).
// A zero HalfExtent component means unbounded on that axis.
type Plane struct {
	ID         string
	Center     math32.Vector3
	HalfExtent math32.Vector2
}

// surface returns the unbounded plane facing +Y at the plane's height.
func (pl *Plane) surface() math32.Plane {
	return math32.Plane{Norm: math32.Vec3(0, 1, 0), Off: -pl.Center.Y}
}

// contains reports whether p (on the plane) lies within the plane's extents.
func (pl *Plane) contains(p math32.Vector3) bool {
	if pl.HalfExtent.X > 0 && math32.Abs(p.X-pl.Center.X) > pl.HalfExtent.X {
		return false
	}
	if pl.HalfExtent.Y > 0 && math32.Abs(p.Z-pl.Center.Z) > pl.HalfExtent.Y {
		return false
	}
	return true
}

// HitResult is where a tap ray met a plane. CreateAnchor turns it into a tracked anchor.
type HitResult struct {
	Point    math32.Vector3
	Distance float32
	Plane    *Plane
	tracker  *Tracker
}

// CreateAnchor registers a new anchor at the hit point.
func (h HitResult) CreateAnchor() *Tracked {
	return h.tracker.newAnchor(PoseAt(h.Point))
}

// Tracker stands in for the AR runtime's plane detection: it holds horizontal planes, answers
// tap ray casts against them, and owns the anchors it creates. Tracking can be lost globally
// (all anchors pause) or per anchor (Detach).
type Tracker struct {
	planes  []*Plane
	anchors map[string]*Tracked
}

// NewTracker returns a tracker with no planes.
func NewTracker() *Tracker {
	return &Tracker{anchors: make(map[string]*Tracked)}
}

// AddPlane registers a horizontal plane at center, bounded by halfX/halfZ (0 = unbounded).
func (t *Tracker) AddPlane(center math32.Vector3, halfX, halfZ float32) *Plane {
	p := &Plane{
		ID:         uuid.NewString(),
		Center:     center,
		HalfExtent: math32.Vec2(halfX, halfZ),
	}
	t.planes = append(t.planes, p)
	return p
}

// Planes returns the detected planes.
func (t *Tracker) Planes() []*Plane {
	out := make([]*Plane, len(t.planes))
	copy(out, t.planes)
	return out
}

// HitTest casts r against every plane and returns the nearest hit in front of the ray origin.
func (t *Tracker) HitTest(r Ray) (HitResult, bool) {
	var best HitResult
	found := false
	if math32.Abs(r.Dir.Y) < parallelEpsilon {
		return best, false
	}
	for _, p := range t.planes {
		point, ok := r.IntersectPlane(p.surface())
		if !ok || !Ahead(r, point) || !p.contains(point) {
			continue
		}
		dist := point.DistTo(r.Origin)
		if !found || dist < best.Distance {
			best = HitResult{Point: point, Distance: dist, Plane: p, tracker: t}
			found = true
		}
	}
	return best, found
}

// Ahead reports whether p is a finite point on or in front of the ray origin.
func Ahead(r Ray, p math32.Vector3) bool {
	if math32.IsNaN(p.X) || math32.IsNaN(p.Y) || math32.IsNaN(p.Z) {
		return false
	}
	return p.Sub(r.Origin).Dot(r.Dir) >= 0
}

// AnchorAt creates an anchor at an explicit pose, bypassing ray casts (scripts and tests).
func (t *Tracker) AnchorAt(position math32.Vector3) *Tracked {
	return t.newAnchor(PoseAt(position))
}

func (t *Tracker) newAnchor(pose Pose) *Tracked {
	a := &Tracked{id: uuid.NewString(), pose: pose, state: Tracking}
	t.anchors[a.id] = a
	return a
}

// Anchor returns the anchor with the given ID if the tracker still owns it.
func (t *Tracker) Anchor(id string) (*Tracked, bool) {
	a, ok := t.anchors[id]
	return a, ok
}

// Len returns the number of anchors the tracker owns.
func (t *Tracker) Len() int {
	return len(t.anchors)
}

// Detach stops tracking one anchor permanently.
func (t *Tracker) Detach(id string) bool {
	a, ok := t.anchors[id]
	if !ok {
		return false
	}
	a.state = Stopped
	delete(t.anchors, id)
	return true
}

// SetTracking sets every owned anchor's state, e.g. Paused when the camera loses tracking
// and Tracking when it recovers.
func (t *Tracker) SetTracking(state TrackingState) {
	for _, a := range t.anchors {
		a.state = state
	}
}
