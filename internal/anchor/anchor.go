package anchor

import (
	"cogentcore.org/core/math32"
)

// TrackingState mirrors the AR runtime's anchor states. Only Tracking anchors may receive new objects.
type TrackingState int

const (
	Tracking TrackingState = iota
	Paused
	Stopped
)

func (s TrackingState) String() string {
	switch s {
	case Tracking:
		return "tracking"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pose is a world position and rotation.
type Pose struct {
	Position math32.Vector3
	Rotation math32.Quat
}

// PoseAt returns a pose at position with identity rotation.
func PoseAt(position math32.Vector3) Pose {
	return Pose{Position: position, Rotation: math32.Quat{W: 1}}
}

// Anchor is a handle to a tracked real-world pose. The AR runtime owns it; the placement core
// only reads its pose and checks that it still tracks before attaching objects to it.
type Anchor interface {
	ID() string
	Pose() Pose
	Tracking() TrackingState
}

// Tracked is the Anchor implementation handed out by Tracker.
type Tracked struct {
	id    string
	pose  Pose
	state TrackingState
}

// ID returns the anchor's UUID string.
func (a *Tracked) ID() string { return a.id }

// Pose returns the anchored pose.
func (a *Tracked) Pose() Pose { return a.pose }

// Tracking returns the current tracking state.
func (a *Tracked) Tracking() TrackingState { return a.state }
