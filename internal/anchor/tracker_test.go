package anchor

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTestFloor(t *testing.T) {
	tr := NewTracker()
	floor := tr.AddPlane(math32.Vec3(0, 0, 0), 0, 0)

	hit, ok := tr.HitTest(Ray{Origin: math32.Vec3(1, 2, 3), Dir: math32.Vec3(0, -1, 0)})
	require.True(t, ok)
	assert.Same(t, floor, hit.Plane)
	assert.InDelta(t, 1, hit.Point.X, 1e-6)
	assert.InDelta(t, 0, hit.Point.Y, 1e-6)
	assert.InDelta(t, 3, hit.Point.Z, 1e-6)
	assert.InDelta(t, 2, hit.Distance, 1e-6)
}

func TestHitTestMisses(t *testing.T) {
	tr := NewTracker()
	tr.AddPlane(math32.Vec3(0, 0, 0), 1, 1)

	cases := map[string]Ray{
		"pointing up":   {Origin: math32.Vec3(0, 2, 0), Dir: math32.Vec3(0, 1, 0)},
		"horizontal":    {Origin: math32.Vec3(0, 2, 0), Dir: math32.Vec3(1, 0, 0)},
		"outside plane": {Origin: math32.Vec3(5, 2, 0), Dir: math32.Vec3(0, -1, 0)},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := tr.HitTest(r)
			assert.False(t, ok)
		})
	}
}

func TestHitTestPicksNearestPlane(t *testing.T) {
	tr := NewTracker()
	tr.AddPlane(math32.Vec3(0, 0, 0), 0, 0)
	table := tr.AddPlane(math32.Vec3(0, 1, 0), 1, 1)

	hit, ok := tr.HitTest(Ray{Origin: math32.Vec3(0, 3, 0), Dir: math32.Vec3(0, -2, 0)})
	require.True(t, ok)
	assert.Same(t, table, hit.Plane)
	assert.InDelta(t, 2, hit.Distance, 1e-6)
}

func TestCreateAnchorAndTracking(t *testing.T) {
	tr := NewTracker()
	tr.AddPlane(math32.Vec3(0, 0, 0), 0, 0)
	hit, ok := tr.HitTest(Ray{Origin: math32.Vec3(0, 1, 0), Dir: math32.Vec3(0, -1, 0)})
	require.True(t, ok)

	a := hit.CreateAnchor()
	assert.NotEmpty(t, a.ID())
	assert.Equal(t, Tracking, a.Tracking())
	assert.Equal(t, float32(1), a.Pose().Rotation.W)
	assert.Equal(t, 1, tr.Len())

	tr.SetTracking(Paused)
	assert.Equal(t, Paused, a.Tracking())
	tr.SetTracking(Tracking)
	assert.Equal(t, Tracking, a.Tracking())

	require.True(t, tr.Detach(a.ID()))
	assert.Equal(t, Stopped, a.Tracking())
	assert.False(t, tr.Detach(a.ID()))
	_, ok = tr.Anchor(a.ID())
	assert.False(t, ok)
}

func TestAnchorAtHasUniqueIDs(t *testing.T) {
	tr := NewTracker()
	a := tr.AnchorAt(math32.Vec3(0, 0, 0))
	b := tr.AnchorAt(math32.Vec3(0, 0, 0))
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, tr.Len())
}
