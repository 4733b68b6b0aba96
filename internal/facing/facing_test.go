package facing

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arplace/internal/anchor"
	"arplace/internal/assets"
	"arplace/internal/scenegraph"
)

const tolerance = 1e-4

func assertVecNear(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x")
	assert.InDelta(t, want.Y, got.Y, tolerance, "y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "z")
}

func assertFiniteQuat(t *testing.T, q math32.Quat) {
	t.Helper()
	for _, c := range []float32{q.X, q.Y, q.Z, q.W} {
		require.False(t, math32.IsNaN(c))
		require.False(t, math32.IsInf(c, 0))
	}
}

func TestLookRotationForward(t *testing.T) {
	dirs := []math32.Vector3{
		math32.Vec3(0, 0, 1),
		math32.Vec3(0, 0, -1),
		math32.Vec3(1, 0, 0),
		math32.Vec3(-3, 0, 4),
		math32.Vec3(1, 2, -1),
		math32.Vec3(-0.2, -5, 0.3),
	}
	for _, d := range dirs {
		q, ok := LookRotation(d, worldUp)
		require.True(t, ok, "%v", d)
		assertFiniteQuat(t, q)
		assertVecNear(t, d.DivScalar(d.Length()), math32.Vec3(0, 0, 1).MulQuat(q))

		up := math32.Vec3(0, 1, 0).MulQuat(q)
		assert.GreaterOrEqual(t, up.Y, float32(0), "up flipped for %v", d)
		assert.InDelta(t, 0, math32.Vec3(1, 0, 0).MulQuat(q).Y, tolerance, "roll for %v", d)
	}
}

func TestLookRotationParallelToUp(t *testing.T) {
	for _, d := range []math32.Vector3{math32.Vec3(0, 2, 0), math32.Vec3(0, -1, 0)} {
		q, ok := LookRotation(d, worldUp)
		require.True(t, ok)
		assertFiniteQuat(t, q)
		assertVecNear(t, d.DivScalar(d.Length()), math32.Vec3(0, 0, 1).MulQuat(q))
	}
}

func TestLookRotationDegenerate(t *testing.T) {
	_, ok := LookRotation(math32.Vector3{}, worldUp)
	assert.False(t, ok)
	_, ok = LookRotation(math32.Vec3(math32.NaN(), 0, 1), worldUp)
	assert.False(t, ok)
	_, ok = LookRotation(math32.Vec3(0, 0, 1e-9), worldUp)
	assert.False(t, ok)
}

type nodes []scenegraph.NodeID

func (n nodes) ControlNodes() []scenegraph.NodeID { return n }

type fixedAnchor struct{ pose anchor.Pose }

func (a fixedAnchor) ID() string { return "fixed" }
func (a fixedAnchor) Pose() anchor.Pose { return a.pose }
func (a fixedAnchor) Tracking() anchor.TrackingState { return anchor.Tracking }

func control(t *testing.T, g *scenegraph.Graph, parent scenegraph.NodeID, at math32.Vector3) scenegraph.NodeID {
	t.Helper()
	id, err := g.NewNode(parent, "control")
	require.NoError(t, err)
	require.NoError(t, g.SetLocalPosition(id, at))
	require.NoError(t, g.SetRenderable(id, &assets.Renderable{Kind: assets.KindView}))
	return id
}

func TestTickFacesCamera(t *testing.T) {
	g := scenegraph.New()
	id := control(t, g, g.Root(), math32.Vec3(0, 1, 0))
	u := New(g, nodes{id})

	camera := math32.Vec3(3, 1, 4)
	assert.Equal(t, 1, u.Tick(camera))

	q, err := g.WorldRotation(id)
	require.NoError(t, err)
	assertVecNear(t, math32.Vec3(0.6, 0, 0.8), math32.Vec3(0, 0, 1).MulQuat(q))
}

func TestTickUnderRotatedAnchor(t *testing.T) {
	g := scenegraph.New()
	pose := anchor.Pose{
		Position: math32.Vec3(1, 0, 1),
		Rotation: math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2),
	}
	a, err := g.NewAnchorNode(g.Root(), "anchor", fixedAnchor{pose: pose})
	require.NoError(t, err)
	id := control(t, g, a, math32.Vec3(0, 0.5, 0))
	u := New(g, nodes{id})

	camera := math32.Vec3(1, 0.5, -4)
	u.Tick(camera)

	pos, err := g.WorldPosition(id)
	require.NoError(t, err)
	q, err := g.WorldRotation(id)
	require.NoError(t, err)
	dir := camera.Sub(pos)
	assertVecNear(t, dir.DivScalar(dir.Length()), math32.Vec3(0, 0, 1).MulQuat(q))
}

func TestTickSkipsHiddenControls(t *testing.T) {
	g := scenegraph.New()
	id := control(t, g, g.Root(), math32.Vec3(0, 1, 0))
	require.NoError(t, g.SetRenderable(id, nil))
	u := New(g, nodes{id})

	assert.Equal(t, 0, u.Tick(math32.Vec3(5, 1, 0)))
	assert.Equal(t, math32.Quat{W: 1}, g.LocalRotation(id))
}

func TestTickKeepsRotationWhenCameraAtControl(t *testing.T) {
	g := scenegraph.New()
	id := control(t, g, g.Root(), math32.Vec3(0, 1, 0))
	u := New(g, nodes{id})

	u.Tick(math32.Vec3(0, 1, 5))
	before := g.LocalRotation(id)

	assert.Equal(t, 0, u.Tick(math32.Vec3(0, 1, 0)))
	after := g.LocalRotation(id)
	assertFiniteQuat(t, after)
	assert.Equal(t, before, after)
}
