package scenegraph

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arplace/internal/anchor"
	"arplace/internal/assets"
)

func assertVec(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z")
}

func TestNewGraphHasRoot(t *testing.T) {
	g := New()
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(g.Root()))
	_, hasParent := g.Parent(g.Root())
	assert.False(t, hasParent)
	assert.False(t, g.Contains(0))
}

func TestRemoveCascadesToChildren(t *testing.T) {
	g := New()
	a, err := g.NewNode(g.Root(), "anchor")
	require.NoError(t, err)
	m, err := g.NewNode(a, "model")
	require.NoError(t, err)
	c, err := g.NewNode(m, "control")
	require.NoError(t, err)
	other, err := g.NewNode(g.Root(), "other")
	require.NoError(t, err)

	removed, err := g.Remove(a)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a, m, c}, removed)
	assert.False(t, g.Contains(m))
	assert.False(t, g.Contains(c))
	assert.True(t, g.Contains(other))
	assert.Equal(t, []NodeID{other}, g.Children(g.Root()))

	_, err = g.Remove(a)
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = g.Remove(g.Root())
	assert.ErrorIs(t, err, ErrRootNode)
}

func TestNewNodeUnknownParent(t *testing.T) {
	g := New()
	_, err := g.NewNode(42, "orphan")
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestSetParentRejectsCycles(t *testing.T) {
	g := New()
	a, _ := g.NewNode(g.Root(), "a")
	b, _ := g.NewNode(a, "b")

	assert.ErrorIs(t, g.SetParent(a, b), ErrCycle)
	assert.ErrorIs(t, g.SetParent(g.Root(), a), ErrRootNode)

	c, _ := g.NewNode(g.Root(), "c")
	require.NoError(t, g.SetParent(b, c))
	p, _ := g.Parent(b)
	assert.Equal(t, c, p)
	assert.Empty(t, g.Children(a))
}

func TestWorldPositionFollowsAnchorAndParents(t *testing.T) {
	g := New()
	tr := anchor.NewTracker()
	an := tr.AnchorAt(math32.Vec3(1, 0, 2))

	a, err := g.NewAnchorNode(g.Root(), "anchor", an)
	require.NoError(t, err)
	m, _ := g.NewNode(a, "model")
	c, _ := g.NewNode(m, "control")
	require.NoError(t, g.SetLocalPosition(c, math32.Vec3(0, 0.75, 0)))

	p, err := g.WorldPosition(c)
	require.NoError(t, err)
	assertVec(t, math32.Vec3(1, 0.75, 2), p)

	require.NoError(t, g.SetLocalScale(m, 2))
	p, _ = g.WorldPosition(c)
	assertVec(t, math32.Vec3(1, 1.5, 2), p)

	_, err = g.WorldPosition(999)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestAnchorNodePoseIsReadOnly(t *testing.T) {
	g := New()
	an := anchor.NewTracker().AnchorAt(math32.Vec3(1, 0, 2))
	a, err := g.NewAnchorNode(g.Root(), "anchor", an)
	require.NoError(t, err)

	turn := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2)
	assert.ErrorIs(t, g.SetWorldRotation(a, turn), ErrAnchored)
	assert.ErrorIs(t, g.SetLocalRotation(a, turn), ErrAnchored)
	assert.ErrorIs(t, g.SetLocalPosition(a, math32.Vec3(5, 5, 5)), ErrAnchored)

	q, err := g.WorldRotation(a)
	require.NoError(t, err)
	assert.Equal(t, float32(1), q.W)
	p, _ := g.WorldPosition(a)
	assertVec(t, math32.Vec3(1, 0, 2), p)

	assert.ErrorIs(t, g.SetWorldRotation(999, turn), ErrUnknownNode)
}

func TestWorldPositionRotatesWithParent(t *testing.T) {
	g := New()
	p, _ := g.NewNode(g.Root(), "parent")
	require.NoError(t, g.SetLocalRotation(p, math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2)))
	child, _ := g.NewNode(p, "child")
	require.NoError(t, g.SetLocalPosition(child, math32.Vec3(1, 0, 0)))

	w, err := g.WorldPosition(child)
	require.NoError(t, err)
	assertVec(t, math32.Vec3(0, 0, -1), w)
}

func TestSetWorldRotationUnderRotatedParent(t *testing.T) {
	g := New()
	p, _ := g.NewNode(g.Root(), "parent")
	require.NoError(t, g.SetLocalRotation(p, math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/3)))
	child, _ := g.NewNode(p, "child")

	want := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.Pi/4)
	require.NoError(t, g.SetWorldRotation(child, want))

	got, err := g.WorldRotation(child)
	require.NoError(t, err)
	for _, v := range []math32.Vector3{math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1)} {
		assertVec(t, v.MulQuat(want), v.MulQuat(got))
	}
}

func TestTapAndRenderable(t *testing.T) {
	g := New()
	n, _ := g.NewNode(g.Root(), "model")
	assert.False(t, g.Tap(n))

	taps := 0
	require.NoError(t, g.SetOnTap(n, func(id NodeID) {
		taps++
		_, err := g.Remove(id)
		assert.NoError(t, err)
	}))
	assert.True(t, g.Tap(n))
	assert.Equal(t, 1, taps)
	assert.False(t, g.Tap(n))

	m, _ := g.NewNode(g.Root(), "model")
	r := &assets.Renderable{Kind: assets.KindModel, Source: "models/chair.yaml"}
	require.NoError(t, g.SetRenderable(m, r))
	assert.Same(t, r, g.Renderable(m))
	require.NoError(t, g.SetRenderable(m, nil))
	assert.Nil(t, g.Renderable(m))
	assert.ErrorIs(t, g.SetRenderable(n, r), ErrUnknownNode)
}

func TestWalkVisitsParentsFirst(t *testing.T) {
	g := New()
	a, _ := g.NewNode(g.Root(), "a")
	b, _ := g.NewNode(a, "b")
	c, _ := g.NewNode(g.Root(), "c")

	var order []NodeID
	var depths []int
	g.Walk(func(id NodeID, depth int) bool {
		order = append(order, id)
		depths = append(depths, depth)
		return id != c
	})
	assert.Equal(t, []NodeID{g.Root(), a, b, c}, order)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
}

func TestTransformingFlag(t *testing.T) {
	g := New()
	n, _ := g.NewNode(g.Root(), "model")
	assert.False(t, g.Transforming(n))
	require.NoError(t, g.SetTransforming(n, true))
	assert.True(t, g.Transforming(n))
	assert.False(t, g.Transforming(999))
}
