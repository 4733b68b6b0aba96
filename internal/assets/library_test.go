package assets

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLibraryResolvesEveryModel(t *testing.T) {
	l := DefaultLibrary()
	for _, ref := range []string{"models/chair.yaml", "models/couch.yaml", "models/table.yaml", "models/oven.yaml", "models/piano.yaml"} {
		r, err := l.ResolveModel(context.Background(), ref)
		require.NoError(t, err, ref)
		assert.Equal(t, KindModel, r.Kind)
		assert.Equal(t, float32(0), r.Bounds.Min.Y, ref)
		assert.Greater(t, r.Height(), float32(0), ref)
	}
	assert.Equal(t, 5, l.Cached())
}

func TestResolveModelBoundsAndCache(t *testing.T) {
	l := NewLibrary(fstest.MapFS{
		"models/lamp.yaml": {Data: []byte("primitive: cylinder\nsize: [0.3, 1.6, 0.3]\n")},
	})
	r, err := l.ResolveModel(context.Background(), "models/lamp.yaml")
	require.NoError(t, err)
	assert.InDelta(t, 1.6, r.Height(), 1e-6)
	assert.InDelta(t, -0.15, r.Bounds.Min.X, 1e-6)
	assert.Equal(t, defaultModelColor, r.Color)

	again, err := l.ResolveModel(context.Background(), "models/lamp.yaml")
	require.NoError(t, err)
	assert.Same(t, r, again)
}

func TestResolveModelErrors(t *testing.T) {
	l := NewLibrary(fstest.MapFS{
		"models/bad.yaml":  {Data: []byte("primitive: [")},
		"models/cone.yaml": {Data: []byte("primitive: cone\nsize: [1, 1, 1]\n")},
		"models/flat.yaml": {Data: []byte("primitive: cube\nsize: [1, 0, 1]\n")},
	})
	for _, ref := range []string{"models/missing.yaml", "models/bad.yaml", "models/cone.yaml", "models/flat.yaml"} {
		_, err := l.ResolveModel(context.Background(), ref)
		assert.Error(t, err, ref)
	}
	assert.Equal(t, 0, l.Cached())
}

func TestResolveViewDeleteButton(t *testing.T) {
	r, err := DefaultLibrary().ResolveView(context.Background(), DeleteButton())
	require.NoError(t, err)
	assert.Equal(t, KindView, r.Kind)
	require.NotNil(t, r.View)
	assert.Equal(t, "Delete", r.View.Label)
	assert.True(t, r.View.Destructive)
	assert.Equal(t, "#FF0000", r.Color)

	_, err = DefaultLibrary().ResolveView(context.Background(), ViewSpec{})
	assert.Error(t, err)
}

func TestLatencyRespectsContext(t *testing.T) {
	l := DefaultLibrary()
	l.SetLatency(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := l.ResolveModel(ctx, "models/chair.yaml")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type stubLoader struct {
	modelErr error
	viewErr  error
	block    bool
	calls    atomic.Int32
}

func (s *stubLoader) ResolveModel(ctx context.Context, ref string) (*Renderable, error) {
	s.calls.Add(1)
	if s.modelErr != nil {
		return nil, s.modelErr
	}
	return &Renderable{Kind: KindModel, Source: ref}, nil
}

func (s *stubLoader) ResolveView(ctx context.Context, spec ViewSpec) (*Renderable, error) {
	s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.viewErr != nil {
		return nil, s.viewErr
	}
	return &Renderable{Kind: KindView, Source: spec.Label}, nil
}

func TestLoadPairJoinsBoth(t *testing.T) {
	s := &stubLoader{}
	p, err := LoadPair(context.Background(), s, "models/chair.yaml", DeleteButton())
	require.NoError(t, err)
	assert.Equal(t, "models/chair.yaml", p.Model.Source)
	assert.Equal(t, "Delete", p.View.Source)
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestLoadPairFailsWhenEitherFails(t *testing.T) {
	boom := errors.New("boom")

	_, err := LoadPair(context.Background(), &stubLoader{viewErr: boom}, "models/chair.yaml", DeleteButton())
	assert.ErrorIs(t, err, boom)

	_, err = LoadPair(context.Background(), &stubLoader{modelErr: boom}, "models/chair.yaml", DeleteButton())
	assert.ErrorIs(t, err, boom)
}

func TestLoadPairCancelsSiblingOnFailure(t *testing.T) {
	boom := errors.New("boom")
	done := make(chan error, 1)
	go func() {
		_, err := LoadPair(context.Background(), &stubLoader{modelErr: boom, block: true}, "models/chair.yaml", DeleteButton())
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("LoadPair did not return after model failure")
	}
}
